package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// constraintKind - категория нарушения ограничения БД
type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintForeignKey
	constraintNotNull
	constraintOther
)

// SQLSTATE коды PostgreSQL
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
)

// classifyConstraint определяет категорию ошибки и, если это ошибка PostgreSQL,
// возвращает её код и сообщение для нераспознанных случаев
func classifyConstraint(err error) (constraintKind, string, string) {
	if err == nil {
		return constraintNone, "", ""
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return constraintUnique, "", ""
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return constraintForeignKey, "", ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return constraintUnique, pgErr.Code, pgErr.Message
		case sqlStateForeignKeyViolation:
			return constraintForeignKey, pgErr.Code, pgErr.Message
		case sqlStateNotNullViolation:
			return constraintNotNull, pgErr.Code, pgErr.Message
		default:
			return constraintOther, pgErr.Code, pgErr.Message
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return constraintUnique, "", ""
		case sqlite3.ErrConstraintForeignKey:
			return constraintForeignKey, "", ""
		case sqlite3.ErrConstraintNotNull:
			return constraintNotNull, "", ""
		}
		return constraintOther, liteErr.Code.Error(), liteErr.Error()
	}

	return constraintNone, "", ""
}

func isUniqueViolation(err error) bool {
	kind, _, _ := classifyConstraint(err)
	return kind == constraintUnique
}
