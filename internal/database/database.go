package database

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/business-admin/internal/config"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// Диалекты, для которых есть набор миграций
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Connect открывает соединение с БД согласно конфигурации.
// Ошибки ограничений транслируются gorm в gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, string, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var (
		dialector gorm.Dialector
		dialect   string
	)
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
		dialect = DialectSQLite
	default:
		dialector = postgres.Open(cfg.DSN())
		dialect = DialectPostgres
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}

// SQLiteDSN возвращает DSN SQLite с включёнными внешними ключами
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// Migrate применяет встроенные миграции выбранного диалекта
func Migrate(db *sql.DB, dialect string) error {
	dir, err := migrationsDir(dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationFiles возвращает имена файлов миграций диалекта
func MigrationFiles(dialect string) ([]string, error) {
	dir, err := migrationsDir(dialect)
	if err != nil {
		return nil, err
	}
	return fs.Glob(embedMigrations, dir+"/*.sql")
}

func migrationsDir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
