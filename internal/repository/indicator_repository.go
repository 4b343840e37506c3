package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IndicatorRepository - архив сохранённых значений индикаторов
type IndicatorRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, snapshot *domain.IndicatorSnapshot) error
	History(ctx context.Context, limit int) ([]domain.IndicatorSnapshot, error)
	DeleteAll(ctx context.Context) (int64, error)
	Latest(ctx context.Context, name string) (*domain.IndicatorValue, error)
}

type indicatorRepository struct {
	db *gorm.DB
}

// NewIndicatorRepository создаёт новый экземпляр репозитория
func NewIndicatorRepository(db *gorm.DB) IndicatorRepository {
	return &indicatorRepository{db: db}
}

func (r *indicatorRepository) NextID(ctx context.Context) (int64, error) {
	return nextIndicatorID(r.db.WithContext(ctx))
}

// Create присваивает снимку следующий id и сохраняет его в той же транзакции
func (r *indicatorRepository) Create(ctx context.Context, snapshot *domain.IndicatorSnapshot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextIndicatorID(tx)
		if err != nil {
			return err
		}

		row := indicatorRow{
			ID:        id,
			Name:      snapshot.Name,
			Value:     snapshot.Value,
			ValueDate: snapshot.ValueDate,
			QueryDate: snapshot.QueryDate,
			Source:    snapshot.Source,
			AdminID:   snapshot.AdminID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		snapshot.ID = id
		return nil
	})

	switch kind, code, message := classifyConstraint(err); kind {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("failed to save indicator: %w", err)
		}
		return nil
	case constraintForeignKey:
		return domain.ErrAdminNotFound
	case constraintNotNull:
		return domain.ErrMissingField
	default:
		return &domain.DBError{Code: code, Message: message}
	}
}

// History возвращает снимки от новых к старым, при равной дате запроса по убыванию id
func (r *indicatorRepository) History(ctx context.Context, limit int) ([]domain.IndicatorSnapshot, error) {
	var rows []struct {
		ID            int64
		Name          string
		Value         decimal.Decimal
		ValueDate     time.Time
		QueryDate     time.Time
		Source        string
		AdminID       *int64
		AdminUsername *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT i.id_indicador_registro AS id, i.nombre_indicador AS name, i.valor_indicador AS value,
		       i.fecha_valor AS value_date, i.fecha_consulta AS query_date, i.sitio_proveedor AS source,
		       i.id_admin_consulta AS admin_id, a.usuario AS admin_username
		FROM indicadores_registrados i
		LEFT JOIN administradores a ON a.id_admin = i.id_admin_consulta
		ORDER BY i.fecha_consulta DESC, i.id_indicador_registro DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]domain.IndicatorSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshot := domain.IndicatorSnapshot{
			ID:            row.ID,
			Name:          row.Name,
			Value:         row.Value,
			ValueDate:     row.ValueDate,
			QueryDate:     row.QueryDate,
			Source:        row.Source,
			AdminID:       row.AdminID,
			AdminUsername: domain.UnknownAdminLabel,
		}
		if row.AdminUsername != nil {
			snapshot.AdminUsername = *row.AdminUsername
		}
		history = append(history, snapshot)
	}
	return history, nil
}

func (r *indicatorRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&indicatorRow{})
	return result.RowsAffected, result.Error
}

func (r *indicatorRepository) Latest(ctx context.Context, name string) (*domain.IndicatorValue, error) {
	var row indicatorRow
	err := r.db.WithContext(ctx).
		Where("nombre_indicador = ?", name).
		Order("fecha_consulta DESC").
		Order("id_indicador_registro DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIndicatorNotFound
		}
		return nil, err
	}

	return &domain.IndicatorValue{
		Value:     row.Value,
		ValueDate: row.ValueDate,
		QueryDate: row.QueryDate,
	}, nil
}

func nextIndicatorID(db *gorm.DB) (int64, error) {
	var maxID int64
	err := db.Model(&indicatorRow{}).Select("COALESCE(MAX(id_indicador_registro), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
