package repository

import (
	"context"
	"fmt"

	"github.com/business-admin/internal/domain"
	"gorm.io/gorm"
)

// HourRecordRepository - журнал отработанных часов, только добавление
type HourRecordRepository interface {
	Create(ctx context.Context, record *domain.HourRecord) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.HourRecord, error)
}

type hourRecordRepository struct {
	db *gorm.DB
}

// NewHourRecordRepository создаёт новый экземпляр репозитория
func NewHourRecordRepository(db *gorm.DB) HourRecordRepository {
	return &hourRecordRepository{db: db}
}

func (r *hourRecordRepository) Create(ctx context.Context, record *domain.HourRecord) error {
	row := hourRecordRow{
		Date:        record.Date,
		Hours:       record.Hours,
		Description: record.Description,
		EmployeeID:  record.EmployeeID,
		ProjectID:   record.ProjectID,
	}
	err := r.db.WithContext(ctx).Create(&row).Error

	switch kind, code, message := classifyConstraint(err); kind {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("failed to record hours: %w", err)
		}
		return nil
	case constraintForeignKey:
		return domain.ErrForeignKeyViolation
	case constraintNotNull:
		return domain.ErrMissingField
	default:
		return &domain.DBError{Code: code, Message: message}
	}
}

func (r *hourRecordRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.HourRecord, error) {
	var rows []hourRecordRow
	err := r.db.WithContext(ctx).
		Where("id_proyecto = ?", projectID).
		Order("fecha_registro ASC").
		Order("id_empleado ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.HourRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.HourRecord{
			Date:        row.Date,
			Hours:       row.Hours,
			Description: row.Description,
			EmployeeID:  row.EmployeeID,
			ProjectID:   row.ProjectID,
		})
	}
	return records, nil
}
