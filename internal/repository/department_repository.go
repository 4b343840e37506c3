package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/business-admin/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с подразделениями
type DepartmentRepository interface {
	Create(ctx context.Context, id int64, name string, managerID *int64) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, name string, managerID *int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.DepartmentSummary, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, id int64, name string, managerID *int64) error {
	row := departmentRow{ID: id, Name: name, ManagerID: managerID}
	err := r.db.WithContext(ctx).Create(&row).Error

	switch kind, _, _ := classifyConstraint(err); kind {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}
		return nil
	case constraintUnique:
		return domain.ErrDuplicateID
	case constraintForeignKey:
		return domain.ErrManagerNotFound
	default:
		return fmt.Errorf("failed to create department: %w", err)
	}
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return loadDepartment(r.db.WithContext(ctx), id)
}

func (r *departmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&departmentRow{}).Where("id_departamento = ?", id).Count(&count).Error
	return count > 0, err
}

// Update не проверяет руководителя: это делает вызывающая сторона
func (r *departmentRepository) Update(ctx context.Context, id int64, name string, managerID *int64) error {
	result := r.db.WithContext(ctx).
		Model(&departmentRow{}).
		Where("id_departamento = ?", id).
		Updates(map[string]any{
			"nombre":                 name,
			"id_gerente_responsable": managerID,
		})

	if kind, _, _ := classifyConstraint(result.Error); kind == constraintForeignKey {
		return domain.ErrManagerNotFound
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

// Delete отвязывает сотрудников подразделения и удаляет его в одной транзакции.
// Сами сотрудники не удаляются.
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&departmentRow{}).Where("id_departamento = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrDepartmentNotFound
		}

		if err := tx.Model(&employeeRow{}).
			Where("id_departamento = ?", id).
			Update("id_departamento", nil).Error; err != nil {
			return fmt.Errorf("failed to detach employees: %w", err)
		}

		return tx.Where("id_departamento = ?", id).Delete(&departmentRow{}).Error
	})
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.DepartmentSummary, error) {
	var rows []struct {
		ID          int64
		Name        string
		ManagerName *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT d.id_departamento AS id, d.nombre AS name, u.nombre AS manager_name
		FROM departamentos d
		LEFT JOIN empleados e ON e.id_empleado = d.id_gerente_responsable
		LEFT JOIN usuarios u ON u.id_usuario = e.id_usuario
		ORDER BY d.id_departamento
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.DepartmentSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.DepartmentSummary{
			ID:          row.ID,
			Name:        row.Name,
			ManagerName: domain.NoManagerLabel,
		}
		if row.ManagerName != nil {
			summary.ManagerName = *row.ManagerName
		}
		result = append(result, summary)
	}
	return result, nil
}

// loadDepartment загружает подразделение с руководителем и сотрудниками.
// Подразделения руководителя и сотрудников не раскрываются.
func loadDepartment(db *gorm.DB, id int64) (*domain.Department, error) {
	var row departmentRow
	if err := db.Where("id_departamento = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}

	var manager *domain.Employee
	if row.ManagerID != nil {
		emp, err := findShallowEmployee(db, *row.ManagerID)
		if err != nil && !errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
		manager = emp
	}

	dept := domain.NewDepartment(row.ID, row.Name, manager)

	var members []employeeView
	err := db.Raw(`SELECT `+employeeViewColumns+`
		FROM empleados e
		JOIN usuarios u ON u.id_usuario = e.id_usuario
		WHERE e.id_departamento = ?
		ORDER BY e.id_empleado`, id).Scan(&members).Error
	if err != nil {
		return nil, err
	}
	dept.Employees = append(dept.Employees, toDomainEmployees(members)...)

	return dept, nil
}
