package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/business-admin/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeeChanges - изменяемые поля сотрудника. Дата контракта и подразделение здесь не меняются.
type EmployeeChanges struct {
	Rut     string
	Name    string
	Address string
	Phone   string
	Email   string
	Salary  decimal.Decimal
}

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee, departmentID *int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetIDByRut(ctx context.Context, rut string) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, changes EmployeeChanges) error
	IsInDepartment(ctx context.Context, employeeID, departmentID int64) (bool, error)
	AssignDepartment(ctx context.Context, employeeID, departmentID int64) error
	RemoveFromDepartment(ctx context.Context, employeeID int64) error
	List(ctx context.Context) ([]domain.EmployeeSummary, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee, departmentID *int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		person := personRow{
			Rut:     emp.Rut,
			Name:    emp.Name,
			Address: emp.Address,
			Phone:   emp.Phone,
			Email:   emp.Email,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		row := employeeRow{
			ID:            emp.ID,
			ContractStart: emp.ContractStart,
			Salary:        emp.Salary,
			Rut:           emp.Rut,
			DepartmentID:  departmentID,
		}
		return tx.Create(&row).Error
	})

	switch kind, _, _ := classifyConstraint(err); kind {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	case constraintUnique:
		return domain.ErrDuplicateID
	case constraintForeignKey:
		return domain.ErrDepartmentNotFound
	default:
		return fmt.Errorf("failed to create employee: %w", err)
	}
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	db := r.db.WithContext(ctx)

	view, err := findEmployeeView(db, id)
	if err != nil {
		return nil, err
	}

	emp := view.toDomain()

	// Подразделение раскрывается на один уровень: его руководитель и сотрудники
	// загружаются без собственных подразделений
	if view.DepartmentID != nil {
		dept, err := loadDepartment(db, *view.DepartmentID)
		if err != nil && !errors.Is(err, domain.ErrDepartmentNotFound) {
			return nil, err
		}
		emp.Department = dept
	}

	return &emp, nil
}

func (r *employeeRepository) GetIDByRut(ctx context.Context, rut string) (int64, error) {
	var row employeeRow
	err := r.db.WithContext(ctx).Where("id_usuario = ?", rut).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrEmployeeNotFound
		}
		return 0, err
	}
	return row.ID, nil
}

func (r *employeeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return employeeExists(r.db.WithContext(ctx), id)
}

func (r *employeeRepository) Update(ctx context.Context, id int64, changes EmployeeChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row employeeRow
		if err := tx.Where("id_empleado = ?", id).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEmployeeNotFound
			}
			return err
		}

		if changes.Rut != "" && changes.Rut != row.Rut {
			return fmt.Errorf("%w: rut does not belong to employee %d", domain.ErrInvalidInput, id)
		}

		if err := tx.Model(&employeeRow{}).
			Where("id_empleado = ?", id).
			Update("salario", changes.Salary).Error; err != nil {
			return fmt.Errorf("failed to update salary: %w", err)
		}

		return tx.Model(&personRow{}).
			Where("id_usuario = ?", row.Rut).
			Updates(map[string]any{
				"nombre":    changes.Name,
				"direccion": changes.Address,
				"telefono":  changes.Phone,
				"correo":    changes.Email,
			}).Error
	})
}

func (r *employeeRepository) IsInDepartment(ctx context.Context, employeeID, departmentID int64) (bool, error) {
	var row employeeRow
	err := r.db.WithContext(ctx).Where("id_empleado = ?", employeeID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return row.DepartmentID != nil && *row.DepartmentID == departmentID, nil
}

func (r *employeeRepository) AssignDepartment(ctx context.Context, employeeID, departmentID int64) error {
	result := r.db.WithContext(ctx).
		Model(&employeeRow{}).
		Where("id_empleado = ?", employeeID).
		Update("id_departamento", departmentID)

	if kind, _, _ := classifyConstraint(result.Error); kind == constraintForeignKey {
		return domain.ErrDepartmentNotFound
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) RemoveFromDepartment(ctx context.Context, employeeID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row employeeRow
		err := tx.Where("id_empleado = ?", employeeID).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && row.DepartmentID == nil) {
			return domain.ErrNotAssigned
		}
		if err != nil {
			return err
		}

		return tx.Model(&employeeRow{}).
			Where("id_empleado = ?", employeeID).
			Update("id_departamento", nil).Error
	})
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.EmployeeSummary, error) {
	var rows []struct {
		ID             int64
		Name           string
		Email          string
		Salary         decimal.Decimal
		DepartmentName *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT e.id_empleado AS id, u.nombre AS name, u.correo AS email, e.salario AS salary,
		       d.nombre AS department_name
		FROM empleados e
		JOIN usuarios u ON u.id_usuario = e.id_usuario
		LEFT JOIN departamentos d ON d.id_departamento = e.id_departamento
		ORDER BY e.id_empleado
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.EmployeeSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.EmployeeSummary{
			ID:             row.ID,
			Name:           row.Name,
			Email:          row.Email,
			Salary:         row.Salary,
			DepartmentName: domain.NoDepartmentLabel,
		}
		if row.DepartmentName != nil {
			summary.DepartmentName = *row.DepartmentName
		}
		result = append(result, summary)
	}
	return result, nil
}

// findEmployeeView загружает сотрудника с идентификационными данными без подразделения
func findEmployeeView(db *gorm.DB, id int64) (*employeeView, error) {
	var views []employeeView
	err := db.Raw(`SELECT `+employeeViewColumns+`
		FROM empleados e
		JOIN usuarios u ON u.id_usuario = e.id_usuario
		WHERE e.id_empleado = ?`, id).Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	return &views[0], nil
}

// findShallowEmployee возвращает сотрудника без раскрытия подразделения
func findShallowEmployee(db *gorm.DB, id int64) (*domain.Employee, error) {
	view, err := findEmployeeView(db, id)
	if err != nil {
		return nil, err
	}
	emp := view.toDomain()
	return &emp, nil
}

func employeeExists(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&employeeRow{}).Where("id_empleado = ?", id).Count(&count).Error
	return count > 0, err
}
