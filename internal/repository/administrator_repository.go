package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdministratorRepository определяет интерфейс для работы с учётными записями администраторов
type AdministratorRepository interface {
	Count(ctx context.Context) (int64, error)
	MaxID(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *domain.Administrator) error
	CreateWithEmployee(ctx context.Context, admin *domain.Administrator) error
	GetByUsername(ctx context.Context, username string) (*domain.Administrator, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) (*domain.Administrator, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	List(ctx context.Context) ([]domain.AdministratorSummary, error)
}

type administratorRepository struct {
	db *gorm.DB
}

// NewAdministratorRepository создаёт новый экземпляр репозитория
func NewAdministratorRepository(db *gorm.DB) AdministratorRepository {
	return &administratorRepository{db: db}
}

// adminView - администратор вместе с данными сотрудника
type adminView struct {
	ID            int64
	ContractStart time.Time
	Salary        decimal.Decimal
	DepartmentID  *int64
	Rut           string
	Name          string
	Address       string
	Phone         string
	Email         string
	AdminID       int64
	Username      string
	PasswordHash  string
}

const adminViewQuery = `SELECT ` + employeeViewColumns + `,
		a.id_admin AS admin_id, a.usuario AS username, a.clave AS password_hash
	FROM administradores a
	JOIN empleados e ON e.id_empleado = a.id_empleado
	JOIN usuarios u ON u.id_usuario = e.id_usuario`

func (v adminView) toDomain() *domain.Administrator {
	return &domain.Administrator{
		Employee: employeeView{
			ID:            v.ID,
			ContractStart: v.ContractStart,
			Salary:        v.Salary,
			DepartmentID:  v.DepartmentID,
			Rut:           v.Rut,
			Name:          v.Name,
			Address:       v.Address,
			Phone:         v.Phone,
			Email:         v.Email,
		}.toDomain(),
		AdminID:      v.AdminID,
		Username:     v.Username,
		PasswordHash: v.PasswordHash,
	}
}

func (r *administratorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&adminRow{}).Count(&count).Error
	return count, err
}

func (r *administratorRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).Model(&adminRow{}).Select("COALESCE(MAX(id_admin), 0)").Scan(&maxID).Error
	return maxID, err
}

// Create проверяет сотрудника, id, логин и отсутствие другой учётной записи
// у сотрудника, затем добавляет администратора. Всё в одной транзакции.
func (r *administratorRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := employeeExists(tx, admin.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrEmployeeNotFound
		}

		var count int64
		if err := tx.Model(&adminRow{}).Where("id_admin = ?", admin.AdminID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateAdminID
		}

		if err := tx.Model(&adminRow{}).Where("usuario = ?", admin.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateUsername
		}

		if err := tx.Model(&adminRow{}).Where("id_empleado = ?", admin.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyAdmin
		}

		return tx.Create(&adminRow{
			ID:           admin.AdminID,
			Username:     admin.Username,
			PasswordHash: admin.PasswordHash,
			EmployeeID:   admin.ID,
		}).Error
	})

	if isUniqueViolation(err) {
		return domain.ErrDuplicateAdminID
	}
	return err
}

// CreateWithEmployee создаёт человека, сотрудника и администратора в одной транзакции.
// Существующие строки человека и сотрудника переиспользуются.
func (r *administratorRepository) CreateWithEmployee(ctx context.Context, admin *domain.Administrator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&personRow{}).Where("id_usuario = ?", admin.Rut).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(&personRow{
				Rut:     admin.Rut,
				Name:    admin.Name,
				Address: admin.Address,
				Phone:   admin.Phone,
				Email:   admin.Email,
			}).Error; err != nil {
				return fmt.Errorf("failed to create person: %w", err)
			}
		}

		exists, err := employeeExists(tx, admin.ID)
		if err != nil {
			return err
		}
		if !exists {
			if err := tx.Create(&employeeRow{
				ID:            admin.ID,
				ContractStart: admin.ContractStart,
				Salary:        admin.Salary,
				Rut:           admin.Rut,
			}).Error; err != nil {
				return fmt.Errorf("failed to create employee: %w", err)
			}
		}

		if err := tx.Create(&adminRow{
			ID:           admin.AdminID,
			Username:     admin.Username,
			PasswordHash: admin.PasswordHash,
			EmployeeID:   admin.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to create administrator: %w", err)
		}
		return nil
	})
}

func (r *administratorRepository) GetByUsername(ctx context.Context, username string) (*domain.Administrator, error) {
	return r.findOne(ctx, adminViewQuery+` WHERE a.usuario = ?`, username)
}

func (r *administratorRepository) GetByEmployeeID(ctx context.Context, employeeID int64) (*domain.Administrator, error) {
	return r.findOne(ctx, adminViewQuery+` WHERE a.id_empleado = ?`, employeeID)
}

func (r *administratorRepository) findOne(ctx context.Context, query string, arg any) (*domain.Administrator, error) {
	var views []adminView
	if err := r.db.WithContext(ctx).Raw(query, arg).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrAdminNotFound
	}
	return views[0].toDomain(), nil
}

func (r *administratorRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&adminRow{}).
		Where("usuario = ?", username).
		Update("clave", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *administratorRepository) List(ctx context.Context) ([]domain.AdministratorSummary, error) {
	var rows []struct {
		ID           int64
		Username     string
		EmployeeID   int64
		EmployeeName *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id_admin AS id, a.usuario AS username, a.id_empleado AS employee_id,
		       u.nombre AS employee_name
		FROM administradores a
		LEFT JOIN empleados e ON e.id_empleado = a.id_empleado
		LEFT JOIN usuarios u ON u.id_usuario = e.id_usuario
		ORDER BY a.id_admin
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.AdministratorSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.AdministratorSummary{
			ID:           row.ID,
			Username:     row.Username,
			EmployeeID:   row.EmployeeID,
			EmployeeName: domain.NoEmployeeName,
		}
		if row.EmployeeName != nil && *row.EmployeeName != "" {
			summary.EmployeeName = *row.EmployeeName
		}
		result = append(result, summary)
	}
	return result, nil
}
