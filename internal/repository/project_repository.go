package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/business-admin/internal/domain"
	"gorm.io/gorm"
)

// ProjectRepository определяет интерфейс для работы с проектами и назначениями
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, name string, startDate time.Time, description string) error
	Delete(ctx context.Context, id int64) error
	AssignEmployee(ctx context.Context, employeeID, projectID int64) error
	RemoveEmployee(ctx context.Context, projectID, employeeID int64) error
	List(ctx context.Context) ([]domain.ProjectSummary, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository создаёт новый экземпляр репозитория
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	row := projectRow{
		ID:          project.ID,
		Name:        project.Name,
		StartDate:   project.StartDate,
		Description: project.Description,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return domain.ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	db := r.db.WithContext(ctx)

	var row projectRow
	if err := db.Where("id_proyecto = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	project := domain.NewProject(row.ID, row.Name, row.StartDate, row.Description)

	var members []employeeView
	err := db.Raw(`SELECT `+employeeViewColumns+`
		FROM proyecto_empleados pe
		JOIN empleados e ON e.id_empleado = pe.id_empleado
		JOIN usuarios u ON u.id_usuario = e.id_usuario
		WHERE pe.id_proyecto = ?
		ORDER BY e.id_empleado`, id).Scan(&members).Error
	if err != nil {
		return nil, err
	}
	project.Employees = append(project.Employees, toDomainEmployees(members)...)

	return project, nil
}

func (r *projectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return projectExists(r.db.WithContext(ctx), id)
}

func (r *projectRepository) Update(ctx context.Context, id int64, name string, startDate time.Time, description string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := projectExists(tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrProjectNotFound
		}

		return tx.Model(&projectRow{}).
			Where("id_proyecto = ?", id).
			Updates(map[string]any{
				"nombre":                name,
				"fecha_inicio_proyecto": startDate,
				"descripcion":           description,
			}).Error
	})
}

// Delete удаляет записи часов, затем назначения, затем сам проект
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := projectExists(tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrProjectNotFound
		}

		if err := tx.Where("id_proyecto = ?", id).Delete(&hourRecordRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete hour records: %w", err)
		}
		if err := tx.Where("id_proyecto = ?", id).Delete(&assignmentRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
		return tx.Where("id_proyecto = ?", id).Delete(&projectRow{}).Error
	})
}

// AssignEmployee добавляет сотрудника в проект. Повторное назначение
// отклоняется ограничением уникальности.
func (r *projectRepository) AssignEmployee(ctx context.Context, employeeID, projectID int64) error {
	db := r.db.WithContext(ctx)

	exists, err := employeeExists(db, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEmployeeNotFound
	}

	err = db.Create(&assignmentRow{ProjectID: projectID, EmployeeID: employeeID}).Error

	switch kind, code, message := classifyConstraint(err); kind {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("failed to assign employee: %w", err)
		}
		return nil
	case constraintUnique:
		return domain.ErrDuplicateAssignment
	case constraintForeignKey:
		return domain.ErrForeignKeyViolation
	case constraintNotNull:
		return domain.ErrMissingField
	default:
		return &domain.DBError{Code: code, Message: message}
	}
}

func (r *projectRepository) RemoveEmployee(ctx context.Context, projectID, employeeID int64) error {
	result := r.db.WithContext(ctx).
		Where("id_proyecto = ? AND id_empleado = ?", projectID, employeeID).
		Delete(&assignmentRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	var rows []domain.ProjectSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id_proyecto AS id, p.nombre AS name, p.fecha_inicio_proyecto AS start_date,
		       COUNT(pe.id_empleado) AS employee_count
		FROM proyectos p
		LEFT JOIN proyecto_empleados pe ON pe.id_proyecto = p.id_proyecto
		GROUP BY p.id_proyecto, p.nombre, p.fecha_inicio_proyecto
		ORDER BY p.id_proyecto
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]domain.ProjectSummary, 0)
	}
	return rows, nil
}

func projectExists(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&projectRow{}).Where("id_proyecto = ?", id).Count(&count).Error
	return count > 0, err
}
