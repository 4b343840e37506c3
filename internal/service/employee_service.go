package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByRut(ctx context.Context, rut string) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	IsInDepartment(ctx context.Context, employeeID, departmentID int64) (bool, error)
	AssignDepartment(ctx context.Context, employeeID, departmentID int64) error
	RemoveFromDepartment(ctx context.Context, employeeID int64) error
	RecordHours(ctx context.Context, req *dto.RecordHoursRequest) error
	ListHoursByProject(ctx context.Context, projectID int64) ([]domain.HourRecord, error)
	List(ctx context.Context) ([]domain.EmployeeSummary, error)
}

type employeeService struct {
	empRepo     repository.EmployeeRepository
	deptRepo    repository.DepartmentRepository
	projectRepo repository.ProjectRepository
	hoursRepo   repository.HourRecordRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	deptRepo repository.DepartmentRepository,
	projectRepo repository.ProjectRepository,
	hoursRepo repository.HourRecordRepository,
) EmployeeService {
	return &employeeService{
		empRepo:     empRepo,
		deptRepo:    deptRepo,
		projectRepo: projectRepo,
		hoursRepo:   hoursRepo,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	contractStart, err := parseDMY(req.ContractStart)
	if err != nil {
		return nil, err
	}

	if req.Salary.IsNegative() {
		return nil, fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidInput)
	}

	// Проверяем существование подразделения
	if req.DepartmentID != nil {
		exists, err := s.deptRepo.Exists(ctx, *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrDepartmentNotFound
		}
	}

	emp := &domain.Employee{
		Person: domain.Person{
			Rut:     strings.TrimSpace(req.Rut),
			Name:    strings.TrimSpace(req.Name),
			Address: strings.TrimSpace(req.Address),
			Phone:   strings.TrimSpace(req.Phone),
			Email:   strings.TrimSpace(req.Email),
		},
		ID:            req.EmployeeID,
		ContractStart: contractStart,
		Salary:        req.Salary,
	}

	if err := s.empRepo.Create(ctx, emp, req.DepartmentID); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, emp.ID)
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

// GetByRut находит id сотрудника по rut и загружает его через GetByID
func (s *employeeService) GetByRut(ctx context.Context, rut string) (*domain.Employee, error) {
	id, err := s.empRepo.GetIDByRut(ctx, strings.TrimSpace(rut))
	if err != nil {
		return nil, err
	}
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if req.Salary.IsNegative() {
		return nil, fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidInput)
	}

	changes := repository.EmployeeChanges{
		Rut:     strings.TrimSpace(req.Rut),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Salary:  req.Salary,
	}
	if err := s.empRepo.Update(ctx, id, changes); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) IsInDepartment(ctx context.Context, employeeID, departmentID int64) (bool, error) {
	return s.empRepo.IsInDepartment(ctx, employeeID, departmentID)
}

// AssignDepartment отклоняет повторное назначение без записи в БД
func (s *employeeService) AssignDepartment(ctx context.Context, employeeID, departmentID int64) error {
	exists, err := s.empRepo.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEmployeeNotFound
	}

	exists, err = s.deptRepo.Exists(ctx, departmentID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrDepartmentNotFound
	}

	linked, err := s.empRepo.IsInDepartment(ctx, employeeID, departmentID)
	if err != nil {
		return err
	}
	if linked {
		return domain.ErrAlreadyInDepartment
	}

	return s.empRepo.AssignDepartment(ctx, employeeID, departmentID)
}

func (s *employeeService) RemoveFromDepartment(ctx context.Context, employeeID int64) error {
	return s.empRepo.RemoveFromDepartment(ctx, employeeID)
}

// RecordHours добавляет запись часов. Назначение сотрудника на проект не проверяется.
func (s *employeeService) RecordHours(ctx context.Context, req *dto.RecordHoursRequest) error {
	if req.Hours <= 0 {
		return fmt.Errorf("%w: hours must be a positive integer", domain.ErrInvalidInput)
	}

	date, err := parseISODate(req.Date)
	if err != nil {
		return err
	}

	exists, err := s.empRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEmployeeNotFound
	}

	exists, err = s.projectRepo.Exists(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProjectNotFound
	}

	return s.hoursRepo.Create(ctx, &domain.HourRecord{
		Date:        date,
		Hours:       req.Hours,
		Description: strings.TrimSpace(req.Description),
		EmployeeID:  req.EmployeeID,
		ProjectID:   req.ProjectID,
	})
}

func (s *employeeService) ListHoursByProject(ctx context.Context, projectID int64) ([]domain.HourRecord, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrProjectNotFound
	}
	return s.hoursRepo.ListByProject(ctx, projectID)
}

func (s *employeeService) List(ctx context.Context) ([]domain.EmployeeSummary, error) {
	return s.empRepo.List(ctx)
}
