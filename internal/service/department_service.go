package service

import (
	"context"
	"strings"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для подразделений
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.DepartmentSummary, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	empRepo  repository.EmployeeRepository
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(deptRepo repository.DepartmentRepository, empRepo repository.EmployeeRepository) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		empRepo:  empRepo,
	}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	managerID, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	if err := s.deptRepo.Create(ctx, req.ID, strings.TrimSpace(req.Name), managerID); err != nil {
		return nil, err
	}

	return s.deptRepo.GetByID(ctx, req.ID)
}

func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error) {
	managerID, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	if err := s.deptRepo.Update(ctx, id, strings.TrimSpace(req.Name), managerID); err != nil {
		return nil, err
	}

	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	return s.deptRepo.Delete(ctx, id)
}

func (s *departmentService) List(ctx context.Context) ([]domain.DepartmentSummary, error) {
	return s.deptRepo.List(ctx)
}

// resolveManager проверяет, что руководитель существует. nil и 0 означают "без руководителя".
func (s *departmentService) resolveManager(ctx context.Context, managerID *int64) (*int64, error) {
	if managerID == nil || *managerID == 0 {
		return nil, nil
	}

	exists, err := s.empRepo.Exists(ctx, *managerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrManagerNotFound
	}
	return managerID, nil
}
