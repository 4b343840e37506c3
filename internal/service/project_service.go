package service

import (
	"context"
	"strings"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/repository"
)

// ProjectService определяет интерфейс бизнес-логики для проектов
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	AssignEmployee(ctx context.Context, projectID, employeeID int64) error
	RemoveEmployee(ctx context.Context, projectID, employeeID int64) error
	List(ctx context.Context) ([]domain.ProjectSummary, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	startDate, err := parseDMY(req.StartDate)
	if err != nil {
		return nil, err
	}

	project := domain.NewProject(req.ID, strings.TrimSpace(req.Name), startDate, strings.TrimSpace(req.Description))
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*domain.Project, error) {
	startDate, err := parseDMY(req.StartDate)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, id, strings.TrimSpace(req.Name), startDate, strings.TrimSpace(req.Description)); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.projectRepo.Delete(ctx, id)
}

func (s *projectService) AssignEmployee(ctx context.Context, projectID, employeeID int64) error {
	return s.projectRepo.AssignEmployee(ctx, employeeID, projectID)
}

func (s *projectService) RemoveEmployee(ctx context.Context, projectID, employeeID int64) error {
	return s.projectRepo.RemoveEmployee(ctx, projectID, employeeID)
}

func (s *projectService) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	return s.projectRepo.List(ctx)
}
