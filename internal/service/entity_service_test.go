package service

import (
	"context"
	"testing"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/repository"
	"github.com/business-admin/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entityServices struct {
	employees   EmployeeService
	departments DepartmentService
	projects    ProjectService
}

func setupEntityServices(t *testing.T) entityServices {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)

	empRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	hoursRepo := repository.NewHourRecordRepository(db)

	return entityServices{
		employees:   NewEmployeeService(empRepo, deptRepo, projectRepo, hoursRepo),
		departments: NewDepartmentService(deptRepo, empRepo),
		projects:    NewProjectService(projectRepo),
	}
}

func employeeRequest(id int64, rut string, departmentID *int64) *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		Rut:           rut,
		EmployeeID:    id,
		Name:          "Ana Rojas",
		Address:       "Los Olmos 44",
		Phone:         "555-0111",
		Email:         "ana@example.com",
		ContractStart: "15/03/2023",
		Salary:        decimal.NewFromInt(1200),
		DepartmentID:  departmentID,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	s := setupEntityServices(t)
	ctx := context.Background()

	_, err := s.departments.Create(ctx, &dto.CreateDepartmentRequest{ID: 10, Name: "Engineering"})
	require.NoError(t, err)

	dept := int64(10)
	emp, err := s.employees.Create(ctx, employeeRequest(5, "12345678-9", &dept))
	require.NoError(t, err)
	assert.Equal(t, int64(5), emp.ID)
	assert.Equal(t, 15, emp.ContractStart.Day())
	require.NotNil(t, emp.Department)
	assert.Equal(t, "Engineering", emp.Department.Name)

	byRut, err := s.employees.GetByRut(ctx, " 12345678-9 ")
	require.NoError(t, err)
	assert.Equal(t, int64(5), byRut.ID)

	t.Run("bad date", func(t *testing.T) {
		req := employeeRequest(6, "6-6", nil)
		req.ContractStart = "2023-03-15"
		_, err := s.employees.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("negative salary", func(t *testing.T) {
		req := employeeRequest(6, "6-6", nil)
		req.Salary = decimal.NewFromInt(-1)
		_, err := s.employees.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown department", func(t *testing.T) {
		missing := int64(99)
		_, err := s.employees.Create(ctx, employeeRequest(6, "6-6", &missing))
		assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
	})
}

func TestEmployeeService_AssignDepartment(t *testing.T) {
	s := setupEntityServices(t)
	ctx := context.Background()

	_, err := s.departments.Create(ctx, &dto.CreateDepartmentRequest{ID: 1, Name: "Finance"})
	require.NoError(t, err)
	_, err = s.employees.Create(ctx, employeeRequest(1, "1-1", nil))
	require.NoError(t, err)

	require.NoError(t, s.employees.AssignDepartment(ctx, 1, 1))
	assert.ErrorIs(t, s.employees.AssignDepartment(ctx, 1, 1), domain.ErrAlreadyInDepartment)
	assert.ErrorIs(t, s.employees.AssignDepartment(ctx, 2, 1), domain.ErrEmployeeNotFound)
	assert.ErrorIs(t, s.employees.AssignDepartment(ctx, 1, 2), domain.ErrDepartmentNotFound)

	in, err := s.employees.IsInDepartment(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, s.employees.RemoveFromDepartment(ctx, 1))
	assert.ErrorIs(t, s.employees.RemoveFromDepartment(ctx, 1), domain.ErrNotAssigned)
}

func TestEmployeeService_RecordHours(t *testing.T) {
	s := setupEntityServices(t)
	ctx := context.Background()

	_, err := s.employees.Create(ctx, employeeRequest(1, "1-1", nil))
	require.NoError(t, err)
	_, err = s.projects.Create(ctx, &dto.CreateProjectRequest{ID: 7, Name: "Portal", StartDate: "01/02/2024"})
	require.NoError(t, err)

	valid := dto.RecordHoursRequest{EmployeeID: 1, ProjectID: 7, Date: "2024-02-05", Hours: 8, Description: "backend"}

	tests := []struct {
		name    string
		mutate  func(*dto.RecordHoursRequest)
		wantErr error
	}{
		{"zero hours", func(r *dto.RecordHoursRequest) { r.Hours = 0 }, domain.ErrInvalidInput},
		{"bad date", func(r *dto.RecordHoursRequest) { r.Date = "05/02/2024" }, domain.ErrInvalidDate},
		{"unknown employee", func(r *dto.RecordHoursRequest) { r.EmployeeID = 9 }, domain.ErrEmployeeNotFound},
		{"unknown project", func(r *dto.RecordHoursRequest) { r.ProjectID = 9 }, domain.ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.ErrorIs(t, s.employees.RecordHours(ctx, &req), tt.wantErr)
		})
	}

	// Назначение на проект не требуется
	require.NoError(t, s.employees.RecordHours(ctx, &valid))

	records, err := s.employees.ListHoursByProject(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "backend", records[0].Description)

	_, err = s.employees.ListHoursByProject(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestDepartmentService_Manager(t *testing.T) {
	s := setupEntityServices(t)
	ctx := context.Background()

	_, err := s.employees.Create(ctx, employeeRequest(3, "3-3", nil))
	require.NoError(t, err)

	missing := int64(42)
	_, err = s.departments.Create(ctx, &dto.CreateDepartmentRequest{ID: 1, Name: "Legal", ManagerID: &missing})
	assert.ErrorIs(t, err, domain.ErrManagerNotFound)

	manager := int64(3)
	dept, err := s.departments.Create(ctx, &dto.CreateDepartmentRequest{ID: 1, Name: " Legal ", ManagerID: &manager})
	require.NoError(t, err)
	assert.Equal(t, "Legal", dept.Name)
	require.NotNil(t, dept.Manager)
	assert.Equal(t, int64(3), dept.Manager.ID)

	none := int64(0)
	dept, err = s.departments.Update(ctx, 1, &dto.UpdateDepartmentRequest{Name: "Legal", ManagerID: &none})
	require.NoError(t, err)
	assert.Nil(t, dept.Manager)

	_, err = s.departments.Update(ctx, 2, &dto.UpdateDepartmentRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestProjectService_Lifecycle(t *testing.T) {
	s := setupEntityServices(t)
	ctx := context.Background()

	_, err := s.employees.Create(ctx, employeeRequest(1, "1-1", nil))
	require.NoError(t, err)

	_, err = s.projects.Create(ctx, &dto.CreateProjectRequest{ID: 1, Name: "Portal", StartDate: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	project, err := s.projects.Create(ctx, &dto.CreateProjectRequest{ID: 1, Name: "Portal", StartDate: "01/02/2024"})
	require.NoError(t, err)
	assert.NotNil(t, project.Employees)

	require.NoError(t, s.projects.AssignEmployee(ctx, 1, 1))
	assert.ErrorIs(t, s.projects.AssignEmployee(ctx, 1, 1), domain.ErrDuplicateAssignment)

	project, err = s.projects.Update(ctx, 1, &dto.UpdateProjectRequest{Name: "Portal v2", StartDate: "10/02/2024"})
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", project.Name)
	assert.Len(t, project.Employees, 1)

	list, err := s.projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].EmployeeCount)

	require.NoError(t, s.projects.RemoveEmployee(ctx, 1, 1))
	require.NoError(t, s.projects.Delete(ctx, 1))

	_, err = s.projects.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
