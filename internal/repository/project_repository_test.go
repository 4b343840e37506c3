package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/repository"
	"github.com/business-admin/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_AssignEmployee(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	projects := repository.NewProjectRepository(db)
	mustCreateEmployee(t, db, 1, nil)
	mustCreateProject(t, db, 100)

	require.NoError(t, projects.AssignEmployee(ctx, 1, 100))
	assert.ErrorIs(t, projects.AssignEmployee(ctx, 1, 100), domain.ErrDuplicateAssignment)
	assert.ErrorIs(t, projects.AssignEmployee(ctx, 1, 999), domain.ErrForeignKeyViolation)
	assert.ErrorIs(t, projects.AssignEmployee(ctx, 2, 100), domain.ErrEmployeeNotFound)

	project, err := projects.GetByID(ctx, 100)
	require.NoError(t, err)
	require.Len(t, project.Employees, 1)
	assert.Equal(t, int64(1), project.Employees[0].ID)
}

func TestProjectRepository_RemoveEmployee(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	projects := repository.NewProjectRepository(db)
	mustCreateEmployee(t, db, 1, nil)
	mustCreateProject(t, db, 100)
	require.NoError(t, projects.AssignEmployee(ctx, 1, 100))

	require.NoError(t, projects.RemoveEmployee(ctx, 100, 1))
	assert.ErrorIs(t, projects.RemoveEmployee(ctx, 100, 1), domain.ErrAssignmentNotFound)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	projects := repository.NewProjectRepository(db)
	hours := repository.NewHourRecordRepository(db)

	mustCreateEmployee(t, db, 1, nil)
	mustCreateEmployee(t, db, 2, nil)
	mustCreateProject(t, db, 100)
	mustCreateProject(t, db, 200)
	require.NoError(t, projects.AssignEmployee(ctx, 1, 100))
	require.NoError(t, projects.AssignEmployee(ctx, 2, 100))
	require.NoError(t, projects.AssignEmployee(ctx, 1, 200))

	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	for _, rec := range []domain.HourRecord{
		{Date: day, Hours: 8, Description: "design", EmployeeID: 1, ProjectID: 100},
		{Date: day, Hours: 4, Description: "review", EmployeeID: 2, ProjectID: 100},
		{Date: day, Hours: 6, Description: "setup", EmployeeID: 1, ProjectID: 200},
	} {
		require.NoError(t, hours.Create(ctx, &rec))
	}

	require.NoError(t, projects.Delete(ctx, 100))

	assert.Zero(t, countRows(t, db, "registros", "id_proyecto = ?", 100))
	assert.Zero(t, countRows(t, db, "proyecto_empleados", "id_proyecto = ?", 100))
	assert.Zero(t, countRows(t, db, "proyectos", "id_proyecto = ?", 100))
	assert.Equal(t, int64(1), countRows(t, db, "registros", "id_proyecto = ?", 200))
	assert.Equal(t, int64(2), countRows(t, db, "empleados", "1 = 1"))

	assert.ErrorIs(t, projects.Delete(ctx, 100), domain.ErrProjectNotFound)
}

func TestProjectRepository_UpdateAndList(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	projects := repository.NewProjectRepository(db)
	mustCreateEmployee(t, db, 1, nil)
	mustCreateProject(t, db, 1)
	mustCreateProject(t, db, 2)
	require.NoError(t, projects.AssignEmployee(ctx, 1, 2))

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, projects.Update(ctx, 1, "Migration", start, "move to the new platform"))
	assert.ErrorIs(t, projects.Update(ctx, 9, "x", start, ""), domain.ErrProjectNotFound)

	project, err := projects.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Migration", project.Name)
	assert.True(t, project.StartDate.Equal(start))
	assert.NotNil(t, project.Employees)
	assert.Empty(t, project.Employees)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(0), list[0].EmployeeCount)
	assert.Equal(t, int64(1), list[1].EmployeeCount)
}

func TestProjectRepository_CreateDuplicate(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	mustCreateProject(t, db, 5)

	err := repository.NewProjectRepository(db).Create(context.Background(), domain.NewProject(5, "Other", time.Now(), ""))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestHourRecordRepository(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	hours := repository.NewHourRecordRepository(db)
	mustCreateEmployee(t, db, 1, nil)
	mustCreateProject(t, db, 10)

	err := hours.Create(ctx, &domain.HourRecord{
		Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Hours: 5, EmployeeID: 1, ProjectID: 10,
	})
	require.NoError(t, err)

	err = hours.Create(ctx, &domain.HourRecord{
		Date: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), Hours: 5, EmployeeID: 1, ProjectID: 77,
	})
	assert.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	records, err := hours.ListByProject(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Hours)
	assert.Equal(t, 3, records[0].Date.Day())
}
