package repository_test

import (
	"context"
	"testing"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/repository"
	"github.com/business-admin/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentRepository_DeleteDetachesEmployees(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	depts := repository.NewDepartmentRepository(db)
	emps := repository.NewEmployeeRepository(db)

	require.NoError(t, depts.Create(ctx, 10, "Engineering", nil))
	require.NoError(t, depts.Create(ctx, 20, "Sales", nil))
	members := []int64{5, 6, 7}
	for _, id := range members {
		mustCreateEmployee(t, db, id, ptr(10))
	}
	mustCreateEmployee(t, db, 8, ptr(20))

	assert.Equal(t, int64(len(members)), countRows(t, db, "empleados", "id_departamento = ?", 10))

	require.NoError(t, depts.Delete(ctx, 10))

	assert.Zero(t, countRows(t, db, "empleados", "id_departamento = ?", 10))
	assert.Equal(t, int64(len(members)), countRows(t, db, "empleados", "id_departamento IS NULL AND id_empleado IN ?", members))
	for _, id := range members {
		emp, err := emps.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, emp.Department, "employee %d", id)
	}

	// Сотрудники других подразделений не затронуты
	other, err := emps.GetByID(ctx, 8)
	require.NoError(t, err)
	require.NotNil(t, other.Department)
	assert.Equal(t, int64(20), other.Department.ID)

	_, err = depts.GetByID(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentRepository_DeleteNotFound(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	err := repository.NewDepartmentRepository(db).Delete(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentRepository_CreateDuplicate(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	depts := repository.NewDepartmentRepository(db)

	require.NoError(t, depts.Create(ctx, 1, "Sales", nil))
	err := depts.Create(ctx, 1, "Marketing", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestDepartmentRepository_CreateUnknownManager(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	err := repository.NewDepartmentRepository(db).Create(context.Background(), 1, "Sales", ptr(404))
	assert.ErrorIs(t, err, domain.ErrManagerNotFound)
}

func TestDepartmentRepository_GetByIDResolvesOneLevel(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	depts := repository.NewDepartmentRepository(db)
	emps := repository.NewEmployeeRepository(db)

	require.NoError(t, depts.Create(ctx, 1, "Operations", nil))
	mustCreateEmployee(t, db, 1, ptr(1))
	mustCreateEmployee(t, db, 2, ptr(1))
	require.NoError(t, depts.Update(ctx, 1, "Operations", ptr(1)))

	dept, err := depts.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, dept.Manager)
	assert.Equal(t, int64(1), dept.Manager.ID)
	assert.Nil(t, dept.Manager.Department)
	require.Len(t, dept.Employees, 2)
	for _, member := range dept.Employees {
		assert.Nil(t, member.Department)
	}

	emp, err := emps.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, emp.Department)
	assert.Equal(t, "Operations", emp.Department.Name)
	require.NotNil(t, emp.Department.Manager)
	assert.Nil(t, emp.Department.Manager.Department)
}

func TestDepartmentRepository_UpdateNotFound(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	err := repository.NewDepartmentRepository(db).Update(context.Background(), 7, "Ghost", nil)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentRepository_List(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	depts := repository.NewDepartmentRepository(db)

	require.NoError(t, depts.Create(ctx, 1, "Finance", nil))
	require.NoError(t, depts.Create(ctx, 2, "Legal", nil))
	mustCreateEmployee(t, db, 3, nil)
	require.NoError(t, depts.Update(ctx, 2, "Legal", ptr(3)))

	list, err := depts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.NoManagerLabel, list[0].ManagerName)
	assert.Equal(t, "Employee 3", list[1].ManagerName)
}
