package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployee(id int64) *domain.Employee {
	return &domain.Employee{
		Person: domain.Person{
			Rut:     fmt.Sprintf("%d-K", id),
			Name:    fmt.Sprintf("Employee %d", id),
			Address: "Av. Principal 123",
			Phone:   "555-0100",
			Email:   fmt.Sprintf("emp%d@example.com", id),
		},
		ID:            id,
		ContractStart: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		Salary:        decimal.NewFromInt(1000 * id),
	}
}

func mustCreateEmployee(t *testing.T, db *gorm.DB, id int64, departmentID *int64) {
	t.Helper()
	err := repository.NewEmployeeRepository(db).Create(context.Background(), newEmployee(id), departmentID)
	require.NoError(t, err)
}

func mustCreateProject(t *testing.T, db *gorm.DB, id int64) {
	t.Helper()
	project := domain.NewProject(id, fmt.Sprintf("Project %d", id), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "")
	err := repository.NewProjectRepository(db).Create(context.Background(), project)
	require.NoError(t, err)
}

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var count int64
	err := db.Table(table).Where(where, args...).Count(&count).Error
	require.NoError(t, err)
	return count
}

func ptr(v int64) *int64 {
	return &v
}
