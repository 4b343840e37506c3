package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/repository"
	"github.com/business-admin/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAdmin(t *testing.T, db *gorm.DB, adminID, employeeID int64, username string) {
	t.Helper()
	mustCreateEmployee(t, db, employeeID, nil)
	err := repository.NewAdministratorRepository(db).Create(context.Background(), &domain.Administrator{
		Employee:     domain.Employee{ID: employeeID},
		AdminID:      adminID,
		Username:     username,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
}

func snapshot(name string, queried time.Time, adminID int64) *domain.IndicatorSnapshot {
	return &domain.IndicatorSnapshot{
		Name:      name,
		Value:     decimal.RequireFromString("941.25"),
		ValueDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		QueryDate: queried,
		Source:    domain.IndicatorSourceTag,
		AdminID:   &adminID,
	}
}

func TestIndicatorRepository_CreateAssignsSequentialIDs(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	repo := repository.NewIndicatorRepository(db)
	createAdmin(t, db, 1, 1, "admin")

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	first := snapshot("dolar", now, 1)
	second := snapshot("uf", now, 1)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	next, err = repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)
}

func TestIndicatorRepository_CreateUnknownAdmin(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	err := repository.NewIndicatorRepository(db).Create(context.Background(), snapshot("dolar", time.Now().UTC(), 5))
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)
}

func TestIndicatorRepository_History(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	repo := repository.NewIndicatorRepository(db)
	createAdmin(t, db, 1, 1, "admin")
	createAdmin(t, db, 2, 2, "auditor")

	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, snapshot("uf", base, 1)))
	require.NoError(t, repo.Create(ctx, snapshot("dolar", base.Add(time.Hour), 2)))
	require.NoError(t, repo.Create(ctx, snapshot("euro", base.Add(time.Hour), 1)))

	history, err := repo.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "euro", history[0].Name)
	assert.Equal(t, "dolar", history[1].Name)
	assert.Equal(t, "uf", history[2].Name)
	assert.Equal(t, "auditor", history[1].AdminUsername)

	limited, err := repo.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	// Удаление администратора обнуляет ссылку, имя становится меткой по умолчанию
	require.NoError(t, db.Exec("DELETE FROM administradores WHERE id_admin = ?", 2).Error)

	history, err = repo.History(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownAdminLabel, history[1].AdminUsername)
	assert.Nil(t, history[1].AdminID)
}

func TestIndicatorRepository_LatestAndDeleteAll(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	repo := repository.NewIndicatorRepository(db)
	createAdmin(t, db, 1, 1, "admin")

	_, err := repo.Latest(ctx, "dolar")
	assert.ErrorIs(t, err, domain.ErrIndicatorNotFound)

	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	older := snapshot("dolar", base, 1)
	newer := snapshot("dolar", base.Add(2*time.Hour), 1)
	newer.Value = decimal.RequireFromString("950.5")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	latest, err := repo.Latest(ctx, "dolar")
	require.NoError(t, err)
	assert.True(t, latest.Value.Equal(decimal.RequireFromString("950.5")))

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	history, err := repo.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Администраторы не затрагиваются
	count, err := repository.NewAdministratorRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
