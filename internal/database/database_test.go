package database_test

import (
	"testing"

	"github.com/business-admin/internal/config"
	"github.com/business-admin/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	for _, dialect := range []string{database.DialectPostgres, database.DialectSQLite} {
		t.Run(dialect, func(t *testing.T) {
			files, err := database.MigrationFiles(dialect)
			require.NoError(t, err)
			assert.NotEmpty(t, files)
		})
	}

	_, err := database.MigrationFiles("mysql")
	assert.Error(t, err)
}

func TestMigrate_UnknownDialect(t *testing.T) {
	err := database.Migrate(nil, "oracle")
	assert.Error(t, err)
}

func TestConnect_SQLite(t *testing.T) {
	path := t.TempDir() + "/gestion.db"

	db, dialect, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	assert.Equal(t, database.DialectSQLite, dialect)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, database.Migrate(sqlDB, dialect))
	// Повторный запуск не должен ничего применять
	require.NoError(t, database.Migrate(sqlDB, dialect))

	var tables int64
	err = db.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN
		('usuarios', 'empleados', 'departamentos', 'proyectos', 'proyecto_empleados',
		 'registros', 'administradores', 'indicadores_registrados')`).Scan(&tables).Error
	require.NoError(t, err)
	assert.Equal(t, int64(8), tables)
}
