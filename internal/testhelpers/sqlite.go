// Package testhelpers предоставляет базы данных для тестов репозиториев и сервисов.
package testhelpers

import (
	"fmt"
	"testing"

	"github.com/business-admin/internal/database"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteDB создаёт изолированную in-memory БД SQLite с применёнными миграциями.
// Одно соединение: in-memory база живёт, пока открыто соединение.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(sqlDB, database.DialectSQLite); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	return db
}
