package repository

import (
	"testing"

	"reviewhub/database"
	"reviewhub/internal/http-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the full schema.
// Foreign keys are switched on explicitly; sqlite leaves them off otherwise
// and the cascade tests would pass vacuously.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// an in-memory sqlite database lives and dies with its connection; pin
	// the pool to one so every query sees the same schema
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year}
	if err := db.Create(title).Error; err != nil {
		t.Fatalf("seed title %s: %v", name, err)
	}
	return title
}
