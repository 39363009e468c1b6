package repositories

import (
	"testing"

	"github.com/retodoku/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps the memory database alive across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PostcardTemplate{},
		&models.NFCPostcard{},
		&models.MeetupPhoto{},
	))

	return db
}

// seedTemplate inserts an active template and returns it.
func seedTemplate(t *testing.T, db *gorm.DB) *models.PostcardTemplate {
	t.Helper()

	template := &models.PostcardTemplate{
		TemplateID: "classic-fuji",
		Name:       "Classic Fuji",
		ImageURL:   "https://cdn.example.com/templates/classic-fuji.png",
		IsActive:   true,
	}
	require.NoError(t, db.Create(template).Error)
	return template
}
