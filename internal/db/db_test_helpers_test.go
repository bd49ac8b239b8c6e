package db

import (
	"path/filepath"
	"testing"

	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "crewplan-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestCompany(t *testing.T, database *gorm.DB, name string, code string) models.Company {
	t.Helper()

	company := models.Company{Name: name, Code: code}
	if err := database.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func createTestUser(t *testing.T, database *gorm.DB, email string, role string, companyID *uint) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "test-hash",
		Name:         "Test User",
		Role:         role,
		Age:          30,
		CompanyID:    companyID,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
