package db

import (
	"fmt"

	"github.com/veldwijk/crewplan/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the platform admin account from configuration when no
// admin row exists yet. A blank email or password disables seeding.
func EnsureAdmin(database *gorm.DB, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	users := NewUserRepository(database)
	exists, err := users.AdminExists()
	if err != nil {
		return fmt.Errorf("check admin presence: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         "Platform Admin",
		Role:         models.RoleAdmin,
		Verified:     true,
		Age:          0,
	}
	if err := users.Create(&admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}
