package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
	RoleLeader   = "leader"
	RoleEmployee = "employee"
)

// AdultAge is the age at which the stricter minor labor rules stop applying.
const AdultAge = 18

type User struct {
	ID           uint   `gorm:"primaryKey"`
	CompanyID    *uint  `gorm:"index"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null;default:employee"`
	Verified     bool   `gorm:"not null;default:false"`
	Age          int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (user *User) IsMinor() bool {
	return user.Age < AdultAge
}

// SameCompany reports whether the user belongs to the given company.
// Admins have no company and never match.
func (user *User) SameCompany(companyID *uint) bool {
	if user.CompanyID == nil || companyID == nil {
		return false
	}
	return *user.CompanyID == *companyID
}
