package models

import "time"

// JoinCodeLength is the length of the code employees use to join a company.
const JoinCodeLength = 8

type Company struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Code      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
