package models

import "time"

const (
	ScheduleCategoryPaid   = "paid"
	ScheduleCategoryUnpaid = "unpaid"
)

// Schedule is a single work shift. Start and End are stored truncated to the
// minute; End is always after Start. A finalized shift is locked against
// employee self-service edits.
type Schedule struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_schedules_user_start"`
	CompanyID uint      `gorm:"not null;index"`
	Start     time.Time `gorm:"not null;index:idx_schedules_user_start"`
	End       time.Time `gorm:"not null"`
	Category  string    `gorm:"not null;default:paid"`
	Finalized bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func IsValidScheduleCategory(category string) bool {
	return category == ScheduleCategoryPaid || category == ScheduleCategoryUnpaid
}
