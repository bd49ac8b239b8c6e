package models

import "time"

// Ticket is a support request. A nil CompanyID marks a ticket addressed to
// the platform admins rather than to the creator's company.
type Ticket struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	CompanyID      *uint  `gorm:"index"`
	Title          string `gorm:"not null"`
	Content        string `gorm:"not null"`
	AttachmentName string
	Closed         bool             `gorm:"not null;default:false"`
	Responses      []TicketResponse `gorm:"foreignKey:TicketID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TicketResponse entries are append-only and ordered by creation.
type TicketResponse struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}
