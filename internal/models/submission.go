package models

import "time"

// SubmissionAnswer holds a user's answer(s) to one question. Multi-select
// questions carry more than one text.
type SubmissionAnswer struct {
	QuestionID uint     `json:"question_id"`
	Answers    []string `json:"answers"`
}

// Submission stores a user's quiz answers for a training. Exactly one row
// exists per (user, training); re-submission overwrites in place.
type Submission struct {
	ID         uint               `gorm:"primaryKey"`
	UserID     uint               `gorm:"not null;uniqueIndex:uidx_submission_user_training"`
	TrainingID uint               `gorm:"not null;uniqueIndex:uidx_submission_user_training"`
	CompanyID  uint               `gorm:"not null;index"`
	Answers    []SubmissionAnswer `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
