package models

import "time"

// Training is a quiz-backed training module targeted at one role within a
// company. Question content stays hidden from employees until they start the
// training (see TrainingProgress).
type Training struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyID   uint   `gorm:"not null;index"`
	Role        string `gorm:"not null"`
	Name        string `gorm:"not null"`
	Description string
	Questions   []TrainingQuestion `gorm:"foreignKey:TrainingID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TrainingQuestion struct {
	ID              uint     `gorm:"primaryKey"`
	TrainingID      uint     `gorm:"not null;index"`
	Position        int      `gorm:"not null;default:0"`
	Name            string   `gorm:"not null"`
	Answers         []string `gorm:"serializer:json"`
	CorrectIndexes  []int    `gorm:"serializer:json"`
	MultipleCorrect bool     `gorm:"not null;default:false"`
}

// CorrectAnswerTexts resolves the correct indexes into answer texts,
// skipping indexes that fall outside the answer list.
func (question *TrainingQuestion) CorrectAnswerTexts() []string {
	texts := make([]string, 0, len(question.CorrectIndexes))
	for _, index := range question.CorrectIndexes {
		if index < 0 || index >= len(question.Answers) {
			continue
		}
		texts = append(texts, question.Answers[index])
	}
	return texts
}

// TrainingProgress marks a training's quiz content as unlocked for a user.
// It is created when the user starts the training and cleared on submission.
type TrainingProgress struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:uidx_progress_user_training"`
	TrainingID uint `gorm:"not null;uniqueIndex:uidx_progress_user_training"`
	CreatedAt  time.Time
}
