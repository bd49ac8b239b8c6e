package db

import (
	"errors"

	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	database *gorm.DB
}

func NewSubmissionRepository(database *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{database: database}
}

func (repo *SubmissionRepository) FindByUserAndTraining(userID, trainingID uint) (models.Submission, error) {
	var submission models.Submission
	if err := repo.database.
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (repo *SubmissionRepository) ListByCompany(companyID uint) ([]models.Submission, error) {
	submissions := make([]models.Submission, 0)
	if err := repo.database.
		Where("company_id = ?", companyID).
		Order("updated_at DESC, id DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Upsert keeps exactly one submission row per (user, training): a
// re-submission overwrites the stored answers. The in-progress marker is
// cleared in the same transaction, locking the training again for the user.
func (repo *SubmissionRepository) Upsert(submission *models.Submission) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.Submission
		result := tx.
			Where("user_id = ? AND training_id = ?", submission.UserID, submission.TrainingID).
			First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if result.Error == nil {
			submission.ID = existing.ID
			submission.CreatedAt = existing.CreatedAt
			if err := tx.Save(submission).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(submission).Error; err != nil {
				return err
			}
		}

		return tx.
			Where("user_id = ? AND training_id = ?", submission.UserID, submission.TrainingID).
			Delete(&models.TrainingProgress{}).Error
	})
}
