package db

import (
	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

type TrainingRepository struct {
	database *gorm.DB
}

func NewTrainingRepository(database *gorm.DB) *TrainingRepository {
	return &TrainingRepository{database: database}
}

func (repo *TrainingRepository) FindByID(trainingID uint) (models.Training, error) {
	var training models.Training
	if err := repo.database.
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		}).
		First(&training, trainingID).Error; err != nil {
		return models.Training{}, err
	}
	return training, nil
}

func (repo *TrainingRepository) Create(training *models.Training) error {
	return repo.database.Create(training).Error
}

func (repo *TrainingRepository) ListByCompany(companyID uint) ([]models.Training, error) {
	trainings := make([]models.Training, 0)
	if err := repo.database.
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&trainings).Error; err != nil {
		return nil, err
	}
	return trainings, nil
}

func (repo *TrainingRepository) ListByCompanyAndRole(companyID uint, role string) ([]models.Training, error) {
	trainings := make([]models.Training, 0)
	if err := repo.database.
		Where("company_id = ? AND role = ?", companyID, role).
		Order("created_at DESC, id DESC").
		Find(&trainings).Error; err != nil {
		return nil, err
	}
	return trainings, nil
}

// Update replaces the training's metadata and its full question list.
func (repo *TrainingRepository) Update(training *models.Training) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", training.ID).Delete(&models.TrainingQuestion{}).Error; err != nil {
			return err
		}
		return tx.Save(training).Error
	})
}

func (repo *TrainingRepository) Delete(trainingID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", trainingID).Delete(&models.TrainingQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", trainingID).Delete(&models.TrainingProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", trainingID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Training{}, trainingID).Error
	})
}

func (repo *TrainingRepository) StartProgress(userID, trainingID uint) error {
	var existing int64
	if err := repo.database.Model(&models.TrainingProgress{}).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return repo.database.Create(&models.TrainingProgress{UserID: userID, TrainingID: trainingID}).Error
}

func (repo *TrainingRepository) HasProgress(userID, trainingID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.TrainingProgress{}).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
