package db

import (
	"errors"
	"time"

	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

// ErrShiftConflict reports that a conflicting shift was committed between
// validation and insert. The policy validator is only a pre-check; this
// transactional re-check is what actually guarantees that no two persisted
// shifts for the same user overlap.
var ErrShiftConflict = errors.New("conflicting shift already persisted")

type ScheduleRepository struct {
	database *gorm.DB
}

func NewScheduleRepository(database *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{database: database}
}

func (repo *ScheduleRepository) FindByID(scheduleID uint) (models.Schedule, error) {
	var shift models.Schedule
	if err := repo.database.First(&shift, scheduleID).Error; err != nil {
		return models.Schedule{}, err
	}
	return shift, nil
}

// ListForUserBetween returns a user's shifts intersecting [from, to), the
// context window the schedule validator operates on.
func (repo *ScheduleRepository) ListForUserBetween(userID uint, from, to time.Time) ([]models.Schedule, error) {
	shifts := make([]models.Schedule, 0)
	if err := repo.database.
		Where(`user_id = ? AND "start" < ? AND "end" > ?`, userID, to, from).
		Order(`"start" ASC`).
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (repo *ScheduleRepository) ListForCompanyBetween(companyID uint, from, to time.Time) ([]models.Schedule, error) {
	shifts := make([]models.Schedule, 0)
	if err := repo.database.
		Where(`company_id = ? AND "start" < ? AND "end" > ?`, companyID, to, from).
		Order(`"start" ASC, user_id ASC`).
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// CreateBatch inserts all shifts in one transaction. Each row is re-checked
// for overlap against committed shifts inside the transaction; the first
// conflict aborts the whole batch, so nothing is ever partially persisted.
func (repo *ScheduleRepository) CreateBatch(shifts []models.Schedule) error {
	if len(shifts) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for index := range shifts {
			shift := &shifts[index]

			var conflicting int64
			if err := tx.Model(&models.Schedule{}).
				Where(`user_id = ? AND "start" < ? AND "end" > ?`, shift.UserID, shift.End, shift.Start).
				Count(&conflicting).Error; err != nil {
				return err
			}
			if conflicting > 0 {
				return ErrShiftConflict
			}

			if err := tx.Create(shift).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ScheduleRepository) Update(shift *models.Schedule) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var conflicting int64
		if err := tx.Model(&models.Schedule{}).
			Where(`user_id = ? AND id <> ? AND "start" < ? AND "end" > ?`, shift.UserID, shift.ID, shift.End, shift.Start).
			Count(&conflicting).Error; err != nil {
			return err
		}
		if conflicting > 0 {
			return ErrShiftConflict
		}
		return tx.Save(shift).Error
	})
}

func (repo *ScheduleRepository) SetFinalized(scheduleID uint, finalized bool) error {
	return repo.database.Model(&models.Schedule{}).Where("id = ?", scheduleID).Update("finalized", finalized).Error
}

func (repo *ScheduleRepository) Delete(scheduleID uint) error {
	return repo.database.Delete(&models.Schedule{}, scheduleID).Error
}
