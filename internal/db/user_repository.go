package db

import (
	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) ListByCompany(companyID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("company_id = ?", companyID).
		Order("name ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindCompanyMembers loads the given users only when all of them belong to
// the company; a single foreign or unknown id fails the whole lookup.
func (repo *UserRepository) FindCompanyMembers(companyID uint, userIDs []uint) ([]models.User, error) {
	users := make([]models.User, 0, len(userIDs))
	if err := repo.database.
		Where("company_id = ? AND id IN ?", companyID, userIDs).
		Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) != len(userIDs) {
		return nil, gorm.ErrRecordNotFound
	}
	return users, nil
}

func (repo *UserRepository) UpdateRole(userID uint, role string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
}

func (repo *UserRepository) AdminExists() (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
