package db

import (
	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	database *gorm.DB
}

func NewCompanyRepository(database *gorm.DB) *CompanyRepository {
	return &CompanyRepository{database: database}
}

func (repo *CompanyRepository) FindByID(companyID uint) (models.Company, error) {
	var company models.Company
	if err := repo.database.First(&company, companyID).Error; err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (repo *CompanyRepository) FindByCode(code string) (models.Company, error) {
	var company models.Company
	if err := repo.database.Where("code = ?", code).First(&company).Error; err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (repo *CompanyRepository) Create(company *models.Company) error {
	return repo.database.Create(company).Error
}

func (repo *CompanyRepository) UpdateName(companyID uint, name string) error {
	return repo.database.Model(&models.Company{}).Where("id = ?", companyID).Update("name", name).Error
}

func (repo *CompanyRepository) UpdateCode(companyID uint, code string) error {
	return repo.database.Model(&models.Company{}).Where("id = ?", companyID).Update("code", code).Error
}
