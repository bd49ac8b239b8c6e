package db

import (
	"github.com/veldwijk/crewplan/internal/models"
	"gorm.io/gorm"
)

type TicketRepository struct {
	database *gorm.DB
}

func NewTicketRepository(database *gorm.DB) *TicketRepository {
	return &TicketRepository{database: database}
}

func (repo *TicketRepository) FindByID(ticketID uint) (models.Ticket, error) {
	var ticket models.Ticket
	if err := repo.database.
		Preload("Responses", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		First(&ticket, ticketID).Error; err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (repo *TicketRepository) Create(ticket *models.Ticket) error {
	return repo.database.Create(ticket).Error
}

func (repo *TicketRepository) ListByUser(userID uint) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (repo *TicketRepository) ListByCompany(companyID uint) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := repo.database.
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListCompanyLess returns admin-directed tickets, which belong to no company.
func (repo *TicketRepository) ListCompanyLess() ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := repo.database.
		Where("company_id IS NULL").
		Order("created_at DESC, id DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (repo *TicketRepository) AppendResponse(response *models.TicketResponse) error {
	return repo.database.Create(response).Error
}

func (repo *TicketRepository) SetClosed(ticketID uint, closed bool) error {
	return repo.database.Model(&models.Ticket{}).Where("id = ?", ticketID).Update("closed", closed).Error
}

func (repo *TicketRepository) Delete(ticketID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.TicketResponse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ticket{}, ticketID).Error
	})
}
