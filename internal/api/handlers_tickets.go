package api

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/services"
)

func ticketPermissionData(ticket *models.Ticket) *services.PermissionData {
	return &services.PermissionData{
		UserID:    ticket.UserID,
		CompanyID: ticket.CompanyID,
		Closed:    ticket.Closed,
	}
}

func (handler *Handler) loadAuthorizedTicket(c *fiber.Ctx, action services.Action) (*models.User, *models.Ticket, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, errDenied
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return nil, nil, errInvalidID
	}

	ticket, err := handler.repositories.Tickets.FindByID(uint(ticketID))
	if err != nil {
		// Not found is indistinguishable from not yours.
		return nil, nil, errDenied
	}

	if !services.HasPermission(user, services.ResourceTickets, action, ticketPermissionData(&ticket)) {
		return nil, nil, errDenied
	}
	return user, &ticket, nil
}

// ListTickets returns the tickets the caller may see: admins get the
// company-less queue, leaders and owners their company's tickets, employees
// only their own.
func (handler *Handler) ListTickets(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return forbidden(c)
	}

	var (
		tickets []models.Ticket
		err     error
	)
	switch user.Role {
	case models.RoleAdmin:
		tickets, err = handler.repositories.Tickets.ListCompanyLess()
	case models.RoleLeader, models.RoleOwner:
		if user.CompanyID == nil {
			return forbidden(c)
		}
		tickets, err = handler.repositories.Tickets.ListByCompany(*user.CompanyID)
	case models.RoleEmployee:
		tickets, err = handler.repositories.Tickets.ListByUser(user.ID)
	default:
		return forbidden(c)
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not list tickets")
	}

	return c.JSON(ticketListView(tickets))
}

// CreateTicket accepts multipart form data so a single optional attachment
// can ride along. An "audience" value of "admin" leaves CompanyID nil,
// addressing the ticket to the platform admins.
func (handler *Handler) CreateTicket(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return forbidden(c)
	}
	if !services.HasPermission(user, services.ResourceTickets, services.ActionCreate, &services.PermissionData{}) {
		return forbidden(c)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))
	if title == "" || content == "" {
		return apiError(c, fiber.StatusBadRequest, "title and content are required")
	}

	ticket := models.Ticket{
		UserID:  user.ID,
		Title:   title,
		Content: content,
	}
	if c.FormValue("audience") != "admin" {
		if user.CompanyID == nil {
			return apiError(c, fiber.StatusBadRequest, "company ticket requires a company")
		}
		ticket.CompanyID = user.CompanyID
	}

	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		storedName, err := handler.storeAttachment(c, file)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not store attachment")
		}
		ticket.AttachmentName = storedName
	}

	if err := handler.repositories.Tickets.Create(&ticket); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not create ticket")
	}
	return c.Status(fiber.StatusCreated).JSON(ticketView(&ticket))
}

func (handler *Handler) GetTicket(c *fiber.Ctx) error {
	_, ticket, err := handler.loadAuthorizedTicket(c, services.ActionView)
	if err != nil {
		return respondLoadError(c, err, "ticket")
	}
	return c.JSON(ticketView(ticket))
}

type ticketResponseInput struct {
	Content string `json:"content"`
}

func (handler *Handler) RespondToTicket(c *fiber.Ctx) error {
	user, ticket, err := handler.loadAuthorizedTicket(c, services.ActionRespond)
	if err != nil {
		return respondLoadError(c, err, "ticket")
	}
	if ticket.Closed {
		return apiError(c, fiber.StatusBadRequest, "ticket is closed")
	}

	input := ticketResponseInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return apiError(c, fiber.StatusBadRequest, "content is required")
	}

	response := models.TicketResponse{
		TicketID: ticket.ID,
		UserID:   user.ID,
		Content:  content,
	}
	if err := handler.repositories.Tickets.AppendResponse(&response); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not add response")
	}

	updated, err := handler.repositories.Tickets.FindByID(ticket.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load ticket")
	}
	return c.JSON(ticketView(&updated))
}

func (handler *Handler) CloseTicket(c *fiber.Ctx) error {
	_, ticket, err := handler.loadAuthorizedTicket(c, services.ActionClose)
	if err != nil {
		return respondLoadError(c, err, "ticket")
	}

	if err := handler.repositories.Tickets.SetClosed(ticket.ID, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not close ticket")
	}
	ticket.Closed = true
	return c.JSON(ticketView(ticket))
}

func (handler *Handler) DeleteTicket(c *fiber.Ctx) error {
	_, ticket, err := handler.loadAuthorizedTicket(c, services.ActionDelete)
	if err != nil {
		return respondLoadError(c, err, "ticket")
	}

	if ticket.AttachmentName != "" && handler.attachmentPath != "" {
		// Best effort: a missing file must not block the delete.
		_ = os.Remove(filepath.Join(handler.attachmentPath, ticket.AttachmentName))
	}
	if err := handler.repositories.Tickets.Delete(ticket.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not delete ticket")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// storeAttachment saves the upload under a random name, keeping only the
// original extension. The client-supplied filename never reaches the disk.
func (handler *Handler) storeAttachment(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if handler.attachmentPath == "" {
		return "", errors.New("attachment storage is not configured")
	}
	if err := os.MkdirAll(handler.attachmentPath, 0o755); err != nil {
		return "", err
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	storedName := uuid.NewString() + extension
	if err := c.SaveFile(file, filepath.Join(handler.attachmentPath, storedName)); err != nil {
		return "", err
	}
	return storedName, nil
}
