package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/security"
	"github.com/veldwijk/crewplan/internal/services"
)

func (handler *Handler) GetCompany(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	data := &services.PermissionData{CompanyID: user.CompanyID}
	if !services.HasPermission(user, services.ResourceCompany, services.ActionView, data) {
		return forbidden(c)
	}

	company, err := handler.repositories.Companies.FindByID(*user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "company not found")
	}
	return c.JSON(companyView(&company))
}

type companyUpdateInput struct {
	Name string `json:"name"`
}

func (handler *Handler) UpdateCompany(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	data := &services.PermissionData{CompanyID: user.CompanyID}
	if !services.HasPermission(user, services.ResourceCompany, services.ActionUpdate, data) {
		return forbidden(c)
	}

	input := companyUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apiError(c, fiber.StatusBadRequest, "company name is required")
	}

	if err := handler.repositories.Companies.UpdateName(*user.CompanyID, name); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not update company")
	}

	company, err := handler.repositories.Companies.FindByID(*user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load company")
	}
	return c.JSON(companyView(&company))
}

func (handler *Handler) ListCompanyMembers(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}
	if user.Role != models.RoleLeader && user.Role != models.RoleOwner {
		return forbidden(c)
	}

	members, err := handler.repositories.Users.ListByCompany(*user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not list members")
	}

	views := make([]fiber.Map, 0, len(members))
	for index := range members {
		views = append(views, userView(&members[index]))
	}
	return c.JSON(views)
}

type memberRoleInput struct {
	Role string `json:"role"`
}

// UpdateMemberRole lets an owner move a member between leader and employee.
// Owner and admin roles are never assignable through this endpoint.
func (handler *Handler) UpdateMemberRole(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil || user.Role != models.RoleOwner {
		return forbidden(c)
	}

	memberID, err := c.ParamsInt("id")
	if err != nil || memberID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid member id")
	}

	input := memberRoleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Role != models.RoleLeader && input.Role != models.RoleEmployee {
		return apiError(c, fiber.StatusBadRequest, "role must be leader or employee")
	}

	member, err := handler.repositories.Users.FindByID(uint(memberID))
	if err != nil {
		return forbidden(c)
	}
	if !member.SameCompany(user.CompanyID) || member.ID == user.ID {
		return forbidden(c)
	}
	if member.Role != models.RoleLeader && member.Role != models.RoleEmployee {
		return forbidden(c)
	}

	if err := handler.repositories.Users.UpdateRole(member.ID, input.Role); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not update role")
	}

	member.Role = input.Role
	return c.JSON(userView(&member))
}

func (handler *Handler) RegenerateCompanyCode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil || user.Role != models.RoleOwner {
		return forbidden(c)
	}

	code, err := security.GenerateJoinCode(models.JoinCodeLength)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not generate code")
	}
	if err := handler.repositories.Companies.UpdateCode(*user.CompanyID, code); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not update code")
	}

	company, err := handler.repositories.Companies.FindByID(*user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load company")
	}
	return c.JSON(companyView(&company))
}
