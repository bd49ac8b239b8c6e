package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/security"
	"github.com/veldwijk/crewplan/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Age         int    `json:"age"`
	CompanyName string `json:"company_name"`
	CompanyCode string `json:"company_code"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates either a new company with its first owner (company_name
// set) or an employee joining an existing company by code (company_code
// set). Exactly one of the two must be present.
func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "valid email and password are required")
	}
	if err := services.ValidateRegistrationProfile(input.Name, input.Age); err != nil {
		return apiError(c, fiber.StatusBadRequest, "name and a realistic age are required")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters with upper, lower and digit")
	}
	if (input.CompanyName == "") == (input.CompanyCode == "") {
		return apiError(c, fiber.StatusBadRequest, "provide either company_name or company_code")
	}

	exists, err := handler.repositories.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not check email")
	}
	if exists {
		return apiError(c, fiber.StatusBadRequest, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not hash password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Age:          input.Age,
	}

	if input.CompanyName != "" {
		company, err := handler.createCompanyWithCode(input.CompanyName)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not create company")
		}
		user.CompanyID = &company.ID
		user.Role = models.RoleOwner
	} else {
		code, err := services.NormalizeJoinCode(input.CompanyCode)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid company code")
		}
		company, err := handler.repositories.Companies.FindByCode(code)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown company code")
		}
		user.CompanyID = &company.ID
		user.Role = models.RoleEmployee
	}

	if err := handler.repositories.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not create user")
	}
	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not start session")
	}

	return c.Status(fiber.StatusCreated).JSON(userView(&user))
}

func (handler *Handler) createCompanyWithCode(name string) (*models.Company, error) {
	// Join codes are random over a 32-character alphabet; retry the
	// unlikely collision a few times before giving up.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := security.GenerateJoinCode(models.JoinCodeLength)
		if err != nil {
			return nil, err
		}
		company := models.Company{Name: name, Code: code}
		if err := handler.repositories.Companies.Create(&company); err != nil {
			continue
		}
		return &company, nil
	}
	return nil, errors.New("could not allocate a unique join code")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	user, err := handler.repositories.Users.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not start session")
	}

	return c.JSON(userView(&user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(userView(user))
}
