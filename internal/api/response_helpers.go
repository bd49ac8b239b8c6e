package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
)

// Load helpers report failures through these sentinels; the handler maps
// them onto a response. An unknown id and a denied one answer identically.
var (
	errInvalidID = errors.New("invalid resource id")
	errDenied    = errors.New("access denied")
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func forbidden(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusForbidden, "forbidden")
}

func respondLoadError(c *fiber.Ctx, err error, noun string) error {
	if errors.Is(err, errInvalidID) {
		return apiError(c, fiber.StatusBadRequest, "invalid "+noun+" id")
	}
	return forbidden(c)
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
