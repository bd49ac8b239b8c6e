package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/veldwijk/crewplan/internal/models"
)

// AuthRequired authenticates the request via the session cookie and stores
// the loaded user in locals. When the token has passed the midpoint of its
// lifetime a fresh cookie is issued so active sessions never expire.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, claims, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)

	if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < authTokenTTL/2 {
		if err := handler.setAuthCookie(c, user); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not refresh session")
		}
	}

	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, *authClaims, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, nil, errors.New("missing auth cookie")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, nil, errors.New("token expired")
	}

	user, err := handler.repositories.Users.FindByID(claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	return &user, claims, nil
}
