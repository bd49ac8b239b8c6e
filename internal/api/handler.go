package api

import (
	"time"

	"github.com/veldwijk/crewplan/internal/db"
	"gorm.io/gorm"
)

const (
	authCookieName = "crewplan_session"
	authTokenTTL   = 24 * time.Hour

	contextUserKey = "current_user"
)

type Handler struct {
	repositories   *db.Repositories
	secretKey      []byte
	curfewLocation *time.Location
	attachmentPath string
	cookieSecure   bool
}

func NewHandler(database *gorm.DB, secretKey string, curfewLocation *time.Location, attachmentPath string, cookieSecure bool) *Handler {
	if curfewLocation == nil {
		curfewLocation = time.UTC
	}
	return &Handler{
		repositories:   db.NewRepositories(database),
		secretKey:      []byte(secretKey),
		curfewLocation: curfewLocation,
		attachmentPath: attachmentPath,
		cookieSecure:   cookieSecure,
	}
}
