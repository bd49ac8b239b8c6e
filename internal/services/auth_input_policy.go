package services

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/veldwijk/crewplan/internal/models"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrJoinCodeInvalid        = errors.New("company join code invalid")
	ErrRegistrationInvalid    = errors.New("registration input invalid")
)

var joinCodeFormatRegex = regexp.MustCompile(`^[A-Z2-9]{8}$`)

const (
	minRegistrationAge = 14
	maxRegistrationAge = 120
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// NormalizeJoinCode upper-cases and validates the 8-character company code.
func NormalizeJoinCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != models.JoinCodeLength || !joinCodeFormatRegex.MatchString(code) {
		return "", ErrJoinCodeInvalid
	}
	return code, nil
}

func ValidateRegistrationProfile(name string, age int) error {
	if strings.TrimSpace(name) == "" {
		return ErrRegistrationInvalid
	}
	if age < minRegistrationAge || age > maxRegistrationAge {
		return ErrRegistrationInvalid
	}
	return nil
}
