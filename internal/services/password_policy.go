package services

import (
	"errors"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

const minPasswordRunes = 8

const (
	classUpper = 1 << iota
	classLower
	classDigit

	classAll = classUpper | classLower | classDigit
)

// ValidatePasswordStrength accepts a password of at least eight runes mixing
// upper case, lower case, and digits. Length counts runes, not bytes, so
// multibyte characters are not penalized.
func ValidatePasswordStrength(password string) error {
	var length, classes int
	for _, char := range password {
		length++
		switch {
		case unicode.IsUpper(char):
			classes |= classUpper
		case unicode.IsLower(char):
			classes |= classLower
		case unicode.IsDigit(char):
			classes |= classDigit
		}
	}

	if length < minPasswordRunes || classes != classAll {
		return ErrWeakPassword
	}
	return nil
}
