package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidateEmail checks length and RFC 5322 format via net/mail.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}
	// RFC 5321 caps the full address at 254 characters.
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address format")
	}
	return nil
}

// EmailDomain returns the lower-cased domain part of an address, or "" when
// there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
