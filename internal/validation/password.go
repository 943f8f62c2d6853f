package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPasswordPolicy wraps every password rejection so callers can map the
// whole family to one response class.
var ErrPasswordPolicy = errors.New("password rejected")

// ValidatePassword validates password strength.
// Enforces NIST recommendations: minimum 12 characters, blocks common patterns.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("%w: must be at least 12 characters", ErrPasswordPolicy)
	}

	// bcrypt silently truncates passwords longer than 72 bytes.
	if len(password) > 72 {
		return fmt.Errorf("%w: must not exceed 72 characters", ErrPasswordPolicy)
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("%w: too common, please choose a stronger one", ErrPasswordPolicy)
		}
	}

	return nil
}
