package utils

import "unicode"

// IsStrongPassword applies the server-side strength rule enforced on
// registration and recovery reset: at least 8 characters, at least one
// uppercase letter, and at least one digit.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasDigit
}
