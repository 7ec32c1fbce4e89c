// Package validation holds the pure domain rule checks. Every function
// accumulates all failing reasons in field order instead of stopping at the
// first, so callers can surface the complete list to the client.
package validation

import (
	"fmt"
	"strings"
)

const passwordSpecials = "@$!%*?&"

func checkRequiredString(value *string, maxLength int, field string) []string {
	if value == nil {
		return []string{fmt.Sprintf("%s must be a string", field)}
	}
	return checkString(*value, maxLength, field)
}

func checkString(value string, maxLength int, field string) []string {
	var reasons []string
	if strings.TrimSpace(value) == "" {
		reasons = append(reasons, fmt.Sprintf("%s cannot be empty", field))
	}
	if len(value) > maxLength {
		reasons = append(reasons, fmt.Sprintf("%s cannot exceed %d characters", field, maxLength))
	}
	return reasons
}

func checkMin(value float64, min float64, field string) []string {
	if value < min {
		return []string{fmt.Sprintf("%s cannot be less than %v", field, min)}
	}
	return nil
}

func checkIntMin(value, min int, field string) []string {
	if value < min {
		return []string{fmt.Sprintf("%s cannot be less than %d", field, min)}
	}
	return nil
}

func checkIntRange(value, min, max int, field string) []string {
	var reasons []string
	if value < min {
		reasons = append(reasons, fmt.Sprintf("%s cannot be less than %d", field, min))
	}
	if value > max {
		reasons = append(reasons, fmt.Sprintf("%s cannot be greater than %d", field, max))
	}
	return reasons
}

// checkPassword enforces the account password policy: at least 8 characters
// drawn from letters, digits and the special set, with at least one of each
// character class present.
func checkPassword(password string) []string {
	if password == "" {
		return []string{"Password is required"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	allAllowed := true
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			allAllowed = false
		}
	}

	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit || !hasSpecial || !allAllowed {
		return []string{"Password must contain at least 1 uppercase, 1 lowercase, 1 number, 1 special character and be at least 8 characters long"}
	}
	return nil
}

func checkUsername(username string) []string {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return []string{"Username is required"}
	}

	var reasons []string
	if len(trimmed) < 3 {
		reasons = append(reasons, "Username must be at least 3 characters")
	}
	if len(trimmed) > 30 {
		reasons = append(reasons, "Username cannot exceed 30 characters")
	}
	return reasons
}
