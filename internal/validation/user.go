package validation

import (
	"fmt"
	"strings"

	"github.com/verto-labs/verto-inventory/pkg/enums"
)

// Register validates a registration payload. Role is optional and defaults
// downstream; when present it must name a known role.
func Register(username, password string, role *string) []string {
	var reasons []string

	reasons = append(reasons, checkUsername(username)...)
	reasons = append(reasons, checkPassword(password)...)
	if role != nil && !enums.Role(strings.ToLower(strings.TrimSpace(*role))).IsValid() {
		reasons = append(reasons, fmt.Sprintf("Role must be one of: %s", strings.Join(enums.RoleValues(), ", ")))
	}

	return reasons
}

// Login validates a login payload with the same username and password policy
// used at registration.
func Login(username, password string) []string {
	var reasons []string
	reasons = append(reasons, checkUsername(username)...)
	reasons = append(reasons, checkPassword(password)...)
	return reasons
}
