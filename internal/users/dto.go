package user

import (
	"time"

	"github.com/verto-labs/verto-inventory/pkg/db/models"
)

// RegisterRequest is the JSON payload for account registration. Role is
// optional and defaults to the regular user role.
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
}

// LoginRequest is the JSON payload for credential login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserDTO is the API projection of an account. The storage identifier is
// exposed as userId; the password hash never leaves the service.
type UserDTO struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult carries the account projection plus its freshly minted token.
type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func toDTO(account models.User) UserDTO {
	return UserDTO{
		UserID:    account.ID.String(),
		Username:  account.Username,
		Role:      account.Role.String(),
		CreatedAt: account.CreatedAt,
	}
}
