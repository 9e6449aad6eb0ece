package structs

import (
	"time"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/structs/tables"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub   uuid.UUID `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
	Jti   uuid.UUID `json:"jti"`
}

// IsAdmin reports whether the session carries the admin role. Admin is a
// real role attribute on the account, never inferred from the email address.
func (c *AuthClaims) IsAdmin() bool {
	return c.Role == tables.RoleAdmin
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}
