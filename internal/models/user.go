package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Roles a user can hold. Route access is decided on these values only.
const (
	RoleUser      = "user"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Name      string    `bun:"name,nullzero" json:"name,omitempty"`
	Role      string    `bun:"role,notnull" json:"role"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// RegisterRequest is the body of POST /users. Any role supplied here is
// ignored; registration always produces a plain "user".
type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=user librarian admin"`
}
