package model

import "github.com/google/uuid"

// Role classifies the two subject classes of the API.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// Valid reports whether the role is one of the known subject classes.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Principal is the verified identity attached to a request after access
// token validation. It is never persisted and is rebuilt per request from
// the token claims.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	ClientID *uuid.UUID
	CNPJ     string
}
