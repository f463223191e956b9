package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a stored login credential record. Admins log in by e-mail,
// client users by the CNPJ of their organization. The login key is unique
// within its role's namespace.
type User struct {
	ID           uuid.UUID
	Role         Role
	Email        string
	CNPJ         string
	PasswordHash string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientLogin joins a client organization with its login user, resolved
// for password verification.
type ClientLogin struct {
	UserID       uuid.UUID
	PasswordHash string
	UserActive   bool
	ClientID     uuid.UUID
	ClientActive bool
	CNPJ         string
	Name         string
}

// SubjectStatus reports whether a subject may still hold a session and
// which client it is bound to. Checked on every refresh rotation.
type SubjectStatus struct {
	Role         Role
	IsActive     bool
	ClientID     *uuid.UUID
	ClientActive bool
	CNPJ         string
}

// UserStore defines persistence operations for login credentials.
type UserStore interface {
	GetAdminByEmail(ctx context.Context, email string) (User, error)
	GetClientLoginByCNPJ(ctx context.Context, cnpj string) (ClientLogin, error)
	GetSubjectStatus(ctx context.Context, userID uuid.UUID) (SubjectStatus, error)
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
	CreateAdmin(ctx context.Context, user User) (User, error)
	HasAdmin(ctx context.Context) (bool, error)
}
