package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Client is a tenant organization owning a folder tree of documents.
type Client struct {
	ID        uuid.UUID `json:"id"`
	CNPJ      string    `json:"cnpj"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"-"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientUpdate carries the mutable client fields. Nil means unchanged.
// Setting IsActive also flips the login user's active flag.
type ClientUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ClientStore defines persistence operations for client organizations.
type ClientStore interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	GetByCNPJ(ctx context.Context, cnpj string) (Client, error)
	CreateWithUser(ctx context.Context, client Client, user User) (Client, error)
	Update(ctx context.Context, id uuid.UUID, upd ClientUpdate) error
}
