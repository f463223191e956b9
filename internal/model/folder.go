package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Folder is a node in a client's document tree. A nil ParentID marks a
// root-level folder.
type Folder struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  uuid.UUID  `json:"clientId"`
	ParentID  *uuid.UUID `json:"parentId"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FolderStore defines persistence operations for folders.
type FolderStore interface {
	Create(ctx context.Context, folder Folder) (Folder, error)
	GetByID(ctx context.Context, id uuid.UUID) (Folder, error)
	ListByParent(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]Folder, error)
}
