package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FileObject is the metadata record of an uploaded document. The payload
// itself lives in blob storage under StorageKey; the server never
// inspects file bytes beyond hashing them on upload.
type FileObject struct {
	ID               uuid.UUID  `json:"id"`
	ClientID         uuid.UUID  `json:"clientId"`
	FolderID         uuid.UUID  `json:"folderId"`
	StorageKey       string     `json:"-"`
	OriginalFilename string     `json:"originalFilename"`
	ContentType      string     `json:"contentType"`
	SizeBytes        int64      `json:"sizeBytes"`
	SHA256Hex        string     `json:"sha256"`
	CreatedAt        time.Time  `json:"createdAt"`
	DeletedAt        *time.Time `json:"-"`
}

// FileStore defines persistence operations for file metadata. Lookups
// exclude soft-deleted rows.
type FileStore interface {
	Create(ctx context.Context, file FileObject) (FileObject, error)
	GetByID(ctx context.Context, id uuid.UUID) (FileObject, error)
	GetByIDForClient(ctx context.Context, id, clientID uuid.UUID) (FileObject, error)
	ListByFolder(ctx context.Context, clientID, folderID uuid.UUID) ([]FileObject, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
