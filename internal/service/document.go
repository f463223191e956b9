package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
)

// ErrInvalidParent indicates a parent folder outside the client's tree.
var ErrInvalidParent = errors.New("invalid parent folder")

// downloadURLTTL bounds how long a generated download link stays valid.
const downloadURLTTL = 60 * time.Second

// Documents manages folder trees and file objects. File payloads pass
// through to blob storage untouched; only their size and sha256 are
// recorded.
type Documents struct {
	clients model.ClientStore
	folders model.FolderStore
	files   model.FileStore
	blobs   model.Storage
	audit   model.AuditStore
	logger  *logger.Logger
}

// NewDocuments creates the document service.
func NewDocuments(
	clients model.ClientStore,
	folders model.FolderStore,
	files model.FileStore,
	blobs model.Storage,
	audit model.AuditStore,
	logger *logger.Logger,
) *Documents {
	return &Documents{clients: clients, folders: folders, files: files, blobs: blobs, audit: audit, logger: logger}
}

// CreateFolder adds a folder under the given client, optionally nested.
func (d *Documents) CreateFolder(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID, name string) (model.Folder, error) {
	if _, err := d.clients.GetByID(ctx, clientID); err != nil {
		return model.Folder{}, err
	}

	if parentID != nil {
		parent, err := d.folders.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Folder{}, ErrInvalidParent
			}
			return model.Folder{}, fmt.Errorf("failed to check parent folder: %w", err)
		}
		if parent.ClientID != clientID {
			return model.Folder{}, ErrInvalidParent
		}
	}

	now := time.Now()
	folder := model.Folder{
		ID:        uuid.New(),
		ClientID:  clientID,
		ParentID:  parentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return d.folders.Create(ctx, folder)
}

// ListFolders returns the client's folders directly under parentID (nil
// for root level), sorted by name.
func (d *Documents) ListFolders(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]model.Folder, error) {
	if _, err := d.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return d.folders.ListByParent(ctx, clientID, parentID)
}

// ListFoldersForClient lists folders without the existence check, for
// client-scoped routes where the principal already proves the client.
func (d *Documents) ListFoldersForClient(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]model.Folder, error) {
	return d.folders.ListByParent(ctx, clientID, parentID)
}

// Upload stores a file payload and its metadata record. The content is
// hashed while streaming to blob storage.
func (d *Documents) Upload(ctx context.Context, folderID uuid.UUID, filename, contentType string, content []byte) (model.FileObject, error) {
	folder, err := d.folders.GetByID(ctx, folderID)
	if err != nil {
		return model.FileObject{}, err
	}

	sum := sha256.Sum256(content)
	id := uuid.New()
	key := fmt.Sprintf("clients/%s/folders/%s/%s-%s", folder.ClientID, folderID, id, sanitizeFilename(filename))

	if err := d.blobs.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		return model.FileObject{}, fmt.Errorf("failed to upload payload: %w", err)
	}

	file := model.FileObject{
		ID:               id,
		ClientID:         folder.ClientID,
		FolderID:         folderID,
		StorageKey:       key,
		OriginalFilename: filename,
		ContentType:      contentType,
		SizeBytes:        int64(len(content)),
		SHA256Hex:        hex.EncodeToString(sum[:]),
		CreatedAt:        time.Now(),
	}
	created, err := d.files.Create(ctx, file)
	if err != nil {
		return model.FileObject{}, fmt.Errorf("failed to persist file metadata: %w", err)
	}
	return created, nil
}

// ListFiles returns the folder's files, newest first.
func (d *Documents) ListFiles(ctx context.Context, folderID uuid.UUID) ([]model.FileObject, error) {
	folder, err := d.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return d.files.ListByFolder(ctx, folder.ClientID, folderID)
}

// ListFilesForClient returns files in a folder owned by the client.
func (d *Documents) ListFilesForClient(ctx context.Context, clientID, folderID uuid.UUID) ([]model.FileObject, error) {
	folder, err := d.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.ClientID != clientID {
		return nil, model.ErrNotFound
	}
	return d.files.ListByFolder(ctx, clientID, folderID)
}

// DownloadURL generates a short-lived presigned URL for the file.
func (d *Documents) DownloadURL(ctx context.Context, id uuid.UUID) (string, int, error) {
	file, err := d.files.GetByID(ctx, id)
	if err != nil {
		return "", 0, err
	}
	return d.presign(ctx, file)
}

// DownloadURLForClient is the client-scoped variant of DownloadURL.
func (d *Documents) DownloadURLForClient(ctx context.Context, id, clientID uuid.UUID) (string, int, error) {
	file, err := d.files.GetByIDForClient(ctx, id, clientID)
	if err != nil {
		return "", 0, err
	}
	return d.presign(ctx, file)
}

// Stream opens the file payload for a client-owned file.
func (d *Documents) Stream(ctx context.Context, id, clientID uuid.UUID) (io.ReadCloser, model.FileObject, error) {
	file, err := d.files.GetByIDForClient(ctx, id, clientID)
	if err != nil {
		return nil, model.FileObject{}, err
	}

	rc, err := d.blobs.Download(ctx, file.StorageKey)
	if err != nil {
		return nil, model.FileObject{}, fmt.Errorf("failed to open payload: %w", err)
	}
	return rc, file, nil
}

// Delete removes the payload from blob storage and soft-deletes the
// metadata record.
func (d *Documents) Delete(ctx context.Context, id uuid.UUID, actor model.Principal, meta model.RequestMeta) error {
	file, err := d.files.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := d.blobs.Delete(ctx, file.StorageKey); err != nil {
		return fmt.Errorf("failed to delete payload: %w", err)
	}

	if err := d.files.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to soft delete file: %w", err)
	}

	entryMeta, _ := json.Marshal(map[string]string{"storage_key": file.StorageKey})
	clientID := file.ClientID
	if err := d.audit.Append(ctx, model.AuditEntry{
		ID:          ulid.Make().String(),
		ActorUserID: actor.UserID,
		ClientID:    &clientID,
		Action:      model.AuditActionDelete,
		Entity:      "file_object",
		EntityID:    id.String(),
		Meta:        entryMeta,
		IP:          meta.IP,
		UserAgent:   meta.UserAgent,
		CreatedAt:   time.Now(),
	}); err != nil {
		d.logger.Error("Documents: failed to append audit entry", "file_id", id, "error", err.Error())
	}

	return nil
}

func (d *Documents) presign(ctx context.Context, file model.FileObject) (string, int, error) {
	url, err := d.blobs.PresignedGetURL(ctx, file.StorageKey, file.OriginalFilename, downloadURLTTL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to presign download url: %w", err)
	}
	return url, int(downloadURLTTL.Seconds()), nil
}

// sanitizeFilename strips anything unsafe for a storage key. The original
// filename is preserved separately on the record.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == ".." || name == "/" {
		return "file"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
