package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{db: db}
}

const selectFile = `
        SELECT id, client_id, folder_id, storage_key, original_filename, content_type, size_bytes, sha256_hex, created_at, deleted_at
        FROM file_object
    `

func (r *FileRepository) Create(ctx context.Context, file model.FileObject) (model.FileObject, error) {
	const query = `
        INSERT INTO file_object (id, client_id, folder_id, storage_key, original_filename, content_type, size_bytes, sha256_hex, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
    `
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, query,
		file.ID, file.ClientID, file.FolderID, file.StorageKey,
		file.OriginalFilename, file.ContentType, file.SizeBytes, file.SHA256Hex,
	)
	if err != nil {
		return model.FileObject{}, fmt.Errorf("failed to create file object: %w", err)
	}
	return file, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.FileObject, error) {
	return r.get(ctx, selectFile+` WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *FileRepository) GetByIDForClient(ctx context.Context, id, clientID uuid.UUID) (model.FileObject, error) {
	return r.get(ctx, selectFile+` WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL`, id, clientID)
}

func (r *FileRepository) get(ctx context.Context, query string, args ...any) (model.FileObject, error) {
	var f model.FileObject
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&f.ID, &f.ClientID, &f.FolderID, &f.StorageKey, &f.OriginalFilename,
		&f.ContentType, &f.SizeBytes, &f.SHA256Hex, &f.CreatedAt, &f.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FileObject{}, model.ErrNotFound
		}
		return model.FileObject{}, fmt.Errorf("failed to get file object: %w", err)
	}
	return f, nil
}

func (r *FileRepository) ListByFolder(ctx context.Context, clientID, folderID uuid.UUID) ([]model.FileObject, error) {
	rows, err := r.db.Query(ctx, selectFile+`
        WHERE client_id = $1 AND folder_id = $2 AND deleted_at IS NULL
        ORDER BY created_at DESC
    `, clientID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file objects: %w", err)
	}
	defer rows.Close()

	var files []model.FileObject
	for rows.Next() {
		var f model.FileObject
		if err := rows.Scan(
			&f.ID, &f.ClientID, &f.FolderID, &f.StorageKey, &f.OriginalFilename,
			&f.ContentType, &f.SizeBytes, &f.SHA256Hex, &f.CreatedAt, &f.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file object: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file objects: %w", err)
	}
	return files, nil
}

func (r *FileRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE file_object SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete file object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
