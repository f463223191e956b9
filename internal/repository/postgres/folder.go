package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.FolderStore = (*FolderRepository)(nil)

type FolderRepository struct {
	db *Connection
}

func NewFolderRepository(db *Connection) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, folder model.Folder) (model.Folder, error) {
	const query = `
        INSERT INTO folder (id, client_id, parent_id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
    `
	if folder.ID == uuid.Nil {
		folder.ID = uuid.New()
	}
	if _, err := r.db.Exec(ctx, query, folder.ID, folder.ClientID, folder.ParentID, folder.Name); err != nil {
		return model.Folder{}, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Folder, error) {
	const query = `
        SELECT id, client_id, parent_id, name, created_at, updated_at
        FROM folder WHERE id = $1
    `
	var f model.Folder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.ClientID, &f.ParentID, &f.Name, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Folder{}, model.ErrNotFound
		}
		return model.Folder{}, fmt.Errorf("failed to get folder by id: %w", err)
	}
	return f, nil
}

func (r *FolderRepository) ListByParent(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]model.Folder, error) {
	const query = `
        SELECT id, client_id, parent_id, name, created_at, updated_at
        FROM folder
        WHERE client_id = $1 AND parent_id IS NOT DISTINCT FROM $2
        ORDER BY name ASC
    `
	rows, err := r.db.Query(ctx, query, clientID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.ClientID, &f.ParentID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	return folders, nil
}
