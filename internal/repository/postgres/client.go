package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.ClientStore = (*ClientRepository)(nil)

type ClientRepository struct {
	db *Connection
}

func NewClientRepository(db *Connection) *ClientRepository {
	return &ClientRepository{db: db}
}

const selectClient = `
        SELECT id, cnpj, name, user_id, is_active, created_at, updated_at
        FROM client
    `

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.db.Query(ctx, selectClient+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.CNPJ, &c.Name, &c.UserID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Client, error) {
	var c model.Client
	err := r.db.QueryRow(ctx, selectClient+` WHERE id = $1`, id).Scan(
		&c.ID, &c.CNPJ, &c.Name, &c.UserID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, model.ErrNotFound
		}
		return model.Client{}, fmt.Errorf("failed to get client by id: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) GetByCNPJ(ctx context.Context, cnpj string) (model.Client, error) {
	var c model.Client
	err := r.db.QueryRow(ctx, selectClient+` WHERE cnpj = $1`, cnpj).Scan(
		&c.ID, &c.CNPJ, &c.Name, &c.UserID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, model.ErrNotFound
		}
		return model.Client{}, fmt.Errorf("failed to get client by cnpj: %w", err)
	}
	return c, nil
}

// CreateWithUser provisions the client row and its login user together.
func (r *ClientRepository) CreateWithUser(ctx context.Context, client model.Client, user model.User) (model.Client, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to begin client creation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
        INSERT INTO app_user (id, role, cnpj, password_hash, is_active, created_at, updated_at)
        VALUES ($1, 'CLIENT', $2, $3, $4, NOW(), NOW())
    `, user.ID, user.CNPJ, user.PasswordHash, user.IsActive)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to create client user: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO client (id, cnpj, name, user_id, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `, client.ID, client.CNPJ, client.Name, client.UserID, client.IsActive)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Client{}, fmt.Errorf("failed to commit client creation: %w", err)
	}
	return client, nil
}

// Update applies the non-nil fields. Flipping is_active also flips the
// login user, in the same transaction.
func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, upd model.ClientUpdate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin client update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if upd.Name != nil {
		if _, err := tx.Exec(ctx, `
            UPDATE client SET name = $2, updated_at = NOW() WHERE id = $1
        `, id, *upd.Name); err != nil {
			return fmt.Errorf("failed to update client name: %w", err)
		}
	}
	if upd.IsActive != nil {
		if _, err := tx.Exec(ctx, `
            UPDATE client SET is_active = $2, updated_at = NOW() WHERE id = $1
        `, id, *upd.IsActive); err != nil {
			return fmt.Errorf("failed to update client active flag: %w", err)
		}
		if _, err := tx.Exec(ctx, `
            UPDATE app_user SET is_active = $2, updated_at = NOW()
            WHERE id = (SELECT user_id FROM client WHERE id = $1)
        `, id, *upd.IsActive); err != nil {
			return fmt.Errorf("failed to update client user active flag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit client update: %w", err)
	}
	return nil
}
