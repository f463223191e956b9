package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAdminByEmail(ctx context.Context, email string) (model.User, error) {
	const query = `
        SELECT id, email, password_hash, is_active, last_login_at, created_at, updated_at
        FROM app_user WHERE role = 'ADMIN' AND LOWER(email) = LOWER($1)
    `
	var u model.User
	u.Role = model.RoleAdmin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetClientLoginByCNPJ(ctx context.Context, cnpj string) (model.ClientLogin, error) {
	const query = `
        SELECT u.id, u.password_hash, u.is_active, c.id, c.is_active, c.cnpj, c.name
        FROM client c
        JOIN app_user u ON u.id = c.user_id
        WHERE c.cnpj = $1
    `
	var row model.ClientLogin
	err := r.db.QueryRow(ctx, query, cnpj).Scan(
		&row.UserID, &row.PasswordHash, &row.UserActive, &row.ClientID, &row.ClientActive, &row.CNPJ, &row.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ClientLogin{}, model.ErrNotFound
		}
		return model.ClientLogin{}, fmt.Errorf("failed to get client login by cnpj: %w", err)
	}
	return row, nil
}

func (r *UserRepository) GetSubjectStatus(ctx context.Context, userID uuid.UUID) (model.SubjectStatus, error) {
	const query = `
        SELECT u.role, u.is_active, COALESCE(u.cnpj, ''), c.id, COALESCE(c.is_active, FALSE)
        FROM app_user u
        LEFT JOIN client c ON c.user_id = u.id
        WHERE u.id = $1
    `
	var (
		status   model.SubjectStatus
		role     string
		clientID *uuid.UUID
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&role, &status.IsActive, &status.CNPJ, &clientID, &status.ClientActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SubjectStatus{}, model.ErrNotFound
		}
		return model.SubjectStatus{}, fmt.Errorf("failed to get subject status: %w", err)
	}
	status.Role = model.Role(role)
	status.ClientID = clientID
	return status, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE app_user SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}
	return nil
}

func (r *UserRepository) CreateAdmin(ctx context.Context, user model.User) (model.User, error) {
	const query = `
        INSERT INTO app_user (id, role, email, password_hash, is_active, created_at, updated_at)
        VALUES ($1, 'ADMIN', $2, $3, $4, NOW(), NOW())
    `
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, err := r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.IsActive); err != nil {
		return model.User{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}

func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM app_user WHERE role = 'ADMIN')`
	var exists bool
	if err := r.db.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for admin: %w", err)
	}
	return exists, nil
}
