package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

const insertRefreshToken = `
        INSERT INTO refresh_token (
            id, user_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, ip, user_agent, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
    `

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, insertRefreshToken,
		token.ID, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt, token.ReplacedBy, token.ClientIP, token.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	const query = `
        SELECT id, user_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, ip, user_agent, created_at
        FROM refresh_token WHERE token_hash = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&rt.ID, &rt.UserID, &rt.TokenHash, &rt.IssuedAt, &rt.ExpiresAt,
		&rt.RevokedAt, &rt.ReplacedBy, &rt.ClientIP, &rt.UserAgent, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by hash: %w", err)
	}
	return rt, nil
}

// Rotate inserts the successor row and conditionally revokes the
// predecessor in one transaction. The conditional update is the race
// arbiter: when it touches zero rows the predecessor was already consumed
// and the whole transaction rolls back with model.ErrRefreshRevoked.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID uuid.UUID, next model.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if next.ID == uuid.Nil {
		next.ID = uuid.New()
	}

	_, err = tx.Exec(ctx, insertRefreshToken,
		next.ID, next.UserID, next.TokenHash, next.IssuedAt, next.ExpiresAt,
		next.RevokedAt, next.ReplacedBy, next.ClientIP, next.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert successor: %w", err)
	}

	tag, err := tx.Exec(ctx, `
        UPDATE refresh_token SET revoked_at = NOW(), replaced_by = $2
        WHERE id = $1 AND revoked_at IS NULL
    `, oldID, next.ID)
	if err != nil {
		return fmt.Errorf("failed to revoke predecessor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRefreshRevoked
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE refresh_token SET revoked_at = NOW()
        WHERE id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE refresh_token SET revoked_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}
