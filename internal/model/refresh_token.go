package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted, single-use session credential. Only the
// sha256 hex of the raw secret is stored; the plaintext leaves the server
// exactly once, at issuance. ReplacedBy links successive rotations into a
// linear, append-only chain.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
	ClientIP   string
	UserAgent  string
	CreatedAt  time.Time
}

// RequestMeta carries transport-level request attributes recorded with
// each refresh token row.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// RefreshTokenStore is the persistence contract required by the session
// rotation engine.
//
// Rotate must revoke the old row, insert the next one and link the old
// row's replaced_by in a single transaction, succeeding only if the old
// row is still unrevoked at update time. When two rotations race on the
// same predecessor, exactly one commits; the other observes
// ErrRefreshRevoked.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (RefreshToken, error)
	Rotate(ctx context.Context, oldID uuid.UUID, next RefreshToken) error
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}
