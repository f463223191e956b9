package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/obs"
)

// refreshSecretBytes is the entropy of a raw refresh secret. 48 bytes
// keeps stored hashes pairwise distinct for any realistic token volume.
const refreshSecretBytes = 48

// Session is the refresh token rotation engine. It is the only component
// that creates or revokes refresh token rows. Correctness under
// concurrent rotation is pushed into the store's conditional update; the
// engine holds no mutable state of its own.
type Session struct {
	store      model.RefreshTokenStore
	users      model.UserStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

// NewSession creates a rotation engine over the given stores.
func NewSession(store model.RefreshTokenStore, users model.UserStore, refreshTTL time.Duration, logger *logger.Logger) *Session {
	return &Session{store: store, users: users, refreshTTL: refreshTTL, logger: logger}
}

// Issue mints a fresh refresh token for the subject and returns the raw
// secret. This is the only moment the plaintext exists server-side; only
// its hash is persisted.
func (s *Session) Issue(ctx context.Context, userID uuid.UUID, meta model.RequestMeta) (string, error) {
	raw, err := newSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}

	now := time.Now()
	rt := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashSecret(raw),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
		ClientIP:  meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return raw, nil
}

// Rotate consumes the presented refresh token and issues its successor.
// Order is fixed: hash lookup, revoked check (the replay-detection path),
// expiry check, then subject status. The store's conditional update is
// the arbiter for concurrent rotations of the same token: the loser gets
// ErrRefreshRevoked and must re-authenticate, never retry.
func (s *Session) Rotate(ctx context.Context, presented string, meta model.RequestMeta) (string, model.SubjectStatus, uuid.UUID, error) {
	rt, err := s.store.GetByHash(ctx, hashSecret(presented))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshUnknown
		}
		s.logger.Error("Session: refresh token lookup failed", "error", err.Error())
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshUnknown
	}

	if rt.RevokedAt != nil {
		obs.IncRefreshReplay()
		s.logger.Warn("Session: revoked refresh token presented", "user_id", rt.UserID, "ip", meta.IP)
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshRevoked
	}
	if !time.Now().Before(rt.ExpiresAt) {
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshExpired
	}

	status, err := s.users.GetSubjectStatus(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.SubjectStatus{}, uuid.Nil, model.ErrSubjectInactive
		}
		s.logger.Error("Session: subject status lookup failed", "error", err.Error())
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshUnknown
	}
	if !status.IsActive {
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrSubjectInactive
	}
	if status.Role == model.RoleClient && (status.ClientID == nil || !status.ClientActive) {
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrSubjectInactive
	}

	raw, err := newSecret()
	if err != nil {
		return "", model.SubjectStatus{}, uuid.Nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}

	now := time.Now()
	next := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    rt.UserID,
		TokenHash: hashSecret(raw),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
		ClientIP:  meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
	}

	if err := s.store.Rotate(ctx, rt.ID, next); err != nil {
		if errors.Is(err, model.ErrRefreshRevoked) {
			// Lost the race to a concurrent rotation.
			obs.IncRefreshReplay()
			s.logger.Warn("Session: concurrent rotation detected", "user_id", rt.UserID, "ip", meta.IP)
			return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshRevoked
		}
		s.logger.Error("Session: rotation commit failed", "error", err.Error())
		return "", model.SubjectStatus{}, uuid.Nil, model.ErrRefreshUnknown
	}

	return raw, status, rt.UserID, nil
}

// Revoke marks the presented token revoked. Revoking an unknown or
// already-revoked token is a silent no-op: logout never fails loudly.
func (s *Session) Revoke(ctx context.Context, presented string) error {
	rt, err := s.store.GetByHash(ctx, hashSecret(presented))
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Session: revoke lookup failed", "error", err.Error())
		}
		return nil
	}

	if err := s.store.Revoke(ctx, rt.ID); err != nil {
		s.logger.Error("Session: revoke failed", "error", err.Error())
	}
	return nil
}

// RevokeAllForUser ends every outstanding session of the subject. Used
// when a client organization is deactivated.
func (s *Session) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func newSecret() (string, error) {
	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
