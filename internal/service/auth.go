package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contabildrive/drive-server/internal/cnpj"
	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/obs"
	"github.com/contabildrive/drive-server/internal/password"
)

// Auth verifies credentials and drives the session lifecycle. Every login
// failure collapses to model.ErrInvalidCredentials so the caller cannot
// probe for account existence.
type Auth struct {
	users     model.UserStore
	hasher    *password.Hasher
	manager   model.TokenManager
	session   *Session
	accessTTL time.Duration
	logger    *logger.Logger
}

// NewAuth creates the authentication service.
func NewAuth(
	users model.UserStore,
	hasher *password.Hasher,
	manager model.TokenManager,
	session *Session,
	accessTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:     users,
		hasher:    hasher,
		manager:   manager,
		session:   session,
		accessTTL: accessTTL,
		logger:    logger,
	}
}

// LoginAdmin authenticates the administrator by e-mail and password.
func (a *Auth) LoginAdmin(ctx context.Context, email, rawPassword string, meta model.RequestMeta) (model.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.users.GetAdminByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth: admin lookup failed", "error", err.Error())
		}
		obs.IncLoginFailure(string(model.RoleAdmin))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if !user.IsActive {
		obs.IncLoginFailure(string(model.RoleAdmin))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if ok := a.verifyPassword(rawPassword, user.PasswordHash); !ok {
		obs.IncLoginFailure(string(model.RoleAdmin))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	a.touchLastLogin(ctx, user.ID)

	principal := model.Principal{UserID: user.ID, Role: model.RoleAdmin}
	return a.issuePair(ctx, principal, meta)
}

// LoginClient authenticates a client organization by CNPJ and password.
func (a *Auth) LoginClient(ctx context.Context, rawCNPJ, rawPassword string, meta model.RequestMeta) (model.TokenPair, error) {
	key := cnpj.Normalize(rawCNPJ)

	row, err := a.users.GetClientLoginByCNPJ(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth: client lookup failed", "error", err.Error())
		}
		obs.IncLoginFailure(string(model.RoleClient))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if !row.UserActive || !row.ClientActive {
		obs.IncLoginFailure(string(model.RoleClient))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if ok := a.verifyPassword(rawPassword, row.PasswordHash); !ok {
		obs.IncLoginFailure(string(model.RoleClient))
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	a.touchLastLogin(ctx, row.UserID)

	clientID := row.ClientID
	principal := model.Principal{
		UserID:   row.UserID,
		Role:     model.RoleClient,
		ClientID: &clientID,
		CNPJ:     row.CNPJ,
	}
	return a.issuePair(ctx, principal, meta)
}

// Refresh rotates the presented refresh token and mints a new pair.
func (a *Auth) Refresh(ctx context.Context, presented string, meta model.RequestMeta) (model.TokenPair, error) {
	raw, status, userID, err := a.session.Rotate(ctx, presented, meta)
	if err != nil {
		return model.TokenPair{}, err
	}

	principal := model.Principal{UserID: userID, Role: status.Role}
	if status.Role == model.RoleClient {
		principal.ClientID = status.ClientID
		principal.CNPJ = status.CNPJ
	}

	access, err := a.manager.GenerateAccessToken(principal)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return model.TokenPair{
		TokenType:    "Bearer",
		AccessToken:  access,
		ExpiresIn:    int(a.accessTTL.Seconds()),
		RefreshToken: raw,
	}, nil
}

// Logout revokes the presented refresh token. Always succeeds from the
// caller's point of view.
func (a *Auth) Logout(ctx context.Context, presented string) error {
	return a.session.Revoke(ctx, presented)
}

// EnsureBootstrapAdmin creates the first admin account when none exists
// and bootstrap credentials are configured. Safe to call on every start.
func (a *Auth) EnsureBootstrapAdmin(ctx context.Context, email, rawPassword string) error {
	if email == "" || rawPassword == "" {
		return nil
	}

	exists, err := a.users.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := a.hasher.Hash(rawPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	now := time.Now()
	_, err = a.users.CreateAdmin(ctx, model.User{
		ID:           uuid.New(),
		Role:         model.RoleAdmin,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	a.logger.Info("Auth: bootstrap admin created")
	return nil
}

func (a *Auth) verifyPassword(raw, hash string) bool {
	ok, err := a.hasher.Verify(raw, hash)
	if err != nil {
		a.logger.Error("Auth: password verification failed", "error", err.Error())
		return false
	}
	return ok
}

// touchLastLogin is best-effort: a failed touch never fails the login.
func (a *Auth) touchLastLogin(ctx context.Context, userID uuid.UUID) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := a.users.TouchLastLogin(bg, userID); err != nil {
			a.logger.Warn("Auth: failed to touch last login", "user_id", userID, "error", err.Error())
		}
	}()
}

func (a *Auth) issuePair(ctx context.Context, principal model.Principal, meta model.RequestMeta) (model.TokenPair, error) {
	access, err := a.manager.GenerateAccessToken(principal)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.session.Issue(ctx, principal.UserID, meta)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return model.TokenPair{
		TokenType:    "Bearer",
		AccessToken:  access,
		ExpiresIn:    int(a.accessTTL.Seconds()),
		RefreshToken: refresh,
	}, nil
}
