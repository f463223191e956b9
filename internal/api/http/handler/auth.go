package handler

import (
	"context"
	"net/http"

	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
)

// AuthService defines login and session lifecycle operations.
type AuthService interface {
	LoginAdmin(ctx context.Context, email, password string, meta model.RequestMeta) (model.TokenPair, error)
	LoginClient(ctx context.Context, cnpj, password string, meta model.RequestMeta) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta model.RequestMeta) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// LoginLimiter throttles login attempts per identifier and source IP.
type LoginLimiter interface {
	Allow(ctx context.Context, identifier, ip string) bool
	Reset(ctx context.Context, identifier, ip string)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	service AuthService
	limiter LoginLimiter
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, limiter LoginLimiter, logger *logger.Logger) *Auth {
	return &Auth{service: service, limiter: limiter, logger: logger}
}

type loginAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginClientRequest struct {
	CNPJ     string `json:"cnpj"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginAdmin authenticates an administrator by e-mail and password.
func (h *Auth) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req loginAdminRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	meta := RequestMeta(r)
	if !h.limiter.Allow(r.Context(), req.Email, meta.IP) {
		WriteError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	pair, err := h.service.LoginAdmin(r.Context(), req.Email, req.Password, meta)
	if err != nil {
		handleError(w, err)
		return
	}

	h.limiter.Reset(r.Context(), req.Email, meta.IP)
	h.logger.Info("Auth handler: admin login successful", "ip", meta.IP)
	WriteData(w, http.StatusOK, pair)
}

// LoginClient authenticates a client organization by CNPJ and password.
func (h *Auth) LoginClient(w http.ResponseWriter, r *http.Request) {
	var req loginClientRequest
	if err := decodeJSON(r, &req); err != nil || req.CNPJ == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "cnpj and password are required")
		return
	}

	meta := RequestMeta(r)
	if !h.limiter.Allow(r.Context(), req.CNPJ, meta.IP) {
		WriteError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	pair, err := h.service.LoginClient(r.Context(), req.CNPJ, req.Password, meta)
	if err != nil {
		handleError(w, err)
		return
	}

	h.limiter.Reset(r.Context(), req.CNPJ, meta.IP)
	h.logger.Info("Auth handler: client login successful", "ip", meta.IP)
	WriteData(w, http.StatusOK, pair)
}

// Refresh rotates the presented refresh token for a new token pair.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		WriteError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken, RequestMeta(r))
	if err != nil {
		handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, pair)
}

// Logout revokes the presented refresh token. Idempotent: revoking an
// unknown token still returns 204.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		WriteError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
