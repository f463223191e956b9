package handler

import (
	"errors"
	"net/http"

	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/service"
)

// handleError maps service errors to status codes and uniform messages.
// All authentication failures share one 401 message so a caller cannot
// distinguish unknown tokens from revoked or expired ones.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrRefreshUnknown),
		errors.Is(err, model.ErrRefreshRevoked),
		errors.Is(err, model.ErrRefreshExpired),
		errors.Is(err, model.ErrSubjectInactive):
		WriteError(w, http.StatusUnauthorized, "invalid or expired refresh token")
	case errors.Is(err, model.ErrForbidden):
		WriteError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, model.ErrNotFound):
		WriteError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, model.ErrCNPJTaken):
		WriteError(w, http.StatusConflict, "cnpj already registered")
	case errors.Is(err, service.ErrInvalidCNPJ):
		WriteError(w, http.StatusBadRequest, "invalid cnpj")
	case errors.Is(err, service.ErrInvalidParent):
		WriteError(w, http.StatusBadRequest, "invalid parent folder")
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
