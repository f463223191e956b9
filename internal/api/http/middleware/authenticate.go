package middleware

import (
	"net/http"
	"strings"

	httpcontext "github.com/contabildrive/drive-server/internal/api/http/context"
	"github.com/contabildrive/drive-server/internal/api/http/handler"
	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
)

// Authenticate validates bearer tokens and injects the principal into
// the request context.
type Authenticate struct {
	manager model.TokenManager
	logger  *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(manager model.TokenManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{manager: manager, logger: logger}
}

// Handle parses the Authorization header, verifies the access token and
// passes the principal downstream. Missing and invalid tokens are
// indistinguishable to the caller.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			handler.WriteError(w, http.StatusUnauthorized, "invalid or missing access token")
			return
		}

		principal, err := m.manager.ParseAccessToken(raw)
		if err != nil {
			m.logger.Debug("Authenticate: token rejected", "error", err.Error())
			handler.WriteError(w, http.StatusUnauthorized, "invalid or missing access token")
			return
		}

		next.ServeHTTP(w, r.WithContext(httpcontext.WithPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin allows only ADMIN principals through.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(model.RoleAdmin, next)
}

// RequireClient allows only CLIENT principals with a bound client id.
func RequireClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpcontext.PrincipalFromContext(r.Context())
		if !ok {
			handler.WriteError(w, http.StatusUnauthorized, "invalid or missing access token")
			return
		}
		if p.Role != model.RoleClient || p.ClientID == nil {
			handler.WriteError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireRole(role model.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpcontext.PrincipalFromContext(r.Context())
		if !ok {
			handler.WriteError(w, http.StatusUnauthorized, "invalid or missing access token")
			return
		}
		if p.Role != role {
			handler.WriteError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
