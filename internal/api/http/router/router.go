package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/contabildrive/drive-server/internal/api/http/handler"
	"github.com/contabildrive/drive-server/internal/api/http/middleware"
	"github.com/contabildrive/drive-server/internal/obs"
)

// Config carries the handlers and middleware the router wires together.
type Config struct {
	Auth         *handler.Auth
	Admin        *handler.Admin
	Client       *handler.Client
	Health       *handler.Health
	Authenticate *middleware.Authenticate
	Logging      *middleware.Logging
	RateLimit    *middleware.RateLimit
}

// New builds the HTTP route tree. Authentication and role guards are
// applied per subtree; rate limiting and logging wrap everything.
func New(cfg Config) http.Handler {
	r := mux.NewRouter()
	r.Use(cfg.Logging.Handle)
	r.Use(cfg.RateLimit.Handle)
	r.Use(obs.Instrument)
	r.Use(securityHeaders)

	r.HandleFunc("/health", cfg.Health.Check).Methods(http.MethodGet)
	r.Handle("/metrics", obs.Handler()).Methods(http.MethodGet)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login-admin", cfg.Auth.LoginAdmin).Methods(http.MethodPost)
	auth.HandleFunc("/login-client", cfg.Auth.LoginClient).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", cfg.Auth.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", cfg.Auth.Logout).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(cfg.Authenticate.Handle)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/clients", cfg.Admin.ListClients).Methods(http.MethodGet)
	admin.HandleFunc("/clients", cfg.Admin.CreateClient).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{id}", cfg.Admin.GetClient).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{id}", cfg.Admin.UpdateClient).Methods(http.MethodPatch)
	admin.HandleFunc("/clients/{id}/folders", cfg.Admin.CreateFolder).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{id}/folders", cfg.Admin.ListFolders).Methods(http.MethodGet)
	admin.HandleFunc("/folders/{id}/files", cfg.Admin.UploadFile).Methods(http.MethodPost)
	admin.HandleFunc("/folders/{id}/files", cfg.Admin.ListFiles).Methods(http.MethodGet)
	admin.HandleFunc("/files/{id}/download-url", cfg.Admin.DownloadURL).Methods(http.MethodGet)
	admin.HandleFunc("/files/{id}", cfg.Admin.DeleteFile).Methods(http.MethodDelete)

	client := r.PathPrefix("/client").Subrouter()
	client.Use(cfg.Authenticate.Handle)
	client.Use(middleware.RequireClient)
	client.HandleFunc("/me", cfg.Client.Me).Methods(http.MethodGet)
	client.HandleFunc("/folders", cfg.Client.ListFolders).Methods(http.MethodGet)
	client.HandleFunc("/folders/{id}/files", cfg.Client.ListFiles).Methods(http.MethodGet)
	client.HandleFunc("/files/{id}/download-url", cfg.Client.DownloadURL).Methods(http.MethodGet)
	client.HandleFunc("/files/{id}/stream", cfg.Client.Stream).Methods(http.MethodGet)

	return r
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
