package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/contabildrive/drive-server/internal/model"
)

// envelope is the uniform response body: {"success": true, "data": ...}
// on success, {"success": false, "error": {"message": ...}} on failure.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}

// WriteData writes a success envelope with the given status and payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// WriteError writes a failure envelope with the given status and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: &errorBody{Message: message}})
}

// ClientIP extracts the caller address, honoring X-Forwarded-For from a
// fronting proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestMeta captures the caller address and user agent for session
// bookkeeping and audit entries.
func RequestMeta(r *http.Request) model.RequestMeta {
	return model.RequestMeta{
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
