package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	httpcontext "github.com/contabildrive/drive-server/internal/api/http/context"
	"github.com/contabildrive/drive-server/internal/logger"
)

// Client handles HTTP endpoints scoped to the authenticated client
// organization. Every operation is bounded by the principal's client id;
// resources of other tenants are indistinguishable from missing ones.
type Client struct {
	clients   ClientService
	documents DocumentService
	logger    *logger.Logger
}

// NewClient creates a new Client handler.
func NewClient(clients ClientService, documents DocumentService, logger *logger.Logger) *Client {
	return &Client{clients: clients, documents: documents, logger: logger}
}

// Me returns the authenticated client organization.
func (h *Client) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := httpcontext.PrincipalFromContext(r.Context())

	client, err := h.clients.Get(r.Context(), *p.ClientID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, client)
}

// ListFolders lists the client's folders under the optional parentId query.
func (h *Client) ListFolders(w http.ResponseWriter, r *http.Request) {
	p, _ := httpcontext.PrincipalFromContext(r.Context())

	parentID, ok := queryParentID(w, r)
	if !ok {
		return
	}

	folders, err := h.documents.ListFoldersForClient(r.Context(), *p.ClientID, parentID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, folders)
}

// ListFiles lists files in a folder the client owns.
func (h *Client) ListFiles(w http.ResponseWriter, r *http.Request) {
	p, _ := httpcontext.PrincipalFromContext(r.Context())

	folderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	files, err := h.documents.ListFilesForClient(r.Context(), *p.ClientID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, files)
}

// DownloadURL returns a short-lived presigned URL for a client-owned file.
func (h *Client) DownloadURL(w http.ResponseWriter, r *http.Request) {
	p, _ := httpcontext.PrincipalFromContext(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	url, expiresIn, err := h.documents.DownloadURLForClient(r.Context(), id, *p.ClientID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, downloadURLResponse{URL: url, ExpiresIn: expiresIn})
}

// Stream serves the file payload directly through the API.
func (h *Client) Stream(w http.ResponseWriter, r *http.Request) {
	p, _ := httpcontext.PrincipalFromContext(r.Context())

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rc, file, err := h.documents.Stream(r.Context(), id, *p.ClientID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalFilename))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Client handler: stream interrupted", "file_id", file.ID, "error", err.Error())
	}
}
