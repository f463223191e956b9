package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	httpcontext "github.com/contabildrive/drive-server/internal/api/http/context"
	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
)

// ClientService defines client organization management operations.
type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id uuid.UUID) (model.Client, error)
	Create(ctx context.Context, cnpj, name, password string, actor model.Principal, meta model.RequestMeta) (model.Client, error)
	Update(ctx context.Context, id uuid.UUID, upd model.ClientUpdate, actor model.Principal, meta model.RequestMeta) error
}

// DocumentService defines folder and file operations.
type DocumentService interface {
	CreateFolder(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID, name string) (model.Folder, error)
	ListFolders(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]model.Folder, error)
	ListFoldersForClient(ctx context.Context, clientID uuid.UUID, parentID *uuid.UUID) ([]model.Folder, error)
	Upload(ctx context.Context, folderID uuid.UUID, filename, contentType string, content []byte) (model.FileObject, error)
	ListFiles(ctx context.Context, folderID uuid.UUID) ([]model.FileObject, error)
	ListFilesForClient(ctx context.Context, clientID, folderID uuid.UUID) ([]model.FileObject, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, int, error)
	DownloadURLForClient(ctx context.Context, id, clientID uuid.UUID) (string, int, error)
	Stream(ctx context.Context, id, clientID uuid.UUID) (io.ReadCloser, model.FileObject, error)
	Delete(ctx context.Context, id uuid.UUID, actor model.Principal, meta model.RequestMeta) error
}

// Admin handles HTTP endpoints reserved for administrators.
type Admin struct {
	clients   ClientService
	documents DocumentService
	maxUpload int64
	logger    *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(clients ClientService, documents DocumentService, maxUpload int64, logger *logger.Logger) *Admin {
	return &Admin{clients: clients, documents: documents, maxUpload: maxUpload, logger: logger}
}

type createClientRequest struct {
	CNPJ     string `json:"cnpj"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

type downloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// ListClients returns all client organizations.
func (h *Admin) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, clients)
}

// GetClient returns one client organization.
func (h *Admin) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, client)
}

// CreateClient provisions a client organization and its login user.
func (h *Admin) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(r, &req); err != nil || req.CNPJ == "" || req.Name == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "cnpj, name and password are required")
		return
	}

	actor, _ := httpcontext.PrincipalFromContext(r.Context())
	client, err := h.clients.Create(r.Context(), req.CNPJ, req.Name, req.Password, actor, RequestMeta(r))
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("Admin handler: client created", "client_id", client.ID)
	WriteData(w, http.StatusCreated, client)
}

// UpdateClient applies partial changes to a client organization.
func (h *Admin) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var upd model.ClientUpdate
	if err := decodeJSON(r, &upd); err != nil {
		WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if upd.Name == nil && upd.IsActive == nil {
		WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	actor, _ := httpcontext.PrincipalFromContext(r.Context())
	if err := h.clients.Update(r.Context(), id, upd, actor, RequestMeta(r)); err != nil {
		handleError(w, err)
		return
	}

	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, client)
}

// CreateFolder adds a folder under a client, optionally nested.
func (h *Admin) CreateFolder(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req createFolderRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		WriteError(w, http.StatusBadRequest, "folder name is required")
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "malformed parent folder id")
			return
		}
		parentID = &parsed
	}

	folder, err := h.documents.CreateFolder(r.Context(), clientID, parentID, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusCreated, folder)
}

// ListFolders lists a client's folders under the optional parentId query.
func (h *Admin) ListFolders(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	parentID, ok := queryParentID(w, r)
	if !ok {
		return
	}

	folders, err := h.documents.ListFolders(r.Context(), clientID, parentID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, folders)
}

// UploadFile accepts a multipart upload into the given folder.
func (h *Admin) UploadFile(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	created, err := h.documents.Upload(r.Context(), folderID, header.Filename, contentType, content)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("Admin handler: file uploaded", "file_id", created.ID, "size", created.SizeBytes)
	WriteData(w, http.StatusCreated, created)
}

// ListFiles lists a folder's files.
func (h *Admin) ListFiles(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	files, err := h.documents.ListFiles(r.Context(), folderID)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, files)
}

// DownloadURL returns a short-lived presigned URL for a file.
func (h *Admin) DownloadURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	url, expiresIn, err := h.documents.DownloadURL(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	WriteData(w, http.StatusOK, downloadURLResponse{URL: url, ExpiresIn: expiresIn})
}

// DeleteFile removes a file's payload and soft-deletes its record.
func (h *Admin) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	actor, _ := httpcontext.PrincipalFromContext(r.Context())
	if err := h.documents.Delete(r.Context(), id, actor, RequestMeta(r)); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "malformed id")
		return uuid.Nil, false
	}
	return id, true
}

func queryParentID(w http.ResponseWriter, r *http.Request) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("parentId")
	if raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "malformed parent folder id")
		return nil, false
	}
	return &parsed, true
}
