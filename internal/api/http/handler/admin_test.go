package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/contabildrive/drive-server/internal/api/http/context"
	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/service"
	"github.com/contabildrive/drive-server/internal/testutil"
)

// fakeClientService implements ClientService.
type fakeClientService struct {
	clients   []model.Client
	client    model.Client
	err       error
	updateErr error
	gotUpdate model.ClientUpdate
}

func (f *fakeClientService) List(_ context.Context) ([]model.Client, error) {
	return f.clients, f.err
}

func (f *fakeClientService) Get(_ context.Context, _ uuid.UUID) (model.Client, error) {
	return f.client, f.err
}

func (f *fakeClientService) Create(_ context.Context, cnpj, name, _ string, _ model.Principal, _ model.RequestMeta) (model.Client, error) {
	if f.err != nil {
		return model.Client{}, f.err
	}
	return model.Client{ID: uuid.New(), CNPJ: cnpj, Name: name, IsActive: true}, nil
}

func (f *fakeClientService) Update(_ context.Context, _ uuid.UUID, upd model.ClientUpdate, _ model.Principal, _ model.RequestMeta) error {
	f.gotUpdate = upd
	return f.updateErr
}

// fakeDocumentService implements DocumentService.
type fakeDocumentService struct {
	folder  model.Folder
	folders []model.Folder
	file    model.FileObject
	files   []model.FileObject
	url     string
	content []byte
	err     error

	gotFilename    string
	gotContentType string
	gotContent     []byte
	deletes        int
}

func (f *fakeDocumentService) CreateFolder(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ string) (model.Folder, error) {
	return f.folder, f.err
}

func (f *fakeDocumentService) ListFolders(_ context.Context, _ uuid.UUID, _ *uuid.UUID) ([]model.Folder, error) {
	return f.folders, f.err
}

func (f *fakeDocumentService) ListFoldersForClient(_ context.Context, _ uuid.UUID, _ *uuid.UUID) ([]model.Folder, error) {
	return f.folders, f.err
}

func (f *fakeDocumentService) Upload(_ context.Context, _ uuid.UUID, filename, contentType string, content []byte) (model.FileObject, error) {
	f.gotFilename = filename
	f.gotContentType = contentType
	f.gotContent = content
	return f.file, f.err
}

func (f *fakeDocumentService) ListFiles(_ context.Context, _ uuid.UUID) ([]model.FileObject, error) {
	return f.files, f.err
}

func (f *fakeDocumentService) ListFilesForClient(_ context.Context, _, _ uuid.UUID) ([]model.FileObject, error) {
	return f.files, f.err
}

func (f *fakeDocumentService) DownloadURL(_ context.Context, _ uuid.UUID) (string, int, error) {
	return f.url, 60, f.err
}

func (f *fakeDocumentService) DownloadURLForClient(_ context.Context, _, _ uuid.UUID) (string, int, error) {
	return f.url, 60, f.err
}

func (f *fakeDocumentService) Stream(_ context.Context, _, _ uuid.UUID) (io.ReadCloser, model.FileObject, error) {
	if f.err != nil {
		return nil, model.FileObject{}, f.err
	}
	return io.NopCloser(bytes.NewReader(f.content)), f.file, nil
}

func (f *fakeDocumentService) Delete(_ context.Context, _ uuid.UUID, _ model.Principal, _ model.RequestMeta) error {
	f.deletes++
	return f.err
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(httpcontext.WithPrincipal(req.Context(), model.Principal{
		UserID: uuid.New(),
		Role:   model.RoleAdmin,
	}))
}

func TestAdmin_CreateClient(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		h := NewAdmin(&fakeClientService{}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/clients",
			strings.NewReader(`{"cnpj":"12345678000199","name":"Acme","password":"pw"}`)))
		rec := httptest.NewRecorder()
		h.CreateClient(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var body struct {
			Success bool `json:"success"`
			Data    struct {
				CNPJ string `json:"cnpj"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "12345678000199", body.Data.CNPJ)
	})

	t.Run("duplicate cnpj conflicts", func(t *testing.T) {
		t.Parallel()
		h := NewAdmin(&fakeClientService{err: model.ErrCNPJTaken}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/clients",
			strings.NewReader(`{"cnpj":"12345678000199","name":"Acme","password":"pw"}`)))
		rec := httptest.NewRecorder()
		h.CreateClient(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid cnpj", func(t *testing.T) {
		t.Parallel()
		h := NewAdmin(&fakeClientService{err: service.ErrInvalidCNPJ}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/clients",
			strings.NewReader(`{"cnpj":"12345","name":"Acme","password":"pw"}`)))
		rec := httptest.NewRecorder()
		h.CreateClient(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdmin_UpdateClient(t *testing.T) {
	t.Parallel()

	clients := &fakeClientService{client: model.Client{ID: uuid.New(), Name: "Acme"}}
	h := NewAdmin(clients, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodPatch, "/admin/clients/x", strings.NewReader(`{"isActive":false}`)),
		map[string]string{"id": uuid.NewString()},
	))
	rec := httptest.NewRecorder()
	h.UpdateClient(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, clients.gotUpdate.IsActive)
	assert.False(t, *clients.gotUpdate.IsActive)
	assert.Nil(t, clients.gotUpdate.Name)
}

func TestAdmin_UpdateClient_EmptyBody(t *testing.T) {
	t.Parallel()

	h := NewAdmin(&fakeClientService{}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodPatch, "/admin/clients/x", strings.NewReader(`{}`)),
		map[string]string{"id": uuid.NewString()},
	))
	rec := httptest.NewRecorder()
	h.UpdateClient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_UploadFile(t *testing.T) {
	t.Parallel()

	docs := &fakeDocumentService{file: model.FileObject{ID: uuid.New(), OriginalFilename: "report.pdf"}}
	h := NewAdmin(&fakeClientService{}, docs, 1<<20, testutil.MakeNoopLogger())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodPost, "/admin/folders/x/files", &buf),
		map[string]string{"id": uuid.NewString()},
	))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadFile(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "report.pdf", docs.gotFilename)
	assert.Equal(t, []byte("%PDF-1.7 payload"), docs.gotContent)
}

func TestAdmin_UploadFile_MissingPart(t *testing.T) {
	t.Parallel()

	h := NewAdmin(&fakeClientService{}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodPost, "/admin/folders/x/files", strings.NewReader("not multipart")),
		map[string]string{"id": uuid.NewString()},
	))
	rec := httptest.NewRecorder()
	h.UploadFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_DownloadURL(t *testing.T) {
	t.Parallel()

	docs := &fakeDocumentService{url: "https://minio.local/signed"}
	h := NewAdmin(&fakeClientService{}, docs, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodGet, "/admin/files/x/download-url", nil),
		map[string]string{"id": uuid.NewString()},
	))
	rec := httptest.NewRecorder()
	h.DownloadURL(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://minio.local/signed")
	assert.Contains(t, rec.Body.String(), `"expiresIn":60`)
}

func TestAdmin_DeleteFile(t *testing.T) {
	t.Parallel()

	docs := &fakeDocumentService{}
	h := NewAdmin(&fakeClientService{}, docs, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodDelete, "/admin/files/x", nil),
		map[string]string{"id": uuid.NewString()},
	))
	rec := httptest.NewRecorder()
	h.DeleteFile(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, docs.deletes)
}

func TestAdmin_MalformedID(t *testing.T) {
	t.Parallel()

	h := NewAdmin(&fakeClientService{}, &fakeDocumentService{}, 1<<20, testutil.MakeNoopLogger())

	req := asAdmin(withVars(
		httptest.NewRequest(http.MethodGet, "/admin/clients/nope", nil),
		map[string]string{"id": "nope"},
	))
	rec := httptest.NewRecorder()
	h.GetClient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
