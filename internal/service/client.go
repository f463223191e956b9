package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/contabildrive/drive-server/internal/cnpj"
	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/password"
)

// ErrInvalidCNPJ indicates a malformed registration key on input.
var ErrInvalidCNPJ = errors.New("invalid cnpj")

// Clients manages client organizations and their login users.
type Clients struct {
	clients model.ClientStore
	session *Session
	hasher  *password.Hasher
	audit   model.AuditStore
	logger  *logger.Logger
}

// NewClients creates the client management service.
func NewClients(clients model.ClientStore, session *Session, hasher *password.Hasher, audit model.AuditStore, logger *logger.Logger) *Clients {
	return &Clients{clients: clients, session: session, hasher: hasher, audit: audit, logger: logger}
}

// List returns all client organizations, newest first.
func (c *Clients) List(ctx context.Context) ([]model.Client, error) {
	return c.clients.List(ctx)
}

// Get returns one client organization by id.
func (c *Clients) Get(ctx context.Context, id uuid.UUID) (model.Client, error) {
	return c.clients.GetByID(ctx, id)
}

// Create provisions a client organization together with its login user in
// one transaction.
func (c *Clients) Create(ctx context.Context, rawCNPJ, name, rawPassword string, actor model.Principal, meta model.RequestMeta) (model.Client, error) {
	key := cnpj.Normalize(rawCNPJ)
	if !cnpj.Valid(key) {
		return model.Client{}, ErrInvalidCNPJ
	}

	if _, err := c.clients.GetByCNPJ(ctx, key); err == nil {
		return model.Client{}, model.ErrCNPJTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.Client{}, fmt.Errorf("failed to check cnpj: %w", err)
	}

	hash, err := c.hasher.Hash(rawPassword)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Role:         model.RoleClient,
		CNPJ:         key,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	client := model.Client{
		ID:        uuid.New(),
		CNPJ:      key,
		Name:      name,
		UserID:    user.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := c.clients.CreateWithUser(ctx, client, user)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	c.appendAudit(ctx, actor, meta, model.AuditEntry{
		ClientID: &created.ID,
		Action:   model.AuditActionCreate,
		Entity:   "client",
		EntityID: created.ID.String(),
		Meta:     mustJSON(map[string]string{"cnpj": key}),
	})

	return created, nil
}

// Update applies the given changes. Deactivating a client also revokes
// every outstanding session of its login user.
func (c *Clients) Update(ctx context.Context, id uuid.UUID, upd model.ClientUpdate, actor model.Principal, meta model.RequestMeta) error {
	existing, err := c.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.clients.Update(ctx, id, upd); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	if upd.IsActive != nil && !*upd.IsActive {
		if err := c.session.RevokeAllForUser(ctx, existing.UserID); err != nil {
			c.logger.Error("Clients: failed to revoke sessions on deactivation", "client_id", id, "error", err.Error())
		}
	}

	c.appendAudit(ctx, actor, meta, model.AuditEntry{
		ClientID: &id,
		Action:   model.AuditActionUpdate,
		Entity:   "client",
		EntityID: id.String(),
		Meta:     mustJSON(upd),
	})

	return nil
}

// appendAudit is best-effort: audit failures are logged, not propagated.
func (c *Clients) appendAudit(ctx context.Context, actor model.Principal, meta model.RequestMeta, entry model.AuditEntry) {
	entry.ID = ulid.Make().String()
	entry.ActorUserID = actor.UserID
	entry.IP = meta.IP
	entry.UserAgent = meta.UserAgent
	entry.CreatedAt = time.Now()

	if err := c.audit.Append(ctx, entry); err != nil {
		c.logger.Error("Clients: failed to append audit entry", "entity", entry.Entity, "error", err.Error())
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}
