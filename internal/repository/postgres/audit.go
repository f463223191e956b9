package postgres

import (
	"context"
	"fmt"

	"github.com/contabildrive/drive-server/internal/model"
)

var _ model.AuditStore = (*AuditRepository)(nil)

type AuditRepository struct {
	db *Connection
}

func NewAuditRepository(db *Connection) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	const query = `
        INSERT INTO audit_log (id, actor_user_id, client_id, action, entity, entity_id, meta, ip, user_agent, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.ActorUserID, entry.ClientID, entry.Action, entry.Entity,
		entry.EntityID, entry.Meta, entry.IP, entry.UserAgent, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
