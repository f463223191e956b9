package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded for admin mutations.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditEntry records an admin mutation for traceability. IDs are ULIDs so
// entries sort by creation time.
type AuditEntry struct {
	ID          string
	ActorUserID uuid.UUID
	ClientID    *uuid.UUID
	Action      string
	Entity      string
	EntityID    string
	Meta        []byte
	IP          string
	UserAgent   string
	CreatedAt   time.Time
}

// AuditStore appends audit entries. Append-only by design.
type AuditStore interface {
	Append(ctx context.Context, entry AuditEntry) error
}
