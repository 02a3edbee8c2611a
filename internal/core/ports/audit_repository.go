package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// AuditRepository appends audit events to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
