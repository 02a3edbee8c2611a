package service

import "github.com/lexlink/consultation-api/internal/core/domain"

// AuditSink accepts audit events for asynchronous persistence. Recording must
// never block a request; the queue dispatcher implements this off the request
// path.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
