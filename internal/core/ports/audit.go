package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must not block the calling request beyond enqueueing.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditStore persists audit events.
type AuditStore interface {
	Append(ctx context.Context, event domain.AuditEvent) error
}
