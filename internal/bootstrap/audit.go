package bootstrap

import "context"

// AuditLog is a lifecycle event worth keeping outside the request logs,
// e.g. startup and shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
