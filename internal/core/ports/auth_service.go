package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// AuthService owns the current session and answers authorization queries.
type AuthService interface {
	// RestoreSession loads the persisted session record, if any. Safe to
	// call repeatedly; once a session is resolved further calls are no-ops.
	// A missing or corrupt record yields the anonymous session, never an
	// error.
	RestoreSession(ctx context.Context) domain.Session
	Login(ctx context.Context, email, password string, role domain.Role) (domain.Session, error)
	// Logout always succeeds and is idempotent.
	Logout(ctx context.Context)
	// CurrentSession never blocks and never touches the gateway.
	CurrentSession() domain.Session
	// IsAuthorized reports whether a session exists and, when roles are
	// given, whether its role is among them.
	IsAuthorized(required ...domain.Role) bool
}
