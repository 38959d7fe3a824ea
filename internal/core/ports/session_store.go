package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// SessionStore persists the single local session record across restarts.
// One writer (the auth manager), read once at startup. Load returns
// (nil, nil) when no record exists; a non-nil error means the record is
// present but unreadable.
type SessionStore interface {
	Save(ctx context.Context, rec domain.SessionRecord) error
	Load(ctx context.Context) (*domain.SessionRecord, error)
	Clear(ctx context.Context) error
}

// TokenStore is the shared, token-keyed session registry used by the HTTP
// layer: login publishes the record under its token, the auth middleware
// resolves bearer tokens against it, logout revokes. Get returns
// (nil, nil) for an unknown token.
type TokenStore interface {
	Put(ctx context.Context, rec domain.SessionRecord) error
	Get(ctx context.Context, token string) (*domain.SessionRecord, error)
	Delete(ctx context.Context, token string) error
}
