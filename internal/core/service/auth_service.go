package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// AuthManager implements login, logout, session restore and authorization
// checks over the gateway and a local session store. The current session is
// an explicit value owned here and handed out by copy — callers never share
// mutable session state.
type AuthManager struct {
	gateway ports.Gateway
	store   ports.SessionStore
	logger  zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	session  domain.Session
	restored bool
}

func NewAuthManager(gateway ports.Gateway, store ports.SessionStore, logger zerolog.Logger) *AuthManager {
	return &AuthManager{
		gateway: gateway,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// RestoreSession reads the persisted session record, if any, and resolves
// the current session from it. Missing or corrupt records fall open to
// anonymous: a reload must never crash on bad local state. Once a session
// is resolved (restored or logged in), further calls are no-ops.
func (m *AuthManager) RestoreSession(ctx context.Context) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.restored || !m.session.IsAnonymous() {
		return m.session
	}
	m.restored = true

	rec, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("session restore failed, clearing persisted record")
		_ = m.store.Clear(ctx)
		return m.session
	}
	if rec == nil {
		return m.session
	}

	sess, err := rec.Session()
	if err != nil {
		m.logger.Warn().Err(err).Msg("persisted session record malformed, clearing")
		_ = m.store.Clear(ctx)
		return m.session
	}

	m.session = sess
	m.logger.Info().Str("role", string(sess.Role)).Str("user_id", sess.UserID()).Msg("session restored")
	return m.session
}

// Login authenticates email+password against the collection backing role.
// "No such user", "inactive account" and "wrong password" are all reported
// as ErrInvalidCredentials; callers must not learn which one it was.
func (m *AuthManager) Login(ctx context.Context, email, password string, role domain.Role) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	collection, err := role.Collection()
	if err != nil {
		return domain.Anonymous, domain.ErrInvalidRole
	}

	rows, err := m.gateway.Select(ctx, collection, ports.Query{
		Filters: []ports.Filter{
			ports.Eq("email", email),
			ports.Eq("is_active", true),
		},
		Limit: 1,
	})
	if err != nil {
		m.logger.Debug().Err(err).Str("collection", collection).Msg("credential lookup failed")
		return domain.Anonymous, domain.ErrInvalidCredentials
	}
	if len(rows) == 0 {
		return domain.Anonymous, domain.ErrInvalidCredentials
	}

	identity := domain.IdentityFromRow(rows[0], role)
	if !m.verifyPassword(email, password, identity.PasswordHash) {
		return domain.Anonymous, domain.ErrInvalidCredentials
	}

	now := m.now().UTC()

	// Best effort: a failed last_login stamp never fails the login.
	if err := m.gateway.Update(ctx, collection,
		[]ports.Filter{ports.Eq("id", identity.ID)},
		domain.Row{"last_login": now},
	); err != nil {
		m.logger.Warn().Err(err).Str("user_id", identity.ID).Msg("last_login update failed")
	} else {
		identity.LastLogin = now
	}

	sess := domain.Session{Identity: &identity, Role: role}

	rec, err := domain.NewSessionRecord(identity, now)
	if err != nil {
		m.logger.Warn().Err(err).Msg("session record encoding failed")
	} else if err := m.store.Save(ctx, rec); err != nil {
		m.logger.Warn().Err(err).Msg("session record persistence failed")
	}

	m.mu.Lock()
	m.session = sess
	m.restored = true
	m.mu.Unlock()

	m.logger.Info().Str("role", string(role)).Str("user_id", identity.ID).Msg("login succeeded")
	return sess, nil
}

// Logout clears the session and erases the persisted record. Idempotent.
func (m *AuthManager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.session = domain.Anonymous
	m.restored = true
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("session record erase failed")
	}
}

// CurrentSession returns the session as of now. Never blocks on I/O.
func (m *AuthManager) CurrentSession() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// IsAuthorized reports whether a session exists and, when required roles
// are given, whether the session's role is among them.
func (m *AuthManager) IsAuthorized(required ...domain.Role) bool {
	sess := m.CurrentSession()
	if sess.IsAnonymous() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if sess.Role == r {
			return true
		}
	}
	return false
}
