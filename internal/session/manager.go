// Package session owns the authentication token and current-user identity.
// Every entity operation is gated on an established session; teardown resets
// all session-scoped state in one place.
package session

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/api"
	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/storage"
)

// Resetter is session-scoped state that must be wiped on logout. The entity
// store and the finance summary cache register themselves here.
type Resetter interface {
	Reset()
}

// Manager holds the single authoritative session. The user profile is
// populated only when the token has been validated against /auth/me.
type Manager struct {
	client    *api.Client
	tokens    *storage.TokenStore
	logger    *log.Logger
	resetters []Resetter

	mu    sync.RWMutex
	token string
	user  *core.UserProfile
}

// NewManager creates a session manager. tokens may be nil, in which case the
// session does not survive a restart.
func NewManager(client *api.Client, tokens *storage.TokenStore, logger *log.Logger, resetters ...Resetter) *Manager {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Manager{
		client:    client,
		tokens:    tokens,
		logger:    logger.WithComponent(log.ComponentSession),
		resetters: resetters,
	}
}

// Establish installs the token and validates it against the current-user
// contract. Any failure tears the session down immediately: no retry, no
// partial state.
func (m *Manager) Establish(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.client.SetToken(token)

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "Token validation failed, clearing session",
			log.FieldOperation, log.OpEstablish,
			log.FieldError, err)
		m.Clear(ctx)
		return fmt.Errorf("establish session: %w", err)
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Session established",
		log.FieldOperation, log.OpEstablish,
		log.FieldEmail, user.Email,
		log.FieldStreak, user.Streak)
	return nil
}

// Login exchanges credentials for a token, persists it, and establishes the
// session. On failure the session state is untouched and the server's message
// is surfaced through the returned error.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if m.tokens != nil {
		if err := m.tokens.Save(ctx, token); err != nil {
			m.logger.WarnContext(ctx, "Failed to persist token",
				log.FieldOperation, log.OpLogin,
				log.FieldError, err)
		}
	}

	return m.Establish(ctx, token)
}

// Signup creates an account without authenticating; the caller transitions to
// the login flow on success.
func (m *Manager) Signup(ctx context.Context, email, password string) error {
	return m.client.Signup(ctx, email, password)
}

// Resume re-validates a previously persisted token. It returns false when no
// token is stored or the stored token is no longer accepted; the rejected
// token has been wiped by then.
func (m *Manager) Resume(ctx context.Context) (bool, error) {
	if m.tokens == nil {
		return false, nil
	}

	token, err := m.tokens.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load persisted token: %w", err)
	}
	if token == "" {
		return false, nil
	}

	if err := m.Establish(ctx, token); err != nil {
		if api.IsUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Clear tears the whole session down: token, profile, persisted token, and
// every registered resetter. Idempotent.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	m.client.ClearToken()

	if m.tokens != nil {
		if err := m.tokens.Delete(ctx); err != nil {
			m.logger.WarnContext(ctx, "Failed to delete persisted token",
				log.FieldOperation, log.OpLogout,
				log.FieldError, err)
		}
	}

	for _, r := range m.resetters {
		r.Reset()
	}
}

// Authenticated reports whether a validated token is present. Callers gate
// every task and transaction operation on this.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// User returns the current profile when the session is established.
func (m *Manager) User() (core.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return core.UserProfile{}, false
	}
	return *m.user, true
}

// Token returns the raw bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
