// Package session holds the signed-in user. A Session is a plain value
// threaded explicitly through every call that needs an identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Koushikchikkond/vouchers/internal/auth"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/storage"
)

var ErrNotAuthenticated = errors.New("not logged in")

type Session struct {
	Username    string
	DisplayName string
	StartedAt   time.Time
}

type Authenticator interface {
	Authenticate(username, password string) (auth.Identity, error)
}

// Store persists the session between invocations.
type Store interface {
	SaveSession(ctx context.Context, s storage.SessionRecord) error
	LoadSession(ctx context.Context) (storage.SessionRecord, error)
	DeleteSession(ctx context.Context) error
}

// TeardownFunc runs when a session ends, e.g. to drop per-user caches.
type TeardownFunc func(ctx context.Context, s Session)

type Manager struct {
	auth   Authenticator
	store  Store
	logger *log.Logger
	now    func() time.Time

	mu       sync.RWMutex
	current  *Session
	teardown []TeardownFunc
}

func NewManager(a Authenticator, store Store, logger *log.Logger) *Manager {
	return &Manager{
		auth:   a,
		store:  store,
		logger: logger.WithComponent(log.ComponentSession),
		now:    time.Now,
	}
}

// OnLogout registers fn to run on logout and when a login replaces another
// user's session.
func (m *Manager) OnLogout(fn TeardownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardown = append(m.teardown, fn)
}

func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	id, err := m.auth.Authenticate(username, password)
	if err != nil {
		m.logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin,
			log.FieldUser, username)
		return Session{}, err
	}

	prev, prevErr := m.Current(ctx)

	s := Session{Username: id.Username, DisplayName: id.DisplayName, StartedAt: m.now().UTC()}
	if err := m.store.SaveSession(ctx, storage.SessionRecord{
		Username:    s.Username,
		DisplayName: s.DisplayName,
		StartedAt:   s.StartedAt,
	}); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}

	if prevErr == nil && prev.Username != s.Username {
		m.runTeardown(ctx, prev)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUser, s.Username)
	return s, nil
}

// Current returns the active session, restoring it from the store on first
// use.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()
	if cur != nil {
		return *cur, nil
	}

	rec, err := m.store.LoadSession(ctx)
	if errors.Is(err, storage.ErrNoSession) {
		return Session{}, ErrNotAuthenticated
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	s := Session{Username: rec.Username, DisplayName: rec.DisplayName, StartedAt: rec.StartedAt}
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return s, nil
}

// Logout clears the session and everything derived from it. Logging out
// without a session is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	prev, err := m.Current(ctx)
	if err != nil && !errors.Is(err, ErrNotAuthenticated) {
		return err
	}

	if err := m.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if prev.Username != "" {
		m.runTeardown(ctx, prev)
		m.logger.InfoContext(ctx, "Logged out",
			log.FieldOperation, log.OpLogout,
			log.FieldUser, prev.Username)
	}
	return nil
}

func (m *Manager) runTeardown(ctx context.Context, s Session) {
	m.mu.RLock()
	hooks := append([]TeardownFunc(nil), m.teardown...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx, s)
	}
}
