// Package session owns the remote session lifecycle: probing for a backend,
// creating the session, and tracking connection status and the remote
// working directory.
package session

import (
	"context"
	"sync"

	"github.com/joss/termbridge/internal/api"
	"github.com/joss/termbridge/internal/history"
	"github.com/joss/termbridge/internal/logging"
	"github.com/joss/termbridge/internal/probe"
)

// ConnectionStatus tracks where the current connection attempt stands.
// Transitions are monotonic per attempt: Disconnected -> Connecting ->
// Connected or Error. A fresh attempt always restarts at Connecting.
type ConnectionStatus int

const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
	StatusError
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Session is the backend's record of one interactive command stream. It is
// only ever exposed fully populated.
type Session struct {
	ID               string
	CurrentDirectory string
	BackendAddress   string
}

// Manager owns the single live session. At most one session exists at a
// time; Initialize replaces it wholesale and never leaves a half-built one
// visible.
type Manager struct {
	mu      sync.Mutex
	status  ConnectionStatus
	session *Session
	client  *api.Client
	history *history.Store
	log     *logging.Logger

	// swapped in tests
	find      func(ctx context.Context) (string, error)
	newClient func(base string) *api.Client
}

// NewManager returns a disconnected manager that seeds the given history
// store after each successful connect.
func NewManager(store *history.Store) *Manager {
	return &Manager{
		status:    StatusDisconnected,
		history:   store,
		log:       logging.New("session"),
		find:      probe.Find,
		newClient: api.New,
	}
}

// Initialize probes for a backend and creates a remote session there. On any
// failure the status lands on Error and no session is exposed; the caller
// keeps running in simulated mode. Safe to call repeatedly: each call fully
// supersedes the previous session, so it doubles as reconnect.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	m.status = StatusConnecting
	m.session = nil
	m.client = nil
	m.mu.Unlock()

	addr, err := m.find(ctx)
	if err != nil {
		m.fail("probe_failed", err)
		return err
	}

	client := m.newClient(addr)
	id, dir, err := client.NewSession(ctx)
	if err != nil {
		m.fail("session_create_failed", err)
		return err
	}

	m.mu.Lock()
	m.session = &Session{ID: id, CurrentDirectory: dir, BackendAddress: addr}
	m.client = client
	m.status = StatusConnected
	m.mu.Unlock()

	m.log.WithSession(id).WithBackend(addr).Info("connected", map[string]interface{}{
		"dir": dir,
	})

	// History load failures keep whatever the store already holds.
	if cmds, err := client.History(ctx, id); err != nil {
		m.log.WithSession(id).Warn("history_load_failed", nil, err)
	} else {
		m.history.Seed(cmds)
	}
	return nil
}

// Status returns the current connection status.
func (m *Manager) Status() ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Current returns the live session, or ok=false when offline.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Client returns the API client bound to the live session's backend, or nil
// when offline.
func (m *Manager) Client() *api.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// UpdateDirectory records a working-directory change reported by an execute
// response. No-op when offline.
func (m *Manager) UpdateDirectory(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil && dir != "" && dir != m.session.CurrentDirectory {
		m.session.CurrentDirectory = dir
	}
}

// Directory returns the prompt's working directory: the remote one when
// connected, otherwise fallback.
func (m *Manager) Directory(fallback string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return m.session.CurrentDirectory
	}
	return fallback
}

func (m *Manager) fail(event string, err error) {
	m.mu.Lock()
	m.status = StatusError
	m.session = nil
	m.client = nil
	m.mu.Unlock()
	m.log.Warn(event, nil, err)
}
