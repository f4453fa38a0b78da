// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.StateStore   = (*MemoryStateStore)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context) (ports.BeginResult, error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	Identity    domainauth.Identity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		Identity: domainauth.Identity{
			ExternalID: "mock-external-1",
			Username:   "mockuser",
			AvatarURL:  "https://cdn.example.com/mockuser.png",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context) (ports.BeginResult, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)

	return ports.BeginResult{
		AuthURL: authURL + "?state=" + state,
		State:   state,
	}, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	if in.Code == "" {
		return domainauth.Identity{}, ports.ErrInvalidCode
	}

	identity := m.Identity
	if identity.ExternalID == "" {
		identity = domainauth.Identity{
			ExternalID: "mock-external-1",
			Username:   "mockuser",
		}
	}
	return identity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryStateStore is an in-memory single-use login-state store for unit tests.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]domainauth.LoginState
}

// NewMemoryStateStore creates a new in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]domainauth.LoginState),
	}
}

func (m *MemoryStateStore) Save(_ context.Context, st domainauth.LoginState) error {
	if st.State == "" {
		return errors.New("state token cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[st.State] = st
	return nil
}

func (m *MemoryStateStore) Consume(_ context.Context, token string) (domainauth.LoginState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[token]
	if !ok {
		return domainauth.LoginState{}, ports.ErrStateNotFound
	}
	delete(m.states, token)
	return st, nil
}
