package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.TokenMirror  = (*MemoryTokenMirror)(nil)
	_ ports.ProfileCache = (*MemoryProfileCache)(nil)
	_ ports.ListCache    = (*MemoryListCache)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.ExchangeResult, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity
	Token       string

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		Token:       "mock-token",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			FirstName: "Mock",
			LastName:  "User",
			Email:     "mock.user@example.edu",
			Metadata:  domainauth.Metadata{Role: "researcher", OnboardingComplete: true},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", m.NoncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.ExchangeResult, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)

	return ports.ExchangeResult{Identity: user, AccessToken: m.Token}, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryTokenMirror is an in-memory token mirror for unit tests.
type MemoryTokenMirror struct {
	mu     sync.Mutex
	tokens map[string]string

	// SaveErr, when set, is returned from Save.
	SaveErr error
}

// NewMemoryTokenMirror creates a new in-memory token mirror.
func NewMemoryTokenMirror() *MemoryTokenMirror {
	return &MemoryTokenMirror{tokens: make(map[string]string)}
}

func (m *MemoryTokenMirror) Save(_ context.Context, sessionID, token string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	m.tokens[sessionID] = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenMirror) Get(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[sessionID]
	if !ok {
		return "", ports.ErrNotFound
	}
	return token, nil
}

func (m *MemoryTokenMirror) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.tokens, sessionID)
	m.mu.Unlock()
	return nil
}

// Has reports whether a token is mirrored for the session.
func (m *MemoryTokenMirror) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[sessionID]
	return ok
}

// MemoryProfileCache is an in-memory profile cache for unit tests.
type MemoryProfileCache struct {
	mu       sync.Mutex
	users    map[string]domainauth.User
	profiles map[string]domainauth.CachedProfile

	// ProfileErr, when set, is returned from GetProfile.
	ProfileErr error
}

// NewMemoryProfileCache creates a new in-memory profile cache.
func NewMemoryProfileCache() *MemoryProfileCache {
	return &MemoryProfileCache{
		users:    make(map[string]domainauth.User),
		profiles: make(map[string]domainauth.CachedProfile),
	}
}

func (m *MemoryProfileCache) SaveUser(_ context.Context, user domainauth.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty")
	}
	m.mu.Lock()
	m.users[user.ID] = user
	m.mu.Unlock()
	return nil
}

func (m *MemoryProfileCache) GetUser(_ context.Context, userID string) (domainauth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domainauth.User{}, ports.ErrNotFound
	}
	return user, nil
}

func (m *MemoryProfileCache) DeleteUser(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.users, userID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryProfileCache) SaveProfile(_ context.Context, userID string, p domainauth.CachedProfile) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	m.mu.Lock()
	m.profiles[userID] = p
	m.mu.Unlock()
	return nil
}

func (m *MemoryProfileCache) GetProfile(_ context.Context, userID string) (domainauth.CachedProfile, error) {
	if m.ProfileErr != nil {
		return domainauth.CachedProfile{}, m.ProfileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return domainauth.CachedProfile{}, ports.ErrNotFound
	}
	return p, nil
}

func (m *MemoryProfileCache) DeleteProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.profiles, userID)
	m.mu.Unlock()
	return nil
}

// HasUser reports whether a user snapshot is cached.
func (m *MemoryProfileCache) HasUser(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[userID]
	return ok
}

// HasProfile reports whether a profile blob is cached.
func (m *MemoryProfileCache) HasProfile(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.profiles[userID]
	return ok
}

// MemoryListCache is an in-memory list cache for unit tests. TTLs are ignored.
type MemoryListCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryListCache creates a new in-memory list cache.
func NewMemoryListCache() *MemoryListCache {
	return &MemoryListCache{entries: make(map[string][]byte)}
}

func (m *MemoryListCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryListCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *MemoryListCache) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return false, nil
	}
	delete(m.entries, key)
	return true, nil
}
