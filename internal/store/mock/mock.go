// Package mock provides in-memory implementations of the store interfaces
// for testing. Ordering semantics mirror the PostgreSQL implementation.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkadlec/face-lounge/internal/store"
	"github.com/google/uuid"
)

// MockProfileStore is an in-memory implementation of store.ProfileStore.
type MockProfileStore struct {
	mu       sync.RWMutex
	profiles []store.Profile

	// Error injection
	CreateError error
	ListError   error
}

// NewMockProfileStore creates a new mock profile store.
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{}
}

// AddProfile seeds a profile directly, bypassing CreateProfile.
func (m *MockProfileStore) AddProfile(p store.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.profiles = append(m.profiles, p)
}

// CreateProfile stores a profile, assigning ID and CreatedAt.
func (m *MockProfileStore) CreateProfile(ctx context.Context, profile *store.Profile) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now().UTC()
	m.profiles = append(m.profiles, *profile)
	return nil
}

// ListProfiles returns all profiles oldest-first, as insertion order.
func (m *MockProfileStore) ListProfiles(ctx context.Context) ([]store.Profile, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]store.Profile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

// Count returns the number of stored profiles.
func (m *MockProfileStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// MockMessageStore is an in-memory implementation of store.MessageStore.
type MockMessageStore struct {
	mu       sync.RWMutex
	messages []store.Message

	// Error injection
	CreateError error
	ListError   error
}

// NewMockMessageStore creates a new mock message store.
func NewMockMessageStore() *MockMessageStore {
	return &MockMessageStore{}
}

// AddMessage seeds a message directly, bypassing CreateMessage.
func (m *MockMessageStore) AddMessage(msg store.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	m.messages = append(m.messages, msg)
}

// CreateMessage stores a message, assigning an ID.
func (m *MockMessageStore) CreateMessage(ctx context.Context, message *store.Message) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	message.ID = uuid.NewString()
	m.messages = append(m.messages, *message)
	return nil
}

// ListMessages returns up to limit messages newest-first.
func (m *MockMessageStore) ListMessages(ctx context.Context, limit int) ([]store.Message, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.Message, len(m.messages))
	copy(out, m.messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of stored messages.
func (m *MockMessageStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
