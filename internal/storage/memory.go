package storage

import (
	"context"
	"sync"

	"github.com/ignite/newsletter-subscriber/internal/domain"
)

// MemoryStore keeps subscribers in a process-local map. Contents are lost
// on restart; it is meant for tests and single-instance deployments.
type MemoryStore struct {
	mu          sync.RWMutex
	subscribers map[string]domain.Subscriber // keyed by normalized email
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subscribers: make(map[string]domain.Subscriber)}
}

// Name implements Backend.
func (m *MemoryStore) Name() string { return "memory" }

// Exists implements Backend.
func (m *MemoryStore) Exists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.subscribers[domain.NormalizeEmail(email)]
	return ok, nil
}

// Insert implements Backend. An existing entry for the same email is
// overwritten; the call never fails.
func (m *MemoryStore) Insert(_ context.Context, sub *domain.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[domain.NormalizeEmail(sub.Email)] = *sub
	return nil
}

// Get returns the stored record for email.
func (m *MemoryStore) Get(email string) (domain.Subscriber, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subscribers[domain.NormalizeEmail(email)]
	return sub, ok
}

// Len returns the number of stored subscribers.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Ping implements Backend.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Backend.
func (m *MemoryStore) Close() error { return nil }
