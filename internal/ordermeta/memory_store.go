package ordermeta

import (
	"context"
	"sync"
	"time"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// CleanupInterval is how often the background sweep removes expired entries.
const CleanupInterval = 30 * time.Second

type entry struct {
	order     *domain.PendingOrder
	expiresAt time.Time
}

// MemoryStore implements Store with in-memory storage and a background
// cleanup goroutine for expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryStore creates a store with the standard TTL.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreTTL(OrderMetaTTL)
}

// NewMemoryStoreTTL allows a custom TTL (shortened in tests).
func NewMemoryStoreTTL(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]entry),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireEntries()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireEntries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) Put(_ context.Context, order *domain.PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[order.OrderID] = entry{
		order:     order,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, orderID string) (*domain.PendingOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, exists := s.entries[orderID]
	if !exists || time.Now().After(e.expiresAt) {
		// Lazy expiry check: the sweep may not have run yet.
		return nil, ErrNotFound
	}
	return e.order, nil
}

func (s *MemoryStore) Delete(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, orderID)
	return nil
}

// Close stops the cleanup goroutine and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
