package accounts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// MemoryStore keeps accounts in memory, keyed by lower-cased email.
// This is the demo backend, matching the original browser-storage db.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]domain.Account)}
}

func (s *MemoryStore) Create(_ context.Context, name, email, password string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.byEmail[key]; exists {
		return nil, ErrDuplicateEmail
	}

	acct := domain.Account{
		ID:        "u_" + uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now(),
	}
	s.byEmail[key] = acct
	return &acct, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, exists := s.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, ErrAccountNotFound
	}
	return &acct, nil
}

func (s *MemoryStore) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	acct, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if acct.Password != password {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, acct := range s.byEmail {
		if acct.ID == id {
			delete(s.byEmail, key)
			return nil
		}
	}
	return ErrAccountNotFound
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.byEmail))
	for _, acct := range s.byEmail {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
