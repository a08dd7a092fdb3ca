// Package accounts is the demo account store: create/verify/delete over
// keyed records, email unique case-insensitively. Credential hardening
// is explicitly out of scope.
package accounts

import (
	"context"
	"errors"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

var (
	ErrDuplicateEmail     = errors.New("account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Store interface {
	// Create inserts the account, enforcing case-insensitive email
	// uniqueness. The returned account carries the generated id.
	Create(ctx context.Context, name, email, password string) (*domain.Account, error)

	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Verify checks credentials with a plain comparison and returns the
	// account, or ErrInvalidCredentials.
	Verify(ctx context.Context, email, password string) (*domain.Account, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]domain.Account, error)
}
