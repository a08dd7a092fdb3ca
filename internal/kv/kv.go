// Package kv is the persistence port for keyed JSON records (carts,
// checkout guards, accounts in demo mode). Backends can be swapped
// without touching the components that use them.
package kv

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
