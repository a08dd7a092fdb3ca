// Package ordermeta keeps PendingOrder records between create and
// capture. Entries live at most OrderMetaTTL so abandoned checkouts do
// not accumulate.
package ordermeta

import (
	"context"
	"errors"
	"time"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// OrderMetaTTL bounds how long a pending order is retrievable. A capture
// arriving later proceeds without the metadata (empty item list).
const OrderMetaTTL = 30 * time.Minute

var ErrNotFound = errors.New("pending order not found")

// Store is keyed by the provider-issued order id. Each entry is written
// once at creation and read/deleted once at capture or expiry.
type Store interface {
	Put(ctx context.Context, order *domain.PendingOrder) error
	Get(ctx context.Context, orderID string) (*domain.PendingOrder, error)
	Delete(ctx context.Context, orderID string) error
	Close() error
}
