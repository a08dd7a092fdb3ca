package ordermeta

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

func pendingOrder(id string) *domain.PendingOrder {
	return &domain.PendingOrder{
		OrderID: id,
		Items: []domain.LineItem{
			{ProductID: 1, Name: "Sisig", UnitPrice: "150.00", Quantity: 2, LineTotal: "300.00", Currency: "PHP"},
		},
		Description: "Online Order",
		Currency:    "PHP",
		Amount:      "300.00",
		CreatedAt:   time.Now(),
	}
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	sut := NewMemoryStore()
	defer sut.Close()
	ctx := context.Background()

	require.NoError(t, sut.Put(ctx, pendingOrder("ORDER-1")))

	got, err := sut.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "300.00", got.Amount)
	assert.Len(t, got.Items, 1)

	require.NoError(t, sut.Delete(ctx, "ORDER-1"))
	_, err = sut.Get(ctx, "ORDER-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	sut := NewMemoryStore()
	defer sut.Close()

	_, err := sut.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ExpiredEntryNotRetrievable(t *testing.T) {
	sut := NewMemoryStoreTTL(10 * time.Millisecond)
	defer sut.Close()
	ctx := context.Background()

	require.NoError(t, sut.Put(ctx, pendingOrder("ORDER-1")))

	// Lookup past the TTL must miss even before the sweep runs.
	require.Eventually(t, func() bool {
		_, err := sut.Get(ctx, "ORDER-1")
		return err == ErrNotFound
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	sut := NewMemoryStore()
	defer sut.Close()
	ctx := context.Background()

	require.NoError(t, sut.Delete(ctx, "never-existed"))
}

func TestMemoryStore_ConcurrentOrdersDoNotInterfere(t *testing.T) {
	sut := NewMemoryStore()
	defer sut.Close()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			id := string(rune('A' + n))
			_ = sut.Put(ctx, pendingOrder(id))
			_, _ = sut.Get(ctx, id)
			_ = sut.Delete(ctx, id)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
