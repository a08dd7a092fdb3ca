package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/kv"
)

var (
	sisig = domain.Product{ID: 1, Name: "Sisig", Store: "Manam", Price: 150.00}
	halo  = domain.Product{ID: 2, Name: "Halo-Halo", Store: "Razon's", Price: 99.00}
)

func newTestService() *Service {
	return NewService(kv.NewMemoryStore(), zap.NewNop())
}

func TestGet_EmptyCartForNewOwner(t *testing.T) {
	sut := newTestService()

	c, err := sut.Get(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Subtotal())
}

func TestAddItem_NewAndRepeat(t *testing.T) {
	sut := newTestService()
	ctx := context.Background()

	c, err := sut.AddItem(ctx, "alice@example.com", sisig)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[sisig.ID].Quantity)

	c, err = sut.AddItem(ctx, "alice@example.com", sisig)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Items[sisig.ID].Quantity)
	assert.InDelta(t, 300.00, c.Subtotal(), 0.001)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	sut := newTestService()
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "alice@example.com", sisig)
	require.NoError(t, err)

	c, err := sut.SetQuantity(ctx, "alice@example.com", sisig.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// Negative behaves the same.
	_, err = sut.AddItem(ctx, "alice@example.com", halo)
	require.NoError(t, err)
	c, err = sut.SetQuantity(ctx, "alice@example.com", halo.ID, -3)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	sut := newTestService()

	_, err := sut.SetQuantity(context.Background(), "alice@example.com", 42, 3)
	require.Error(t, err)
}

func TestClear_EmptiesPersistedCart(t *testing.T) {
	sut := newTestService()
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "alice@example.com", sisig)
	require.NoError(t, err)

	require.NoError(t, sut.Clear(ctx, "alice@example.com"))

	c, err := sut.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCarts_IsolatedPerOwner(t *testing.T) {
	sut := newTestService()
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "alice@example.com", sisig)
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "bob@example.com", halo)
	require.NoError(t, err)

	alice, err := sut.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	bob, err := sut.Get(ctx, "bob@example.com")
	require.NoError(t, err)

	assert.Len(t, alice.Items, 1)
	assert.Len(t, bob.Items, 1)
	assert.Contains(t, alice.Items, sisig.ID)
	assert.Contains(t, bob.Items, halo.ID)
}
