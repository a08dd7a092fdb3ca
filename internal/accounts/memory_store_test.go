package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_DuplicateEmailCaseInsensitive(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	_, err := sut.Create(ctx, "Alice", "Alice@Example.com", "secret")
	require.NoError(t, err)

	_, err = sut.Create(ctx, "Other Alice", "alice@example.COM", "different")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	created, err := sut.Create(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	got, err := sut.GetByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	// Stored as given, not normalized.
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestVerify(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	_, err := sut.Create(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	acct, err := sut.Verify(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", acct.Name)

	_, err = sut.Verify(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = sut.Verify(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDelete(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	acct, err := sut.Create(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, sut.Delete(ctx, acct.ID))
	_, err = sut.GetByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.ErrorIs(t, sut.Delete(ctx, acct.ID), ErrAccountNotFound)
}

func TestList_OrderedByCreation(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	_, err := sut.Create(ctx, "Alice", "alice@example.com", "a")
	require.NoError(t, err)
	_, err = sut.Create(ctx, "Bob", "bob@example.com", "b")
	require.NoError(t, err)

	list, err := sut.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "Bob", list[1].Name)
}
