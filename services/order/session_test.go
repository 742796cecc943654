package order

import (
	"context"
	"testing"

	"moveline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := &models.OrderSession{SessionID: "s1", Order: models.NewOrder()}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, got.SessionID)

	// The store must hand out copies, not aliases.
	got.Order.Step = 7
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.FirstStep, again.Order.Step)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, CodeSessionNotFound, CodeOf(err))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.OrderSession{SessionID: "s1", Order: models.NewOrder()}))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	require.Error(t, err)
}

func TestBusyLockIsExclusive(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	ok, err := store.AcquireBusy(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AcquireBusy(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Locks are per session.
	ok, err = store.AcquireBusy(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.ReleaseBusy(ctx, "s1"))
	ok, err = store.AcquireBusy(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}
