package statestore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	store := NewWithClient(client)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestLastStatus_NeverChecked(t *testing.T) {
	store := newTestStore(t)

	status, err := store.LastStatus(context.Background(), "uni_portal", "APP-1")

	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, status)
}

func TestSetAndGetLastStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetLastStatus(ctx, "uni_portal", "APP-1", models.StatusPending))

	status, err := store.LastStatus(ctx, "uni_portal", "APP-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status)

	require.NoError(t, store.SetLastStatus(ctx, "uni_portal", "APP-1", models.StatusOfferReady))

	status, err = store.LastStatus(ctx, "uni_portal", "APP-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOfferReady, status)
}

func TestLastStatus_KeyedPerApplication(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetLastStatus(ctx, "uni_portal", "APP-1", models.StatusAccepted))

	status, err := store.LastStatus(ctx, "uni_portal", "APP-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, status)

	status, err = store.LastStatus(ctx, "other_portal", "APP-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, status)
}
