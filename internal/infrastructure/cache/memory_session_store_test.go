package cache

import (
	"context"
	"testing"
	"time"

	"doctor-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := &entity.Session{TokenID: "t1", AccountID: 5, Kind: entity.AccountKindDoctor, Name: "Dr. Rahman"}
	require.NoError(t, store.Save(ctx, session, time.Hour))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, *session, *got)

	got.Name = "changed"
	again, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", again.Name)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entity.Session{TokenID: "t1"}, time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Update(ctx, &entity.Session{TokenID: "t1"}), ErrSessionNotFound)
}

func TestMemorySessionStoreUpdateKeepsExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entity.Session{TokenID: "t1", Name: "old"}, time.Minute))

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Update(ctx, &entity.Session{TokenID: "t1", Name: "new"}))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	now = now.Add(31 * time.Second)
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreUpdateUnknown(t *testing.T) {
	store := NewMemorySessionStore()
	err := store.Update(context.Background(), &entity.Session{TokenID: "missing"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, store.Len())
}
