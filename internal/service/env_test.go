package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/store"
	"github.com/fitstudio/studio-api/pkg/database"
)

// testEnv wires a real in-memory store behind the services under test.
type testEnv struct {
	store *store.Store
	alloc *store.Allocator
	cache *cache.ViewCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := store.New(db)
	require.NoError(t, s.EnsureSchema(context.Background()))

	c := cache.New()
	require.NoError(t, c.Load(context.Background(), s))

	return &testEnv{store: s, alloc: store.NewAllocator(s), cache: c}
}

var testNow = time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }
