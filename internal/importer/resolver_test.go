package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverSeedsFromStore(t *testing.T) {
	store := newFakeStore()
	store.brands["Sigma"] = "brand-1"
	store.categories["Profiller"] = "cat-1"

	resolver, err := NewEntityResolver(context.Background(), store)
	require.NoError(t, err)

	id, err := resolver.ResolveBrand(context.Background(), "Sigma")
	require.NoError(t, err)
	assert.Equal(t, "brand-1", id)

	id, err = resolver.ResolveCategory(context.Background(), "Profiller")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", id)

	// seeded entities were never re-created
	assert.Equal(t, 0, store.brandCreates)
	assert.Equal(t, 0, store.categoryCreates)
}

func TestResolverCreatesOnFirstReference(t *testing.T) {
	store := newFakeStore()
	resolver, err := NewEntityResolver(context.Background(), store)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := resolver.ResolveBrand(ctx, "Nema")
	require.NoError(t, err)

	second, err := resolver.ResolveBrand(ctx, "Nema")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.brandCreates)
}

func TestResolverMatchesCaseInsensitively(t *testing.T) {
	store := newFakeStore()
	store.brands["Sigma"] = "brand-1"

	resolver, err := NewEntityResolver(context.Background(), store)
	require.NoError(t, err)

	for _, name := range []string{"sigma", "SIGMA", "  Sigma  "} {
		id, err := resolver.ResolveBrand(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, "brand-1", id, name)
	}
	assert.Equal(t, 0, store.brandCreates)
}

func TestResolverCacheNotPoisonedByCreateFailure(t *testing.T) {
	store := newFakeStore()
	calls := 0
	store.createBrandErr = func(name string) error {
		calls++
		if calls == 1 {
			return errors.New("deadlock detected")
		}
		return nil
	}

	resolver, err := NewEntityResolver(context.Background(), store)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = resolver.ResolveBrand(ctx, "Bosch")
	require.Error(t, err)

	// the failed name retries against the store instead of caching ""
	id, err := resolver.ResolveBrand(ctx, "Bosch")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 2, calls)
}

func TestResolverPropagatesSeedFailure(t *testing.T) {
	store := &failingListStore{fakeStore: newFakeStore()}

	_, err := NewEntityResolver(context.Background(), store)
	assert.Error(t, err)
}

// failingListStore fails the brand listing used for cache seeding
type failingListStore struct {
	*fakeStore
}

func (s *failingListStore) Brands(ctx context.Context) ([]EntityRef, error) {
	return nil, errors.New("connection refused")
}
