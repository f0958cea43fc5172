package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cncmarket/catalog-service/internal/slug"
	"github.com/rs/zerolog/log"
)

// EntityResolver maintains per-run lowercase name → id caches for brands and
// categories, seeded once from the store. A name absent from the cache is
// created on first reference; later rows in the same run reuse the new id
// without touching the store. The caches are owned by one run and are not
// safe for concurrent writers.
type EntityResolver struct {
	store      Store
	brands     map[string]string
	categories map[string]string
}

// NewEntityResolver seeds a resolver from the store's current brand and
// category sets.
func NewEntityResolver(ctx context.Context, store Store) (*EntityResolver, error) {
	brands, err := store.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}
	categories, err := store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	r := &EntityResolver{
		store:      store,
		brands:     make(map[string]string, len(brands)),
		categories: make(map[string]string, len(categories)),
	}
	for _, b := range brands {
		r.brands[cacheKey(b.Name)] = b.ID
	}
	for _, c := range categories {
		r.categories[cacheKey(c.Name)] = c.ID
	}
	return r, nil
}

// ResolveBrand returns the id for a brand name, creating the brand on first
// reference within the run.
func (r *EntityResolver) ResolveBrand(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, name, r.brands, r.store.CreateBrand)
}

// ResolveCategory returns the id for a category name, creating the category
// on first reference within the run.
func (r *EntityResolver) ResolveCategory(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, name, r.categories, r.store.CreateCategory)
}

func (r *EntityResolver) resolve(
	ctx context.Context,
	name string,
	cache map[string]string,
	create func(context.Context, string, string) (string, error),
) (string, error) {
	key := cacheKey(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	id, err := create(ctx, strings.TrimSpace(name), slug.Make(name))
	if err != nil {
		// cache stays untouched so a later row with the same name retries
		return "", err
	}

	log.Debug().Str("name", name).Str("id", id).Msg("Created missing entity")
	cache[key] = id
	return id, nil
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
