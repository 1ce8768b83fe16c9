// Package searchcache persists mapped nutrition search results keyed by the
// normalized query. Entries are derived data: losing them only costs a
// re-fetch from the lookup source.
//
// Two backends are provided:
//   - DBStore keeps entries in the search_cache table.
//   - FileStore keeps a single JSON document mapping query -> foods, the
//     format used by earlier releases (data/cached_foods.json).
package searchcache

import (
	"context"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// Store is implemented by every cache backend.
type Store interface {
	// Get returns the cached foods for key and whether an entry exists.
	Get(ctx context.Context, key string) ([]domain.FoodItem, bool, error)
	// Put stores foods under key, replacing any previous entry.
	Put(ctx context.Context, key string, foods []domain.FoodItem) error
	// Clear drops every entry.
	Clear(ctx context.Context) error
}
