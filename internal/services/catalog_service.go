// Package services – CatalogService
//
// CatalogService owns the canonical food catalog and the search cache in
// front of the external nutrition source. Canonical records are written
// first-wins; search results are cached per normalized query and never
// promoted to canonical records on their own.
//
// Observability: Search and EnsureFood are OpenTelemetry-instrumented, and
// an optional SearchObserver receives hit/miss/error outcomes and lookup
// latency.

package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
	"github.com/tbourn/go-nutrition-backend/internal/search"
	"github.com/tbourn/go-nutrition-backend/internal/searchcache"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLookupTimeout bounds a single external search when none is set.
const DefaultLookupTimeout = 10 * time.Second

// Search outcomes reported to a SearchObserver.
const (
	SearchHit   = "hit"
	SearchMiss  = "miss"
	SearchError = "error"
)

// FoodLookup is the external nutrition source.
type FoodLookup interface {
	Search(ctx context.Context, query string) ([]domain.FoodItem, error)
}

// SearchObserver receives search outcomes. Implementations must be safe for
// concurrent use.
type SearchObserver interface {
	ObserveSearch(result string)
	ObserveLookup(d time.Duration, err error)
}

// CatalogService coordinates the canonical food store, the search cache and
// the external lookup.
type CatalogService struct {
	DB            *gorm.DB
	Lookup        FoodLookup
	Cache         searchcache.Store
	LookupTimeout time.Duration
	Observer      SearchObserver

	group singleflight.Group

	mu    sync.Mutex
	index *search.FoodIndex
}

// NewCatalogService wires a CatalogService. cache defaults to the search_cache
// table when nil.
func NewCatalogService(db *gorm.DB, lookup FoodLookup, cache searchcache.Store, timeout time.Duration) *CatalogService {
	if cache == nil {
		cache = searchcache.NewDBStore(db)
	}
	return &CatalogService{DB: db, Lookup: lookup, Cache: cache, LookupTimeout: timeout}
}

// EnsureFood stores food as a canonical record unless one with the same
// food_id exists. An existing record is left untouched and no error is
// returned; created reports whether a row was inserted.
func (s *CatalogService) EnsureFood(ctx context.Context, food domain.FoodItem) (bool, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "EnsureFood",
		trace.WithAttributes(attribute.String("food.id", food.FoodID)),
	)
	defer span.End()

	food.FoodID = strings.TrimSpace(food.FoodID)
	food.Name = strings.TrimSpace(food.Name)
	if err := validateFood(&food); err != nil {
		return false, err
	}

	created, err := repo.InsertFoodIfAbsent(ctx, s.DB, &food)
	if err != nil {
		span.RecordError(err)
		return false, storageErr(err)
	}
	if created {
		s.mu.Lock()
		if s.index != nil {
			s.index.Add(search.Entry{FoodID: food.FoodID, Name: food.Name})
		}
		s.mu.Unlock()
	}
	span.SetAttributes(attribute.Bool("food.created", created))
	return created, nil
}

func validateFood(f *domain.FoodItem) error {
	if f.FoodID == "" {
		return invalid("food_id", "must not be empty")
	}
	if f.Name == "" {
		return invalid("name", "must not be empty")
	}
	if f.ServingSize == 0 {
		f.ServingSize = 1
	}
	if !(f.ServingSize > 0) || math.IsInf(f.ServingSize, 0) {
		return invalid("serving_size", "must be positive")
	}
	for field, v := range map[string]float64{
		"calories": f.Calories,
		"protein":  f.Protein,
		"carbs":    f.Carbs,
		"fat":      f.Fat,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(field, "must be a non-negative number")
		}
	}
	return nil
}

// GetFood returns the canonical record for foodID.
func (s *CatalogService) GetFood(ctx context.Context, foodID string) (*domain.FoodItem, error) {
	f, err := repo.GetFood(ctx, s.DB, strings.TrimSpace(foodID))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrFoodNotFound
		}
		return nil, storageErr(err)
	}
	return f, nil
}

// Search returns candidate foods for query. The query is normalized into the
// cache key; a cached entry is returned without contacting the lookup source.
// On a miss the lookup receives the caller's query (trimmed, case kept), runs
// under LookupTimeout, and its results are cached under the key. A failed lookup returns ErrExternalLookup and writes nothing.
//
// Concurrent misses for the same key share one lookup. Results are never
// inserted into the canonical catalog.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.FoodItem, error) {
	key := search.NormalizeQuery(query)

	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("search.key", key)),
	)
	defer span.End()

	if key == "" {
		return nil, invalid("q", "search query must not be empty")
	}

	foods, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		// The cache is derived data; a failed read falls through to the source.
		logger(ctx).Warn().Err(err).Str("key", key).Msg("search cache read failed")
	}
	if ok {
		s.observe(SearchHit)
		span.SetAttributes(attribute.Bool("search.cache_hit", true))
		return foods, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(ctx, key, strings.TrimSpace(query))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, "lookup failed")
			return nil, r.Err
		}
		shared := r.Val.([]domain.FoodItem)
		out := make([]domain.FoodItem, len(shared))
		copy(out, shared)
		span.SetAttributes(attribute.Int("search.results", len(out)))
		return out, nil
	}
}

// fetch looks up query and caches the result under key. It runs once per key
// across concurrent callers, detached from the caller's cancellation but
// bounded by the lookup timeout.
func (s *CatalogService) fetch(ctx context.Context, key, query string) ([]domain.FoodItem, error) {
	if s.Lookup == nil {
		s.observe(SearchError)
		return nil, ErrExternalLookup
	}

	timeout := s.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	start := time.Now()
	foods, err := s.Lookup.Search(lctx, query)
	if s.Observer != nil {
		s.Observer.ObserveLookup(time.Since(start), err)
	}
	if err != nil {
		s.observe(SearchError)
		logger(ctx).Error().Err(err).Str("key", key).Msg("nutrition lookup failed")
		return nil, fmt.Errorf("%w: %w", ErrExternalLookup, err)
	}
	s.observe(SearchMiss)
	if foods == nil {
		foods = []domain.FoodItem{}
	}

	if err := s.Cache.Put(lctx, key, foods); err != nil {
		logger(ctx).Warn().Err(err).Str("key", key).Msg("search cache write failed")
	}
	return foods, nil
}

// ClearSearchCache drops every cached search.
func (s *CatalogService) ClearSearchCache(ctx context.Context) error {
	if err := s.Cache.Clear(ctx); err != nil {
		return storageErr(err)
	}
	logger(ctx).Info().Msg("search cache cleared")
	return nil
}

// Suggest ranks foods already in the canonical catalog by name similarity to
// query. It never contacts the lookup source. The index is built from the
// catalog on first use and kept current by EnsureFood.
func (s *CatalogService) Suggest(ctx context.Context, query string, k int) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalid("q", "query must not be empty")
	}
	ix, err := s.foodIndex(ctx)
	if err != nil {
		return nil, err
	}
	return ix.TopK(query, k), nil
}

func (s *CatalogService) foodIndex(ctx context.Context) (*search.FoodIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}
	foods, err := repo.ListFoods(ctx, s.DB, 0)
	if err != nil {
		return nil, storageErr(err)
	}
	entries := make([]search.Entry, 0, len(foods))
	for _, f := range foods {
		entries = append(entries, search.Entry{FoodID: f.FoodID, Name: f.Name})
	}
	s.index = search.NewFoodIndex(entries, search.WithStopwords(nameStopwords))
	return s.index, nil
}

// nameStopwords are filler words in FoodData Central descriptions that would
// otherwise dominate name overlap.
var nameStopwords = []string{"and", "or", "with", "without", "of", "in", "the", "raw", "nfs"}

func (s *CatalogService) observe(result string) {
	if s.Observer != nil {
		s.Observer.ObserveSearch(result)
	}
}

// logger returns the request-scoped logger from ctx, or the global one.
func logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
