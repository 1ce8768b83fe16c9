package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
	"github.com/tbourn/go-nutrition-backend/internal/searchcache"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustUser(t *testing.T, db *gorm.DB, id string) *domain.User {
	t.Helper()
	u := &domain.User{ID: id, Username: "user-" + id, PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func mustFood(t *testing.T, db *gorm.DB, f domain.FoodItem) {
	t.Helper()
	if f.ServingSize == 0 {
		f.ServingSize = 1
	}
	if err := db.Create(&f).Error; err != nil {
		t.Fatalf("seed food: %v", err)
	}
}

func countFoods(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.FoodItem{}).Count(&n).Error; err != nil {
		t.Fatalf("count foods: %v", err)
	}
	return n
}

type fakeLookup struct {
	mu      sync.Mutex
	calls   int32
	queries []string
	results []domain.FoodItem
	err     error
	gate    chan struct{}
	block   bool // wait for ctx.Done()
}

func (f *fakeLookup) Search(ctx context.Context, q string) ([]domain.FoodItem, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeLookup) Calls() int { return int(atomic.LoadInt32(&f.calls)) }

type failingStore struct{ searchcache.Store }

func (failingStore) Put(context.Context, string, []domain.FoodItem) error {
	return errors.New("disk full")
}

type countingObserver struct {
	mu      sync.Mutex
	results map[string]int
	lookups int
}

func (o *countingObserver) ObserveSearch(r string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.results == nil {
		o.results = map[string]int{}
	}
	o.results[r]++
}

func (o *countingObserver) ObserveLookup(time.Duration, error) {
	o.mu.Lock()
	o.lookups++
	o.mu.Unlock()
}

var breast = domain.FoodItem{FoodID: "171077", Name: "Chicken breast", ServingSize: 1, Calories: 120, Protein: 22.5, Fat: 2.62}

// ---------- EnsureFood / GetFood ----------

func TestCatalogService_EnsureFood_FirstWriteWins(t *testing.T) {
	db := newSvcDB(t)
	s := NewCatalogService(db, nil, nil, 0)
	ctx := context.Background()

	created, err := s.EnsureFood(ctx, breast)
	if err != nil || !created {
		t.Fatalf("first EnsureFood: created=%v err=%v", created, err)
	}

	changed := breast
	changed.Calories = 999
	changed.Name = "Renamed"
	created, err = s.EnsureFood(ctx, changed)
	if err != nil {
		t.Fatalf("duplicate EnsureFood should not error: %v", err)
	}
	if created {
		t.Fatalf("duplicate EnsureFood reported created")
	}

	got, err := s.GetFood(ctx, breast.FoodID)
	if err != nil {
		t.Fatalf("GetFood: %v", err)
	}
	if got.Calories != 120 || got.Name != "Chicken breast" {
		t.Fatalf("stored record was overwritten: %+v", got)
	}
	if n := countFoods(t, db); n != 1 {
		t.Fatalf("want 1 food row, got %d", n)
	}
}

func TestCatalogService_EnsureFood_Validation(t *testing.T) {
	db := newSvcDB(t)
	s := NewCatalogService(db, nil, nil, 0)

	cases := []struct {
		name  string
		food  domain.FoodItem
		field string
	}{
		{"empty id", domain.FoodItem{Name: "x"}, "food_id"},
		{"blank id", domain.FoodItem{FoodID: "  ", Name: "x"}, "food_id"},
		{"empty name", domain.FoodItem{FoodID: "1"}, "name"},
		{"negative serving", domain.FoodItem{FoodID: "1", Name: "x", ServingSize: -1}, "serving_size"},
		{"negative fat", domain.FoodItem{FoodID: "1", Name: "x", Fat: -0.5}, "fat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.EnsureFood(context.Background(), tc.food)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("want field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestCatalogService_EnsureFood_DefaultsServingSize(t *testing.T) {
	db := newSvcDB(t)
	s := NewCatalogService(db, nil, nil, 0)
	f := breast
	f.ServingSize = 0
	if _, err := s.EnsureFood(context.Background(), f); err != nil {
		t.Fatalf("EnsureFood: %v", err)
	}
	got, _ := s.GetFood(context.Background(), f.FoodID)
	if got.ServingSize != 1 {
		t.Fatalf("serving size = %v, want 1", got.ServingSize)
	}
}

func TestCatalogService_GetFood_NotFound(t *testing.T) {
	s := NewCatalogService(newSvcDB(t), nil, nil, 0)
	_, err := s.GetFood(context.Background(), "nope")
	if !errors.Is(err, ErrFoodNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrFoodNotFound wrapping ErrNotFound, got %v", err)
	}
}

// ---------- Search ----------

func TestCatalogService_Search_MissThenHit(t *testing.T) {
	db := newSvcDB(t)
	lk := &fakeLookup{results: []domain.FoodItem{breast}}
	obs := &countingObserver{}
	s := NewCatalogService(db, lk, nil, time.Second)
	s.Observer = obs
	ctx := context.Background()

	first, err := s.Search(ctx, "Chicken  Breast ")
	if err != nil {
		t.Fatalf("Search miss: %v", err)
	}
	second, err := s.Search(ctx, "chicken breast")
	if err != nil {
		t.Fatalf("Search hit: %v", err)
	}

	if lk.Calls() != 1 {
		t.Fatalf("lookup calls = %d, want 1", lk.Calls())
	}
	// The source sees the caller's wording; only the cache key is folded.
	if lk.queries[0] != "Chicken  Breast" {
		t.Fatalf("lookup received %q, want the trimmed raw query", lk.queries[0])
	}
	if _, ok, _ := s.Cache.Get(ctx, "chicken breast"); !ok {
		t.Fatalf("results not cached under the normalized key")
	}
	if !reflect.DeepEqual(first, second) || len(first) != 1 || first[0].FoodID != "171077" {
		t.Fatalf("unexpected results: %+v / %+v", first, second)
	}
	if obs.results[SearchMiss] != 1 || obs.results[SearchHit] != 1 || obs.lookups != 1 {
		t.Fatalf("observer = %+v lookups=%d", obs.results, obs.lookups)
	}

	// Candidates are not promoted to canonical records.
	if n := countFoods(t, db); n != 0 {
		t.Fatalf("search inserted %d canonical foods", n)
	}
}

func TestCatalogService_Search_EmptyResultsAreCached(t *testing.T) {
	lk := &fakeLookup{}
	s := NewCatalogService(newSvcDB(t), lk, nil, time.Second)
	for i := 0; i < 2; i++ {
		got, err := s.Search(context.Background(), "xyzzy")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("want empty non-nil slice, got %#v", got)
		}
	}
	if lk.Calls() != 1 {
		t.Fatalf("lookup calls = %d, want 1", lk.Calls())
	}
}

func TestCatalogService_Search_EmptyQuery(t *testing.T) {
	lk := &fakeLookup{}
	s := NewCatalogService(newSvcDB(t), lk, nil, time.Second)
	_, err := s.Search(context.Background(), "   ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if lk.Calls() != 0 {
		t.Fatalf("lookup should not be called")
	}
}

func TestCatalogService_Search_LookupFailure_NoCacheWrite(t *testing.T) {
	db := newSvcDB(t)
	boom := errors.New("connection refused")
	lk := &fakeLookup{err: boom}
	obs := &countingObserver{}
	s := NewCatalogService(db, lk, nil, time.Second)
	s.Observer = obs

	_, err := s.Search(context.Background(), "chicken")
	if !errors.Is(err, ErrExternalLookup) || !errors.Is(err, boom) {
		t.Fatalf("want ErrExternalLookup wrapping cause, got %v", err)
	}
	if _, ok, _ := s.Cache.Get(context.Background(), "chicken"); ok {
		t.Fatalf("failed lookup must not write the cache")
	}
	if obs.results[SearchError] != 1 {
		t.Fatalf("observer = %+v", obs.results)
	}

	// The next call retries the source.
	lk.err = nil
	lk.results = []domain.FoodItem{breast}
	if _, err := s.Search(context.Background(), "chicken"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if lk.Calls() != 2 {
		t.Fatalf("lookup calls = %d, want 2", lk.Calls())
	}
}

func TestCatalogService_Search_Timeout(t *testing.T) {
	lk := &fakeLookup{block: true}
	s := NewCatalogService(newSvcDB(t), lk, nil, 20*time.Millisecond)

	start := time.Now()
	_, err := s.Search(context.Background(), "slow")
	if !errors.Is(err, ErrExternalLookup) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want lookup timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not enforced")
	}
}

func TestCatalogService_Search_NoLookupConfigured(t *testing.T) {
	s := NewCatalogService(newSvcDB(t), nil, nil, 0)
	if _, err := s.Search(context.Background(), "rice"); !errors.Is(err, ErrExternalLookup) {
		t.Fatalf("want ErrExternalLookup, got %v", err)
	}
}

func TestCatalogService_Search_CacheWriteFailure_StillReturns(t *testing.T) {
	db := newSvcDB(t)
	lk := &fakeLookup{results: []domain.FoodItem{breast}}
	s := NewCatalogService(db, lk, failingStore{searchcache.NewDBStore(db)}, time.Second)

	got, err := s.Search(context.Background(), "chicken")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 result, got %d", len(got))
	}
}

func TestCatalogService_Search_ConcurrentMissesShareLookup(t *testing.T) {
	lk := &fakeLookup{results: []domain.FoodItem{breast}, gate: make(chan struct{})}
	s := NewCatalogService(newSvcDB(t), lk, nil, 5*time.Second)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Search(context.Background(), "Chicken")
			if err == nil && len(res) != 1 {
				err = fmt.Errorf("got %d results", len(res))
			}
			errs <- err
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for lk.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(lk.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
	}
	if lk.Calls() != 1 {
		t.Fatalf("lookup calls = %d, want 1", lk.Calls())
	}
}

func TestCatalogService_ClearSearchCache(t *testing.T) {
	lk := &fakeLookup{results: []domain.FoodItem{breast}}
	s := NewCatalogService(newSvcDB(t), lk, nil, time.Second)
	ctx := context.Background()

	if _, err := s.Search(ctx, "chicken"); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearSearchCache(ctx); err != nil {
		t.Fatalf("ClearSearchCache: %v", err)
	}
	if _, err := s.Search(ctx, "chicken"); err != nil {
		t.Fatal(err)
	}
	if lk.Calls() != 2 {
		t.Fatalf("lookup calls = %d, want 2 after clear", lk.Calls())
	}
}

func TestCatalogService_Search_FileBackend(t *testing.T) {
	lk := &fakeLookup{results: []domain.FoodItem{breast}}
	path := t.TempDir() + "/cached_foods.json"
	s := NewCatalogService(newSvcDB(t), lk, searchcache.NewFileStore(path), time.Second)

	if _, err := s.Search(context.Background(), "Chicken"); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same file hits without a lookup.
	lk2 := &fakeLookup{}
	s2 := NewCatalogService(s.DB, lk2, searchcache.NewFileStore(path), time.Second)
	got, err := s2.Search(context.Background(), "chicken")
	if err != nil {
		t.Fatal(err)
	}
	if lk2.Calls() != 0 || len(got) != 1 {
		t.Fatalf("want cached hit from file, calls=%d results=%d", lk2.Calls(), len(got))
	}
}

// ---------- Suggest ----------

func TestCatalogService_Suggest(t *testing.T) {
	db := newSvcDB(t)
	mustFood(t, db, breast)
	mustFood(t, db, domain.FoodItem{FoodID: "2", Name: "Brown rice"})
	s := NewCatalogService(db, nil, nil, 0)
	ctx := context.Background()

	got, err := s.Suggest(ctx, "chicken", 3)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].FoodID != "171077" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}

	// Foods added after the index was built are suggested too.
	if _, err := s.EnsureFood(ctx, domain.FoodItem{FoodID: "3", Name: "Chicken thigh"}); err != nil {
		t.Fatal(err)
	}
	got, err = s.Suggest(ctx, "chicken thigh", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[0].FoodID != "3" {
		t.Fatalf("new food not indexed: %+v", got)
	}

	if _, err := s.Suggest(ctx, " ", 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for blank query, got %v", err)
	}
}
