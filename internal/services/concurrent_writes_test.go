package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
)

const concurrentWriters = 16

// newFileDB opens the production SQLite setup (WAL, pooled connections) on a
// temp file so writers really contend.
func newFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	mustUser(t, db, "u1")
	return db
}

// runConcurrently calls fn(i) from n goroutines released together and
// reports every error.
func runConcurrently(t *testing.T, n int, fn func(i int) error) {
	t.Helper()
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs <- fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent write: %v", err)
		}
	}
}

func TestFoodLogService_LogEntry_ConcurrentSameKey(t *testing.T) {
	db := newFileDB(t)
	mustFood(t, db, oats)
	s := &FoodLogService{DB: db}
	ctx := context.Background()

	runConcurrently(t, concurrentWriters, func(i int) error {
		_, err := s.LogEntry(ctx, "u1", "f1", "2024-01-01", "lunch", float64(i+1))
		return err
	})

	var rows []domain.FoodLog
	if err := db.Where("user_id = ? AND food_id = ? AND date = ? AND meal_type = ?", "u1", "f1", "2024-01-01", "lunch").
		Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if q := rows[0].Quantity; q < 1 || q > concurrentWriters || q != float64(int(q)) {
		t.Fatalf("quantity = %v, want one of the written values", q)
	}
}

func TestWeightService_LogWeight_ConcurrentSameDate(t *testing.T) {
	db := newFileDB(t)
	s := &WeightService{DB: db}
	ctx := context.Background()

	runConcurrently(t, concurrentWriters, func(i int) error {
		_, err := s.LogWeight(ctx, "u1", "2024-01-01", 60+float64(i))
		return err
	})

	var rows []domain.WeightLog
	if err := db.Where("user_id = ? AND date = ?", "u1", "2024-01-01").Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	kg := rows[0].WeightKg
	if kg < 60 || kg >= 60+concurrentWriters || kg != float64(int(kg)) {
		t.Fatalf("weight = %v, want one of the written values", kg)
	}
	// The profile follows whichever write committed last.
	if got := profileWeight(t, s, "u1"); got == nil || *got != kg {
		t.Fatalf("profile weight = %v, want %v", got, kg)
	}
}
