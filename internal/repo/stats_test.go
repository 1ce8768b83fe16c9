package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// newSchemaDB returns a database with the full application schema.
func newSchemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	if err := db.Create(&domain.User{ID: id, Username: "user-" + id, PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func seedFood(t *testing.T, db *gorm.DB, f domain.FoodItem) {
	t.Helper()
	if f.ServingSize == 0 {
		f.ServingSize = 1
	}
	if err := db.Create(&f).Error; err != nil {
		t.Fatalf("seed food %s: %v", f.FoodID, err)
	}
}

func TestFoodLogDayStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, _, err := FoodLogDayStats(context.Background(), db, "u1", "2024-01-01"); err == nil {
		t.Fatalf("expected error due to missing food_logs table")
	}
}

func TestFoodLogDayStats_ZeroRows(t *testing.T) {
	db := newSchemaDB(t)
	count, maxAt, err := FoodLogDayStats(context.Background(), db, "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("FoodLogDayStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestFoodLogDayStats_FilterAndMax(t *testing.T) {
	db := newSchemaDB(t)
	seedUser(t, db, "u1")
	seedFood(t, db, domain.FoodItem{FoodID: "F1", Name: "Oats"})
	seedFood(t, db, domain.FoodItem{FoodID: "F2", Name: "Rice"})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	rows := []domain.FoodLog{
		{UserID: "u1", FoodID: "F1", Date: "2024-01-01", MealType: domain.MealLunch, Quantity: 1, CreatedAt: t1, UpdatedAt: t1},
		{UserID: "u1", FoodID: "F2", Date: "2024-01-01", MealType: domain.MealDinner, Quantity: 1, CreatedAt: t2, UpdatedAt: t2},
		{UserID: "u1", FoodID: "F1", Date: "2024-01-02", MealType: domain.MealLunch, Quantity: 1, CreatedAt: t1, UpdatedAt: t1},
	}
	for i := range rows {
		if err := db.Omit("User").Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	count, maxAt, err := FoodLogDayStats(context.Background(), db, "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("FoodLogDayStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d want 2", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("maxUpdatedAt=%v want %v", maxAt, t2)
	}
}

func TestWeightStats_FilterAndMax(t *testing.T) {
	db := newSchemaDB(t)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	rows := []domain.WeightLog{
		{UserID: "u1", Date: "2024-01-01", WeightKg: 80, CreatedAt: t1, UpdatedAt: t1},
		{UserID: "u1", Date: "2024-01-02", WeightKg: 79, CreatedAt: t2, UpdatedAt: t2},
		{UserID: "u2", Date: "2024-01-02", WeightKg: 60, CreatedAt: t2, UpdatedAt: t2.Add(time.Hour)},
	}
	for i := range rows {
		if err := db.Omit("User").Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed weight: %v", err)
		}
	}

	count, maxAt, err := WeightStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("WeightStats error: %v", err)
	}
	if count != 2 || maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("got (%d,%v) want (2,%v)", count, maxAt, t2)
	}
}
