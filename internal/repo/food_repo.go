package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// InsertFoodIfAbsent stores f unless a row with the same food_id already
// exists, in which case the stored row is left untouched (first write wins).
// The boolean reports whether a new row was inserted.
func InsertFoodIfAbsent(ctx context.Context, db *gorm.DB, f *domain.FoodItem) (bool, error) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "food_id"}},
			DoNothing: true,
		}).
		Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetFood fetches the canonical record for foodID, or ErrNotFound.
func GetFood(ctx context.Context, db *gorm.DB, foodID string) (*domain.FoodItem, error) {
	var f domain.FoodItem
	if err := db.WithContext(ctx).Where("food_id = ?", foodID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FoodExists reports whether a canonical record exists for foodID.
func FoodExists(ctx context.Context, db *gorm.DB, foodID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.FoodItem{}).
		Where("food_id = ?", foodID).
		Count(&n).Error
	return n > 0, err
}

// ListFoods returns canonical foods ordered by name. A non-positive limit
// returns every row.
func ListFoods(ctx context.Context, db *gorm.DB, limit int) ([]domain.FoodItem, error) {
	var out []domain.FoodItem
	q := db.WithContext(ctx).Order("name asc, food_id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
