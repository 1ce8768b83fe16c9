package searchcache

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
)

// DBStore is a Store backed by the search_cache table.
type DBStore struct {
	DB *gorm.DB
}

// NewDBStore returns a DBStore using db.
func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{DB: db} }

func (s *DBStore) Get(ctx context.Context, key string) ([]domain.FoodItem, bool, error) {
	e, err := repo.GetSearchCache(ctx, s.DB, key)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var foods []domain.FoodItem
	if err := json.Unmarshal(e.Results, &foods); err != nil {
		// A corrupt row is treated as a miss; the next Put overwrites it.
		return nil, false, nil
	}
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	return foods, true, nil
}

func (s *DBStore) Put(ctx context.Context, key string, foods []domain.FoodItem) error {
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	b, err := json.Marshal(foods)
	if err != nil {
		return err
	}
	return repo.PutSearchCache(ctx, s.DB, key, datatypes.JSON(b))
}

func (s *DBStore) Clear(ctx context.Context) error {
	_, err := repo.ClearSearchCache(ctx, s.DB)
	return err
}
