package repo

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// GetSearchCache returns the cached entry for the normalized query, or
// ErrNotFound on a miss.
func GetSearchCache(ctx context.Context, db *gorm.DB, query string) (*domain.SearchCacheEntry, error) {
	var e domain.SearchCacheEntry
	if err := db.WithContext(ctx).Where("query = ?", query).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// PutSearchCache stores results under query, replacing any previous entry.
func PutSearchCache(ctx context.Context, db *gorm.DB, query string, results datatypes.JSON) error {
	e := &domain.SearchCacheEntry{
		Query:     query,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query"}},
			DoUpdates: clause.AssignmentColumns([]string{"results", "created_at"}),
		}).
		Create(e).Error
}

// ClearSearchCache drops every cached search and returns the number removed.
func ClearSearchCache(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.SearchCacheEntry{})
	return res.RowsAffected, res.Error
}
