// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// FoodLogDayStats returns the number of logs userID has on date and the
// greatest UpdatedAt among them (nil when there are none).
func FoodLogDayStats(ctx context.Context, db *gorm.DB, userID, date string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.FoodLog{}).Where("user_id = ? AND date = ?", userID, date)
	return countAndLatest(q)
}

// WeightStats returns the number of weight logs for userID and the greatest
// UpdatedAt among them (nil when there are none).
func WeightStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.WeightLog{}).Where("user_id = ?", userID)
	return countAndLatest(q)
}

func countAndLatest(q *gorm.DB) (int64, *time.Time, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err := q.Session(&gorm.Session{}).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
