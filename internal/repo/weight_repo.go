package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// UpsertWeight records weightKg for (userID, date), overwriting any value
// already logged for that day. The stored row is returned.
func UpsertWeight(ctx context.Context, db *gorm.DB, userID, date string, weightKg float64) (*domain.WeightLog, error) {
	now := time.Now().UTC()
	row := &domain.WeightLog{
		UserID:    userID,
		Date:      date,
		WeightKg:  weightKg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}

	var out domain.WeightLog
	if err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWeights returns all weight logs for userID ordered by date ascending.
func ListWeights(ctx context.Context, db *gorm.DB, userID string) ([]domain.WeightLog, error) {
	var out []domain.WeightLog
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&out).Error
	return out, err
}

// LatestWeight returns the log with the greatest date for userID, or
// ErrNotFound when none exist.
func LatestWeight(ctx context.Context, db *gorm.DB, userID string) (*domain.WeightLog, error) {
	var w domain.WeightLog
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetWeightByID fetches the log with the given id, optionally scoped to
// userID, or ErrNotFound.
func GetWeightByID(ctx context.Context, db *gorm.DB, userID string, id uint64) (*domain.WeightLog, error) {
	var w domain.WeightLog
	if err := db.WithContext(ctx).Scopes(byWeightID(userID, id)).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWeightByID sets weight_kg on the log with the given id. When userID is
// non-empty the update is also scoped to that owner.
func UpdateWeightByID(ctx context.Context, db *gorm.DB, userID string, id uint64, weightKg float64) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.WeightLog{}).
		Scopes(byWeightID(userID, id)).
		Updates(map[string]any{"weight_kg": weightKg, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

// DeleteWeightByID removes the log with the given id, optionally scoped to
// userID.
func DeleteWeightByID(ctx context.Context, db *gorm.DB, userID string, id uint64) (int64, error) {
	res := db.WithContext(ctx).
		Scopes(byWeightID(userID, id)).
		Delete(&domain.WeightLog{})
	return res.RowsAffected, res.Error
}

func byWeightID(userID string, id uint64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("id = ?", id)
		if userID != "" {
			db = db.Where("user_id = ?", userID)
		}
		return db
	}
}
