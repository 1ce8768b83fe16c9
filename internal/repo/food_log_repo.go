// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the FoodLog
// model.
//
// Writes are keyed by the natural key (user_id, food_id, date, meal_type).
// UpsertFoodLog relies on the unique index ux_food_logs_natural and a single
// INSERT ... ON CONFLICT DO UPDATE statement, so concurrent writers of the
// same key converge on the last quantity without duplicating rows.
//
// Update and delete report affected-row counts; a key that matches nothing
// returns 0 and no error.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// UpsertFoodLog inserts a log for key or replaces the quantity of the existing
// one. The stored row is read back and returned.
func UpsertFoodLog(ctx context.Context, db *gorm.DB, key domain.FoodLogKey, quantity float64) (*domain.FoodLog, error) {
	now := time.Now().UTC()
	row := &domain.FoodLog{
		UserID:    key.UserID,
		FoodID:    key.FoodID,
		Date:      key.Date,
		MealType:  key.MealType,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "food_id"}, {Name: "date"}, {Name: "meal_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return GetFoodLog(ctx, db, key)
}

// GetFoodLog fetches the log stored under key, or ErrNotFound.
func GetFoodLog(ctx context.Context, db *gorm.DB, key domain.FoodLogKey) (*domain.FoodLog, error) {
	var fl domain.FoodLog
	err := db.WithContext(ctx).
		Scopes(byFoodLogKey(key)).
		First(&fl).Error
	if err != nil {
		return nil, err
	}
	return &fl, nil
}

// UpdateFoodLogQuantity sets the quantity of the log under key.
func UpdateFoodLogQuantity(ctx context.Context, db *gorm.DB, key domain.FoodLogKey, quantity float64) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.FoodLog{}).
		Scopes(byFoodLogKey(key)).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

// DeleteFoodLog removes the log under key.
func DeleteFoodLog(ctx context.Context, db *gorm.DB, key domain.FoodLogKey) (int64, error) {
	res := db.WithContext(ctx).
		Scopes(byFoodLogKey(key)).
		Delete(&domain.FoodLog{})
	return res.RowsAffected, res.Error
}

// dayEntryRow is the flat projection of a food log joined with its food.
type dayEntryRow struct {
	ID       uint64
	FoodID   string
	Name     string
	Date     string
	MealType domain.MealType
	Quantity float64
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// mealOrder sorts rows breakfast, lunch, dinner, snack.
const mealOrder = "CASE fl.meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 WHEN 'snack' THEN 3 ELSE 4 END"

// ListDayEntries returns every log of userID on date joined with per-serving
// nutrients, ordered by meal then insertion (log id). Each entry carries its
// quantity-scaled totals.
func ListDayEntries(ctx context.Context, db *gorm.DB, userID, date string) ([]domain.FoodLogEntry, error) {
	var rows []dayEntryRow
	err := db.WithContext(ctx).
		Table("food_logs AS fl").
		Select(`fl.id, fl.food_id, fi.name, fl.date, fl.meal_type, fl.quantity,
			fi.calories, fi.protein_g AS protein, fi.carbs_g AS carbs, fi.fat_g AS fat`).
		Joins("JOIN food_items AS fi ON fi.food_id = fl.food_id").
		Where("fl.user_id = ? AND fl.date = ?", userID, date).
		Order(mealOrder).
		Order("fl.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.FoodLogEntry, 0, len(rows))
	for _, r := range rows {
		per := domain.Macros{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fat: r.Fat}
		out = append(out, domain.FoodLogEntry{
			LogID:    r.ID,
			FoodID:   r.FoodID,
			Name:     r.Name,
			Date:     r.Date,
			MealType: r.MealType,
			Quantity: r.Quantity,
			PerUnit:  per,
			Totals:   per.Scale(r.Quantity),
		})
	}
	return out, nil
}

// DayTotals sums quantity-scaled macros over every log of userID on date.
// A day with no logs yields all-zero totals.
func DayTotals(ctx context.Context, db *gorm.DB, userID, date string) (domain.Macros, error) {
	var m domain.Macros
	err := db.WithContext(ctx).
		Table("food_logs AS fl").
		Select(`COALESCE(SUM(fi.calories * fl.quantity), 0) AS calories,
			COALESCE(SUM(fi.protein_g * fl.quantity), 0) AS protein,
			COALESCE(SUM(fi.carbs_g * fl.quantity), 0) AS carbs,
			COALESCE(SUM(fi.fat_g * fl.quantity), 0) AS fat`).
		Joins("JOIN food_items AS fi ON fi.food_id = fl.food_id").
		Where("fl.user_id = ? AND fl.date = ?", userID, date).
		Scan(&m).Error
	return m, err
}

func byFoodLogKey(key domain.FoodLogKey) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND food_id = ? AND date = ? AND meal_type = ?",
			key.UserID, key.FoodID, key.Date, key.MealType)
	}
}
