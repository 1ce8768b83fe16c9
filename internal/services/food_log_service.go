// Package services – FoodLogService
//
// FoodLogService records what a user ate: one row per (user, food, date,
// meal) holding a quantity in servings. Logging an existing key replaces its
// quantity. Reads join each log with the food's per-serving nutrients.

package services

import (
	"context"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
	"github.com/tbourn/go-nutrition-backend/internal/utils"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MealLog groups one meal's entries with their summed macros.
type MealLog struct {
	MealType domain.MealType       `json:"meal_type"`
	Entries  []domain.FoodLogEntry `json:"entries"`
	Totals   domain.Macros         `json:"totals"`
}

// DayLog is a user's food log for one date. Entries are ordered breakfast,
// lunch, dinner, snack and by insertion within a meal. Meals always holds the
// four meals in that order, empty ones included.
type DayLog struct {
	Date    string                `json:"date"`
	Entries []domain.FoodLogEntry `json:"entries"`
	Meals   []MealLog             `json:"meals"`
	Totals  domain.Macros         `json:"totals"`
}

// DaySummary compares a day's intake with the user's calorie target.
// RemainingCalories is negative when the target was exceeded.
type DaySummary struct {
	Date              string        `json:"date"`
	Totals            domain.Macros `json:"totals"`
	Target            CalorieTarget `json:"target"`
	RemainingCalories float64       `json:"remaining_calories"`
}

// FoodLogService manages food logs.
type FoodLogService struct {
	DB      *gorm.DB
	Catalog *CatalogService
	Goals   *GoalService
}

// LogEntry upserts quantity servings of foodID for userID at meal on date.
// The food and user must already exist. The stored row is returned.
func (s *FoodLogService) LogEntry(ctx context.Context, userID, foodID, date, meal string, quantity float64) (*domain.FoodLog, error) {
	tr := otel.Tracer("services/FoodLogService")
	ctx, span := tr.Start(ctx, "LogEntry",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("food.id", foodID),
			attribute.String("log.date", date),
			attribute.String("log.meal", meal),
		),
	)
	defer span.End()

	key, err := logKey(userID, foodID, date, meal)
	if err != nil {
		return nil, err
	}
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}

	var out *domain.FoodLog
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetUser(ctx, tx, key.UserID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return storageErr(err)
		}
		ok, err := repo.FoodExists(ctx, tx, key.FoodID)
		if err != nil {
			return storageErr(err)
		}
		if !ok {
			return ErrFoodNotFound
		}
		fl, err := repo.UpsertFoodLog(ctx, tx, key, quantity)
		if err != nil {
			return storageErr(err)
		}
		out = fl
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// LogFood ensures food is in the catalog and then logs it. This is the path
// taken when a user picks a search result that was never stored canonically.
func (s *FoodLogService) LogFood(ctx context.Context, userID string, food domain.FoodItem, date, meal string, quantity float64) (*domain.FoodLog, error) {
	if s.Catalog == nil {
		s.Catalog = &CatalogService{DB: s.DB}
	}
	if _, err := s.Catalog.EnsureFood(ctx, food); err != nil {
		return nil, err
	}
	return s.LogEntry(ctx, userID, food.FoodID, date, meal, quantity)
}

// GetDay returns every entry userID logged on date with scaled macros,
// grouped by meal.
func (s *FoodLogService) GetDay(ctx context.Context, userID, date string) (*DayLog, error) {
	tr := otel.Tracer("services/FoodLogService")
	ctx, span := tr.Start(ctx, "GetDay",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("log.date", date),
		),
	)
	defer span.End()

	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, invalid("date", err.Error())
	}
	entries, err := repo.ListDayEntries(ctx, s.DB, userID, d)
	if err != nil {
		return nil, storageErr(err)
	}

	day := &DayLog{Date: d, Entries: entries, Meals: make([]MealLog, len(domain.Meals))}
	for i, m := range domain.Meals {
		day.Meals[i] = MealLog{MealType: m, Entries: []domain.FoodLogEntry{}}
	}
	for _, e := range entries {
		i := e.MealType.Rank()
		if i >= len(day.Meals) {
			continue
		}
		day.Meals[i].Entries = append(day.Meals[i].Entries, e)
		day.Meals[i].Totals = day.Meals[i].Totals.Add(e.Totals)
		day.Totals = day.Totals.Add(e.Totals)
	}
	span.SetAttributes(attribute.Int("log.entries", len(entries)))
	return day, nil
}

// GetDayTotals sums the scaled macros of every entry on date. A day with no
// entries yields zero totals.
func (s *FoodLogService) GetDayTotals(ctx context.Context, userID, date string) (domain.Macros, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return domain.Macros{}, invalid("date", err.Error())
	}
	m, err := repo.DayTotals(ctx, s.DB, userID, d)
	if err != nil {
		return domain.Macros{}, storageErr(err)
	}
	return m, nil
}

// UpdateQuantity sets the quantity of the log under the natural key and
// returns the number of rows changed. A key that matches nothing yields 0.
func (s *FoodLogService) UpdateQuantity(ctx context.Context, userID, foodID, date, meal string, quantity float64) (int64, error) {
	key, err := logKey(userID, foodID, date, meal)
	if err != nil {
		return 0, err
	}
	if err := validQuantity(quantity); err != nil {
		return 0, err
	}
	n, err := repo.UpdateFoodLogQuantity(ctx, s.DB, key, quantity)
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// Delete removes the log under the natural key and returns the number of
// rows removed.
func (s *FoodLogService) Delete(ctx context.Context, userID, foodID, date, meal string) (int64, error) {
	key, err := logKey(userID, foodID, date, meal)
	if err != nil {
		return 0, err
	}
	n, err := repo.DeleteFoodLog(ctx, s.DB, key)
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// DaySummary returns the day's totals next to the user's calorie target for
// the given activity level and weekly weight-loss goal.
func (s *FoodLogService) DaySummary(ctx context.Context, userID, date string, level metrics.ActivityLevel, weeklyLbs float64) (*DaySummary, error) {
	totals, err := s.GetDayTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals := s.Goals
	if goals == nil {
		goals = &GoalService{Users: &UserService{DB: s.DB}}
	}
	target, err := goals.CalorieTarget(ctx, userID, level, weeklyLbs)
	if err != nil {
		return nil, err
	}
	d, _ := utils.ParseDate(date)
	return &DaySummary{
		Date:              d,
		Totals:            totals,
		Target:            *target,
		RemainingCalories: float64(target.Calories) - totals.Calories,
	}, nil
}

// DayVersion reports the number of logs on date and the latest change time;
// handlers derive cache validators from it.
func (s *FoodLogService) DayVersion(ctx context.Context, userID, date string) (int64, *time.Time, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return 0, nil, invalid("date", err.Error())
	}
	n, ts, err := repo.FoodLogDayStats(ctx, s.DB, userID, d)
	if err != nil {
		return 0, nil, storageErr(err)
	}
	return n, ts, nil
}

func logKey(userID, foodID, date, meal string) (domain.FoodLogKey, error) {
	userID = strings.TrimSpace(userID)
	foodID = strings.TrimSpace(foodID)
	if userID == "" {
		return domain.FoodLogKey{}, invalid("user_id", "must not be empty")
	}
	if foodID == "" {
		return domain.FoodLogKey{}, invalid("food_id", "must not be empty")
	}
	d, err := utils.ParseDate(date)
	if err != nil {
		return domain.FoodLogKey{}, invalid("date", err.Error())
	}
	m, ok := domain.ParseMealType(meal)
	if !ok {
		return domain.FoodLogKey{}, invalid("meal_type", "must be one of breakfast, lunch, dinner, snack")
	}
	return domain.FoodLogKey{UserID: userID, FoodID: foodID, Date: d, MealType: m}, nil
}

func validQuantity(q float64) error {
	if !(q > 0) || math.IsInf(q, 0) {
		return invalid("quantity", "must be greater than zero")
	}
	return nil
}
