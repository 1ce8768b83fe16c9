// Package handlers exposes the REST endpoints of the nutrition API.
//
// Handlers are transport-thin: they bind and check input, call application
// services, and translate results into HTTP responses (including conditional
// 304 responses for day logs and weight history).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/http/middleware"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/search"
	"github.com/tbourn/go-nutrition-backend/internal/services"
	"github.com/tbourn/go-nutrition-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService manages accounts and profiles.
type UserService interface {
	Register(ctx context.Context, username, password string, p services.ProfileUpdate) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, p services.ProfileUpdate) (*domain.User, error)
}

// CatalogService serves the canonical food store and cached searches.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]domain.FoodItem, error)
	Suggest(ctx context.Context, query string, k int) ([]search.Result, error)
	GetFood(ctx context.Context, foodID string) (*domain.FoodItem, error)
	EnsureFood(ctx context.Context, food domain.FoodItem) (bool, error)
	ClearSearchCache(ctx context.Context) error
}

// FoodLogService records what a user ate.
type FoodLogService interface {
	LogEntry(ctx context.Context, userID, foodID, date, meal string, quantity float64) (*domain.FoodLog, error)
	LogFood(ctx context.Context, userID string, food domain.FoodItem, date, meal string, quantity float64) (*domain.FoodLog, error)
	GetDay(ctx context.Context, userID, date string) (*services.DayLog, error)
	GetDayTotals(ctx context.Context, userID, date string) (domain.Macros, error)
	DaySummary(ctx context.Context, userID, date string, level metrics.ActivityLevel, weeklyLbs float64) (*services.DaySummary, error)
	UpdateQuantity(ctx context.Context, userID, foodID, date, meal string, quantity float64) (int64, error)
	Delete(ctx context.Context, userID, foodID, date, meal string) (int64, error)
	DayVersion(ctx context.Context, userID, date string) (int64, *time.Time, error)
}

// WeightService records body-weight measurements.
type WeightService interface {
	LogWeight(ctx context.Context, userID, date string, weightKg float64) (*domain.WeightLog, error)
	HistoryWithBMI(ctx context.Context, userID string) ([]services.WeightPoint, error)
	Latest(ctx context.Context, userID string) (*domain.WeightLog, error)
	UpdateByID(ctx context.Context, userID string, id uint64, weightKg float64) (int64, error)
	DeleteByID(ctx context.Context, userID string, id uint64) (int64, error)
	Version(ctx context.Context, userID string) (int64, *time.Time, error)
}

// GoalService computes daily calorie budgets.
type GoalService interface {
	CalorieTarget(ctx context.Context, userID string, level metrics.ActivityLevel, weeklyLbs float64) (*services.CalorieTarget, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. It depends on service interfaces so
// tests can substitute stubs.
type Handlers struct {
	users   UserService
	catalog CatalogService
	logs    FoodLogService
	weights WeightService
	goals   GoalService
}

// New constructs a Handlers bound to the given services.
func New(users UserService, catalog CatalogService, logs FoodLogService, weights WeightService, goals GoalService) *Handlers {
	return &Handlers{users: users, catalog: catalog, logs: logs, weights: weights, goals: goals}
}

//
// Helpers
//

// userID returns the identity set by middleware.Auth, or "" when the route is
// not behind it.
func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// dateOrToday maps "" and "today" to the current UTC date; anything else is
// passed through for the service to validate.
func dateOrToday(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return utils.Today()
	}
	return s
}

// weakETag builds a validator from a resource's row count and latest change.
func weakETag(kind, scope string, count int64, ts *time.Time) string {
	var ms int64
	if ts != nil {
		ms = ts.UnixMilli()
	}
	return fmt.Sprintf(`W/"%s:%s:%d:%d"`, kind, scope, count, ms)
}

// notModified sets the ETag header and writes 304 when If-None-Match
// carries the same validator.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	for _, v := range strings.Split(c.GetHeader("If-None-Match"), ",") {
		if strings.TrimSpace(v) == etag {
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}
