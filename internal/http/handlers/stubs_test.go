package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/http/middleware"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/search"
	"github.com/tbourn/go-nutrition-backend/internal/services"
)

// ---------- flexible service stubs ----------

type stubUsers struct {
	register func(context.Context, string, string, services.ProfileUpdate) (*domain.User, error)
	login    func(context.Context, string, string) (*services.LoginResult, error)
	get      func(context.Context, string) (*domain.User, error)
	update   func(context.Context, string, services.ProfileUpdate) (*domain.User, error)
}

func (s stubUsers) Register(ctx context.Context, u, p string, pu services.ProfileUpdate) (*domain.User, error) {
	return s.register(ctx, u, p, pu)
}

func (s stubUsers) Login(ctx context.Context, u, p string) (*services.LoginResult, error) {
	return s.login(ctx, u, p)
}

func (s stubUsers) Get(ctx context.Context, id string) (*domain.User, error) { return s.get(ctx, id) }

func (s stubUsers) UpdateProfile(ctx context.Context, id string, p services.ProfileUpdate) (*domain.User, error) {
	return s.update(ctx, id, p)
}

type stubCatalog struct {
	search  func(context.Context, string) ([]domain.FoodItem, error)
	suggest func(context.Context, string, int) ([]search.Result, error)
	get     func(context.Context, string) (*domain.FoodItem, error)
	ensure  func(context.Context, domain.FoodItem) (bool, error)
	clear   func(context.Context) error
}

func (s stubCatalog) Search(ctx context.Context, q string) ([]domain.FoodItem, error) {
	return s.search(ctx, q)
}

func (s stubCatalog) Suggest(ctx context.Context, q string, k int) ([]search.Result, error) {
	return s.suggest(ctx, q, k)
}

func (s stubCatalog) GetFood(ctx context.Context, id string) (*domain.FoodItem, error) {
	return s.get(ctx, id)
}

func (s stubCatalog) EnsureFood(ctx context.Context, f domain.FoodItem) (bool, error) {
	return s.ensure(ctx, f)
}

func (s stubCatalog) ClearSearchCache(ctx context.Context) error { return s.clear(ctx) }

type stubLogs struct {
	logEntry func(ctx context.Context, uid, foodID, date, meal string, q float64) (*domain.FoodLog, error)
	logFood  func(ctx context.Context, uid string, f domain.FoodItem, date, meal string, q float64) (*domain.FoodLog, error)
	getDay   func(ctx context.Context, uid, date string) (*services.DayLog, error)
	totals   func(ctx context.Context, uid, date string) (domain.Macros, error)
	summary  func(ctx context.Context, uid, date string, l metrics.ActivityLevel, lbs float64) (*services.DaySummary, error)
	update   func(ctx context.Context, uid, foodID, date, meal string, q float64) (int64, error)
	del      func(ctx context.Context, uid, foodID, date, meal string) (int64, error)
	version  func(ctx context.Context, uid, date string) (int64, *time.Time, error)
}

func (s stubLogs) LogEntry(ctx context.Context, uid, foodID, date, meal string, q float64) (*domain.FoodLog, error) {
	return s.logEntry(ctx, uid, foodID, date, meal, q)
}

func (s stubLogs) LogFood(ctx context.Context, uid string, f domain.FoodItem, date, meal string, q float64) (*domain.FoodLog, error) {
	return s.logFood(ctx, uid, f, date, meal, q)
}

func (s stubLogs) GetDay(ctx context.Context, uid, date string) (*services.DayLog, error) {
	return s.getDay(ctx, uid, date)
}

func (s stubLogs) GetDayTotals(ctx context.Context, uid, date string) (domain.Macros, error) {
	return s.totals(ctx, uid, date)
}

func (s stubLogs) DaySummary(ctx context.Context, uid, date string, l metrics.ActivityLevel, lbs float64) (*services.DaySummary, error) {
	return s.summary(ctx, uid, date, l, lbs)
}

func (s stubLogs) UpdateQuantity(ctx context.Context, uid, foodID, date, meal string, q float64) (int64, error) {
	return s.update(ctx, uid, foodID, date, meal, q)
}

func (s stubLogs) Delete(ctx context.Context, uid, foodID, date, meal string) (int64, error) {
	return s.del(ctx, uid, foodID, date, meal)
}

func (s stubLogs) DayVersion(ctx context.Context, uid, date string) (int64, *time.Time, error) {
	if s.version == nil {
		return 0, nil, nil
	}
	return s.version(ctx, uid, date)
}

type stubWeights struct {
	log     func(ctx context.Context, uid, date string, kg float64) (*domain.WeightLog, error)
	history func(ctx context.Context, uid string) ([]services.WeightPoint, error)
	latest  func(ctx context.Context, uid string) (*domain.WeightLog, error)
	update  func(ctx context.Context, uid string, id uint64, kg float64) (int64, error)
	del     func(ctx context.Context, uid string, id uint64) (int64, error)
	version func(ctx context.Context, uid string) (int64, *time.Time, error)
}

func (s stubWeights) LogWeight(ctx context.Context, uid, date string, kg float64) (*domain.WeightLog, error) {
	return s.log(ctx, uid, date, kg)
}

func (s stubWeights) HistoryWithBMI(ctx context.Context, uid string) ([]services.WeightPoint, error) {
	return s.history(ctx, uid)
}

func (s stubWeights) Latest(ctx context.Context, uid string) (*domain.WeightLog, error) {
	return s.latest(ctx, uid)
}

func (s stubWeights) UpdateByID(ctx context.Context, uid string, id uint64, kg float64) (int64, error) {
	return s.update(ctx, uid, id, kg)
}

func (s stubWeights) DeleteByID(ctx context.Context, uid string, id uint64) (int64, error) {
	return s.del(ctx, uid, id)
}

func (s stubWeights) Version(ctx context.Context, uid string) (int64, *time.Time, error) {
	if s.version == nil {
		return 0, nil, nil
	}
	return s.version(ctx, uid)
}

type stubGoals struct {
	target func(ctx context.Context, uid string, l metrics.ActivityLevel, lbs float64) (*services.CalorieTarget, error)
}

func (s stubGoals) CalorieTarget(ctx context.Context, uid string, l metrics.ActivityLevel, lbs float64) (*services.CalorieTarget, error) {
	return s.target(ctx, uid, l, lbs)
}

// ---------- router + request helpers ----------

// newTestRouter mounts h the way the API router does, with header identity.
func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	r.POST("/users", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/foods/search", h.SearchFoods)
	r.GET("/foods/suggest", h.SuggestFoods)
	r.GET("/foods/:id", h.GetFood)
	r.GET("/metrics/bmi", h.BMI)

	p := r.Group("", middleware.Auth(nil))
	p.GET("/me", h.GetMe)
	p.PATCH("/me", h.UpdateMe)
	p.POST("/foods", h.EnsureFood)
	p.DELETE("/foods/search-cache", h.ClearSearchCache)
	p.POST("/food-logs", h.LogFood)
	p.GET("/food-logs/:date", h.GetDay)
	p.GET("/food-logs/:date/totals", h.GetDayTotals)
	p.GET("/food-logs/:date/summary", h.GetDaySummary)
	p.PUT("/food-logs/:date/:meal/:food_id", h.UpdateFoodLog)
	p.DELETE("/food-logs/:date/:meal/:food_id", h.DeleteFoodLog)
	p.POST("/weights", h.LogWeight)
	p.GET("/weights", h.ListWeights)
	p.GET("/weights/latest", h.LatestWeight)
	p.PUT("/weights/:id", h.UpdateWeight)
	p.DELETE("/weights/:id", h.DeleteWeight)
	p.GET("/metrics/calorie-target", h.CalorieTarget)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var asU1 = map[string]string{"X-User-ID": "u1"}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Code
}
