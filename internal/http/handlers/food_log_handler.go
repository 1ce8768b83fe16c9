// Food log HTTP handlers.
//
//   - POST   /food-logs                          (upsert an entry)
//   - GET    /food-logs/{date}                   (entries by meal, ETag support)
//   - GET    /food-logs/{date}/totals            (macro totals)
//   - GET    /food-logs/{date}/summary           (totals against the calorie target)
//   - PUT    /food-logs/{date}/{meal}/{food_id}  (change quantity)
//   - DELETE /food-logs/{date}/{meal}/{food_id}  (remove entry)
//
// {date} is YYYY-MM-DD or "today".
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
)

// LogFoodRequest is the JSON payload for POST /food-logs. Either FoodID names
// a catalog food, or Food carries a full record (e.g. a search result) that is
// added to the catalog first.
type LogFoodRequest struct {
	FoodID   string       `json:"food_id,omitempty" example:"171705"`
	Food     *FoodRequest `json:"food,omitempty"`
	Date     string       `json:"date,omitempty"    example:"2024-01-31"`
	MealType string       `json:"meal_type"         example:"lunch" enums:"breakfast,lunch,dinner,snack"`
	Quantity float64      `json:"quantity"          example:"1.5"`
}

// UpdateQuantityRequest is the JSON payload for changing an entry.
type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity" example:"2"`
}

// DayTotalsResponse wraps a day's macro totals.
type DayTotalsResponse struct {
	Date   string        `json:"date" example:"2024-01-31"`
	Totals domain.Macros `json:"totals"`
}

// LogFood godoc
// @ID          logFood
// @Summary     Log a food
// @Description Records quantity servings of a food for a meal. Logging the same food, date and meal again replaces the quantity.
// @Tags        FoodLogs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string                   false  "User ID (when auth is disabled)"
// @Param       body       body      handlers.LogFoodRequest  true   "Entry"
// @Success     201        {object}  domain.FoodLog
// @Failure     400        {object}  handlers.ErrorResponse   "Validation failed"
// @Failure     404        {object}  handlers.ErrorResponse   "Food or user not found"
// @Router      /food-logs [post]
func (h *Handlers) LogFood(c *gin.Context) {
	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	date := dateOrToday(req.Date)

	var (
		fl  *domain.FoodLog
		err error
	)
	switch {
	case req.Food != nil:
		fl, err = h.logs.LogFood(ctx, userID(c), req.Food.item(), date, req.MealType, req.Quantity)
	case req.FoodID != "":
		fl, err = h.logs.LogEntry(ctx, userID(c), req.FoodID, date, req.MealType, req.Quantity)
	default:
		fail(c, http.StatusBadRequest, ErrCodeValidation, "food_id: must not be empty")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, fl)
}

// GetDay godoc
// @ID          getFoodLogDay
// @Summary     Day log
// @Description Returns the day's entries ordered by meal then insertion, grouped per meal with totals. Supports weak ETag via If-None-Match.
// @Tags        FoodLogs
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID      header    string  false  "User ID (when auth is disabled)"
// @Param       If-None-Match  header    string  false  "Return 304 if ETag matches"
// @Param       date           path      string  true   "YYYY-MM-DD or today"  example(2024-01-31)
// @Success     200            {object}  services.DayLog
// @Header      200            {string}  ETag  "Weak ETag for current result"
// @Success     304            {string}  string  "Not Modified"
// @Failure     400            {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /food-logs/{date} [get]
func (h *Handlers) GetDay(c *gin.Context) {
	ctx := c.Request.Context()
	uid, date := userID(c), dateOrToday(c.Param("date"))

	// Validator pre-check (best effort).
	if n, ts, err := h.logs.DayVersion(ctx, uid, date); err == nil {
		if notModified(c, weakETag("day", uid+":"+date, n, ts)) {
			return
		}
	}

	day, err := h.logs.GetDay(ctx, uid, date)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, day)
}

// GetDayTotals godoc
// @ID          getFoodLogTotals
// @Summary     Day totals
// @Tags        FoodLogs
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Param       date       path      string  true   "YYYY-MM-DD or today"
// @Success     200        {object}  handlers.DayTotalsResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /food-logs/{date}/totals [get]
func (h *Handlers) GetDayTotals(c *gin.Context) {
	date := dateOrToday(c.Param("date"))
	t, err := h.logs.GetDayTotals(c.Request.Context(), userID(c), date)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, DayTotalsResponse{Date: date, Totals: t})
}

// GetDaySummary godoc
// @ID          getFoodLogSummary
// @Summary     Day summary
// @Description Day totals next to the calorie target for the given activity level and weekly loss goal (0, 1 or 2 lbs).
// @Tags        FoodLogs
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Param       date       path      string  true   "YYYY-MM-DD or today"
// @Param       activity   query     string  false  "Activity level"  Enums(sedentary,light,moderate,very_active,extra_active) default(sedentary)
// @Param       goal       query     number  false  "Weekly loss in lbs"  Enums(0,1,2) default(0)
// @Success     200        {object}  services.DaySummary
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /food-logs/{date}/summary [get]
func (h *Handlers) GetDaySummary(c *gin.Context) {
	level, lbs, okParams := goalParams(c)
	if !okParams {
		return
	}
	sum, err := h.logs.DaySummary(c.Request.Context(), userID(c), dateOrToday(c.Param("date")), level, lbs)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sum)
}

// UpdateFoodLog godoc
// @ID          updateFoodLog
// @Summary     Change an entry's quantity
// @Tags        FoodLogs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string                          false  "User ID (when auth is disabled)"
// @Param       date       path      string                          true   "YYYY-MM-DD or today"
// @Param       meal       path      string                          true   "Meal"  Enums(breakfast,lunch,dinner,snack)
// @Param       food_id    path      string                          true   "Food ID"
// @Param       body       body      handlers.UpdateQuantityRequest  true   "New quantity"
// @Success     200        {object}  handlers.AffectedResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /food-logs/{date}/{meal}/{food_id} [put]
func (h *Handlers) UpdateFoodLog(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	n, err := h.logs.UpdateQuantity(c.Request.Context(), userID(c), c.Param("food_id"),
		dateOrToday(c.Param("date")), c.Param("meal"), req.Quantity)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

// DeleteFoodLog godoc
// @ID          deleteFoodLog
// @Summary     Remove an entry
// @Tags        FoodLogs
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Param       date       path      string  true   "YYYY-MM-DD or today"
// @Param       meal       path      string  true   "Meal"  Enums(breakfast,lunch,dinner,snack)
// @Param       food_id    path      string  true   "Food ID"
// @Success     200        {object}  handlers.AffectedResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /food-logs/{date}/{meal}/{food_id} [delete]
func (h *Handlers) DeleteFoodLog(c *gin.Context) {
	n, err := h.logs.Delete(c.Request.Context(), userID(c), c.Param("food_id"),
		dateOrToday(c.Param("date")), c.Param("meal"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

// goalParams parses ?activity= and ?goal=, writing a 400 on failure.
func goalParams(c *gin.Context) (metrics.ActivityLevel, float64, bool) {
	level, err := metrics.ParseActivity(c.Query("activity"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "activity: must be one of sedentary, light, moderate, very_active, extra_active")
		return "", 0, false
	}
	lbs, err := metrics.ParseWeeklyGoal(c.Query("goal"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "goal: must be 0, 1 or 2")
		return "", 0, false
	}
	return level, lbs, true
}
