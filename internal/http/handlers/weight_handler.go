// Weight HTTP handlers.
//
//   - POST   /weights         (log a measurement, one per date)
//   - GET    /weights         (history with BMI, ETag support)
//   - GET    /weights/latest  (most recent measurement)
//   - PUT    /weights/{id}    (correct a measurement)
//   - DELETE /weights/{id}    (remove a measurement)
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/services"
)

// LogWeightRequest is the JSON payload for POST /weights. Exactly one of
// WeightKg or WeightLbs should be set; WeightKg wins when both are.
type LogWeightRequest struct {
	Date      string  `json:"date,omitempty"       example:"2024-01-31"`
	WeightKg  float64 `json:"weight_kg,omitempty"  example:"72.5"`
	WeightLbs float64 `json:"weight_lbs,omitempty" example:"159.8"`
}

func (r LogWeightRequest) kg() float64 {
	if r.WeightKg != 0 {
		return r.WeightKg
	}
	return metrics.PoundsToKg(r.WeightLbs)
}

// UpdateWeightRequest is the JSON payload for PUT /weights/{id}.
type UpdateWeightRequest struct {
	WeightKg  float64 `json:"weight_kg,omitempty"  example:"72.1"`
	WeightLbs float64 `json:"weight_lbs,omitempty" example:"159"`
}

// WeightHistoryResponse wraps the weight history, oldest first.
type WeightHistoryResponse struct {
	Weights []services.WeightPoint `json:"weights"`
}

// LogWeight godoc
// @ID          logWeight
// @Summary     Log weight
// @Description Records a measurement for a date (default today); logging the same date again replaces it.
// @Tags        Weights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string                     false  "User ID (when auth is disabled)"
// @Param       body       body      handlers.LogWeightRequest  true   "Measurement"
// @Success     201        {object}  domain.WeightLog
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404        {object}  handlers.ErrorResponse  "User not found"
// @Router      /weights [post]
func (h *Handlers) LogWeight(c *gin.Context) {
	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	w, err := h.weights.LogWeight(c.Request.Context(), userID(c), dateOrToday(req.Date), req.kg())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, w)
}

// ListWeights godoc
// @ID          listWeights
// @Summary     Weight history
// @Description Returns every measurement in date order with BMI and category. Supports weak ETag via If-None-Match.
// @Tags        Weights
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID      header    string  false  "User ID (when auth is disabled)"
// @Param       If-None-Match  header    string  false  "Return 304 if ETag matches"
// @Success     200            {object}  handlers.WeightHistoryResponse
// @Success     304            {string}  string  "Not Modified"
// @Failure     404            {object}  handlers.ErrorResponse  "User not found"
// @Router      /weights [get]
func (h *Handlers) ListWeights(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	if n, ts, err := h.weights.Version(ctx, uid); err == nil {
		if notModified(c, weakETag("weights", uid, n, ts)) {
			return
		}
	}

	pts, err := h.weights.HistoryWithBMI(ctx, uid)
	if err != nil {
		failErr(c, err)
		return
	}
	if pts == nil {
		pts = []services.WeightPoint{}
	}
	ok(c, http.StatusOK, WeightHistoryResponse{Weights: pts})
}

// LatestWeight godoc
// @ID          latestWeight
// @Summary     Latest weight
// @Tags        Weights
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Success     200        {object}  domain.WeightLog
// @Failure     404        {object}  handlers.ErrorResponse  "No measurements"
// @Router      /weights/latest [get]
func (h *Handlers) LatestWeight(c *gin.Context) {
	w, err := h.weights.Latest(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, w)
}

// UpdateWeight godoc
// @ID          updateWeight
// @Summary     Correct a measurement
// @Tags        Weights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string                        false  "User ID (when auth is disabled)"
// @Param       id         path      int                           true   "Weight log ID"
// @Param       body       body      handlers.UpdateWeightRequest  true   "New weight"
// @Success     200        {object}  handlers.AffectedResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /weights/{id} [put]
func (h *Handlers) UpdateWeight(c *gin.Context) {
	id, good := logID(c)
	if !good {
		return
	}
	var req UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	kg := LogWeightRequest{WeightKg: req.WeightKg, WeightLbs: req.WeightLbs}.kg()
	n, err := h.weights.UpdateByID(c.Request.Context(), userID(c), id, kg)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

// DeleteWeight godoc
// @ID          deleteWeight
// @Summary     Remove a measurement
// @Tags        Weights
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Param       id         path      int     true   "Weight log ID"
// @Success     200        {object}  handlers.AffectedResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Bad id"
// @Router      /weights/{id} [delete]
func (h *Handlers) DeleteWeight(c *gin.Context) {
	id, good := logID(c)
	if !good {
		return
	}
	n, err := h.weights.DeleteByID(c.Request.Context(), userID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, AffectedResponse{Affected: n})
}

func logID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
