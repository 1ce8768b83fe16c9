// Metric HTTP handlers: stateless BMI and the calorie target of the current
// user.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/utils"
)

// BMIResponse is the result of GET /metrics/bmi.
type BMIResponse struct {
	WeightKg float64             `json:"weight_kg" example:"70"`
	HeightCm float64             `json:"height_cm" example:"175"`
	BMI      float64             `json:"bmi"       example:"22.86"`
	Category metrics.BMICategory `json:"category"  example:"Normal"`
}

// BMI godoc
// @ID          computeBMI
// @Summary     Compute BMI
// @Description weight_kg / (height_cm/100)^2. height_cm defaults to 175 when omitted.
// @Tags        Metrics
// @Produce     json
// @Param       weight_kg  query     number  true   "Weight in kg"  example(70)
// @Param       height_cm  query     number  false  "Height in cm"  example(175)
// @Success     200        {object}  handlers.BMIResponse
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /metrics/bmi [get]
func (h *Handlers) BMI(c *gin.Context) {
	kg, good := utils.ParseFloat(c.Query("weight_kg"))
	if !good || kg <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "weight_kg: must be a positive number")
		return
	}
	cm := metrics.DefaultHeightCm
	if raw := c.Query("height_cm"); raw != "" {
		v, good := utils.ParseFloat(raw)
		if !good || v <= 0 {
			fail(c, http.StatusBadRequest, ErrCodeValidation, "height_cm: must be a positive number")
			return
		}
		cm = v
	}
	bmi, err := metrics.BMI(kg, cm)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	ok(c, http.StatusOK, BMIResponse{WeightKg: kg, HeightCm: cm, BMI: bmi, Category: metrics.Category(bmi)})
}

// CalorieTarget godoc
// @ID          calorieTarget
// @Summary     Daily calorie target
// @Description Harris-Benedict BMR times the activity multiplier, minus 500 kcal per weekly pound of loss. Users without a profile get the configured default.
// @Tags        Metrics
// @Produce     json
// @Security    BearerAuth
// @Param       X-User-ID  header    string  false  "User ID (when auth is disabled)"
// @Param       activity   query     string  false  "Activity level"  Enums(sedentary,light,moderate,very_active,extra_active) default(sedentary)
// @Param       goal       query     number  false  "Weekly loss in lbs"  Enums(0,1,2) default(0)
// @Success     200        {object}  services.CalorieTarget
// @Failure     400        {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /metrics/calorie-target [get]
func (h *Handlers) CalorieTarget(c *gin.Context) {
	level, lbs, good := goalParams(c)
	if !good {
		return
	}
	t, err := h.goals.CalorieTarget(c.Request.Context(), userID(c), level, lbs)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}
