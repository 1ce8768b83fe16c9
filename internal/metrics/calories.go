package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CaloriesPerPound is the energy content of one pound of body fat.
const CaloriesPerPound = 3500.0

// KgPerPound converts pounds to kilograms.
const KgPerPound = 0.453592

var (
	ErrUnknownActivity = errors.New("unknown activity level")
	ErrUnknownGoal     = errors.New("unknown weekly goal")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// ActivityLevel names one of the fixed activity multipliers.
type ActivityLevel string

const (
	Sedentary   ActivityLevel = "sedentary"
	Light       ActivityLevel = "light"
	Moderate    ActivityLevel = "moderate"
	VeryActive  ActivityLevel = "very_active"
	ExtraActive ActivityLevel = "extra_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:   1.2,
	Light:       1.375,
	Moderate:    1.55,
	VeryActive:  1.725,
	ExtraActive: 1.9,
}

// Multiplier returns the TDEE multiplier for a, or 0 for an unknown level.
func (a ActivityLevel) Multiplier() float64 { return activityMultipliers[a] }

// ParseActivity accepts a level key (case-insensitive, spaces or dashes
// allowed in place of underscores). An empty string means sedentary.
func ParseActivity(s string) (ActivityLevel, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)
	if k == "" {
		return Sedentary, nil
	}
	a := ActivityLevel(k)
	if _, ok := activityMultipliers[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivity, s)
	}
	return a, nil
}

// IsValidMultiplier reports whether m is one of the enumerated multipliers.
func IsValidMultiplier(m float64) bool {
	for _, v := range activityMultipliers {
		if math.Abs(v-m) < 1e-9 {
			return true
		}
	}
	return false
}

// weeklyGoals are the supported weight-loss paces in pounds per week.
var weeklyGoals = []float64{0, 1, 2}

// ParseWeeklyGoal parses a weekly loss goal in pounds. An empty string means
// maintenance (0).
func ParseWeeklyGoal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGoal, s)
	}
	for _, g := range weeklyGoals {
		if v == g {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGoal, s)
}

// Profile carries the body data the calorie computation needs.
type Profile struct {
	WeightKg float64
	HeightCm float64
	Age      int
	Gender   string
}

// IsMale reports whether gender selects the male coefficient set. Any other
// value, including empty, uses the non-male set.
func IsMale(gender string) bool {
	return strings.EqualFold(strings.TrimSpace(gender), "male")
}

// BMR returns the Harris-Benedict basal metabolic rate in kcal/day.
func BMR(p Profile) float64 {
	w, h, a := p.WeightKg, p.HeightCm, float64(p.Age)
	if IsMale(p.Gender) {
		return 88.36 + 13.4*w + 4.8*h - 5.7*a
	}
	return 447.6 + 9.2*w + 3.1*h - 4.3*a
}

// DailyCalorieTarget returns BMR x multiplier minus the daily deficit for
// weeklyChangeLbs (lbs x 3500 / 7), floored at 0 and truncated.
func DailyCalorieTarget(p Profile, multiplier, weeklyChangeLbs float64) (int, error) {
	if !positive(p.WeightKg) || !positive(p.HeightCm) || p.Age < 0 {
		return 0, ErrInvalidProfile
	}
	if !IsValidMultiplier(multiplier) {
		return 0, fmt.Errorf("%w: multiplier %v", ErrUnknownActivity, multiplier)
	}
	if math.IsNaN(weeklyChangeLbs) || math.IsInf(weeklyChangeLbs, 0) {
		return 0, fmt.Errorf("%w: %v", ErrUnknownGoal, weeklyChangeLbs)
	}
	maintenance := BMR(p) * multiplier
	target := maintenance - weeklyChangeLbs*CaloriesPerPound/7
	if target < 0 {
		target = 0
	}
	return int(target), nil
}

// CalorieTarget is DailyCalorieTarget keyed by activity level.
func CalorieTarget(p Profile, level ActivityLevel, weeklyChangeLbs float64) (int, error) {
	m := level.Multiplier()
	if m == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivity, level)
	}
	return DailyCalorieTarget(p, m, weeklyChangeLbs)
}

// PoundsToKg converts lb to kg.
func PoundsToKg(lb float64) float64 { return lb * KgPerPound }

// KgToPounds converts kg to lb.
func KgToPounds(kg float64) float64 { return kg / KgPerPound }
