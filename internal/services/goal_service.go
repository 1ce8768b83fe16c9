package services

import (
	"context"
	"errors"

	"github.com/tbourn/go-nutrition-backend/internal/metrics"
)

// DefaultCalorieTarget is served when no profile exists for the user.
const DefaultCalorieTarget = 2000

// CalorieTarget is a computed daily calorie budget. Fallback is true when the
// user was unknown and Calories is the configured default.
type CalorieTarget struct {
	Calories      int                   `json:"calories"`
	Activity      metrics.ActivityLevel `json:"activity"`
	WeeklyGoalLbs float64               `json:"weekly_goal_lbs"`
	BMR           float64               `json:"bmr,omitempty"`
	Fallback      bool                  `json:"fallback"`
}

// GoalService computes calorie targets from user profiles.
type GoalService struct {
	Users         *UserService
	DefaultTarget int
}

// CalorieTarget returns the daily budget for userID at the given activity
// level and weekly loss goal. A user that does not exist gets the default
// target instead of an error.
func (s *GoalService) CalorieTarget(ctx context.Context, userID string, level metrics.ActivityLevel, weeklyLbs float64) (*CalorieTarget, error) {
	if level == "" {
		level = metrics.Sedentary
	}
	if level.Multiplier() == 0 {
		return nil, invalid("activity", "unknown activity level")
	}

	out := &CalorieTarget{Activity: level, WeeklyGoalLbs: weeklyLbs}
	p, err := s.Users.Profile(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		out.Calories = s.defaultTarget()
		out.Fallback = true
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	kcal, err := metrics.CalorieTarget(p, level, weeklyLbs)
	if err != nil {
		return nil, invalid("goal", err.Error())
	}
	out.Calories = kcal
	out.BMR = metrics.BMR(p)
	return out, nil
}

func (s *GoalService) defaultTarget() int {
	if s.DefaultTarget > 0 {
		return s.DefaultTarget
	}
	return DefaultCalorieTarget
}
