package domain

import "strings"

// MealType is the meal a food log belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meals lists the meal types in display order.
var Meals = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType normalizes s and reports whether it names a known meal.
func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return m, true
	}
	return "", false
}

// Rank returns the display position of m (0 for breakfast); unknown meals
// sort last.
func (m MealType) Rank() int {
	for i, v := range Meals {
		if v == m {
			return i
		}
	}
	return len(Meals)
}

// Macros holds the four tracked macronutrient amounts.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Scale multiplies every field by q.
func (m Macros) Scale(q float64) Macros {
	return Macros{
		Calories: m.Calories * q,
		Protein:  m.Protein * q,
		Carbs:    m.Carbs * q,
		Fat:      m.Fat * q,
	}
}

// Macros returns the per-serving nutrient values of f.
func (f FoodItem) Macros() Macros {
	return Macros{Calories: f.Calories, Protein: f.Protein, Carbs: f.Carbs, Fat: f.Fat}
}

// FoodLogEntry is a food log joined with its food's nutrient values. Totals
// are the per-serving values scaled by Quantity.
type FoodLogEntry struct {
	LogID    uint64   `json:"log_id"`
	FoodID   string   `json:"food_id"`
	Name     string   `json:"name"`
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
	Quantity float64  `json:"quantity"`
	PerUnit  Macros   `json:"per_unit"`
	Totals   Macros   `json:"totals"`
}

// FoodLogKey is the natural key of a FoodLog.
type FoodLogKey struct {
	UserID   string
	FoodID   string
	Date     string
	MealType MealType
}
