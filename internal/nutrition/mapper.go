package nutrition

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

type searchResponse struct {
	TotalHits int         `json:"totalHits"`
	Foods     []foodEntry `json:"foods"`
}

type foodEntry struct {
	FdcID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []foodNutrient `json:"foodNutrients"`
}

type foodNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

// Nutrient names selected from each result, with the FDC nutrient id used
// when a result carries only ids.
const (
	nutrientEnergy  = "Energy"
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFat     = "Total lipid (fat)"
)

var nutrientIDs = map[string]int{
	nutrientEnergy:  1008,
	nutrientProtein: 1003,
	nutrientCarbs:   1005,
	nutrientFat:     1004,
}

// mapFoods converts search results into catalog records, preserving order.
// Missing nutrients map to 0 and every record is per one serving.
func mapFoods(in []foodEntry) []domain.FoodItem {
	out := make([]domain.FoodItem, 0, len(in))
	for _, f := range in {
		out = append(out, domain.FoodItem{
			FoodID:      strconv.FormatInt(f.FdcID, 10),
			Name:        strings.TrimSpace(f.Description),
			ServingSize: 1,
			Calories:    nutrient(f.FoodNutrients, nutrientEnergy),
			Protein:     nutrient(f.FoodNutrients, nutrientProtein),
			Carbs:       nutrient(f.FoodNutrients, nutrientCarbs),
			Fat:         nutrient(f.FoodNutrients, nutrientFat),
		})
	}
	return out
}

// nutrient returns the value of the named nutrient. Energy is reported in
// both kcal and kJ by some data types; kcal wins.
func nutrient(ns []foodNutrient, name string) float64 {
	id := nutrientIDs[name]
	var (
		found bool
		val   float64
	)
	for _, n := range ns {
		if n.NutrientName != name && (n.NutrientName != "" || n.NutrientID != id) {
			continue
		}
		if name == nutrientEnergy && strings.EqualFold(n.UnitName, "kJ") {
			if !found {
				val = n.Value / 4.184
				found = true
			}
			continue
		}
		return n.Value
	}
	return val
}
