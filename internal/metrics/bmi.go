// Package metrics derives body metrics from profile data: BMI with its
// category bands, Harris-Benedict BMR, and a daily calorie target adjusted
// for activity and a weekly weight-change goal. Everything here is pure.
package metrics

import (
	"errors"
	"math"
)

// DefaultHeightCm is the height used when a user has not recorded one.
const DefaultHeightCm = 175.0

// ErrInvalidBody is returned for non-positive or non-finite weight/height.
var ErrInvalidBody = errors.New("weight and height must be positive")

// BMICategory is a BMI classification band.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// BMI returns weightKg / (heightCm/100)^2.
func BMI(weightKg, heightCm float64) (float64, error) {
	if !positive(weightKg) || !positive(heightCm) {
		return 0, ErrInvalidBody
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMIOrFallback computes BMI using DefaultHeightCm when heightCm is not
// positive.
func BMIOrFallback(weightKg, heightCm float64) (float64, error) {
	if !positive(heightCm) {
		heightCm = DefaultHeightCm
	}
	return BMI(weightKg, heightCm)
}

// Category classifies bmi into half-open bands, lower bound inclusive:
// [0,18.5) Underweight, [18.5,25) Normal, [25,30) Overweight, [30,inf) Obese.
func Category(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
