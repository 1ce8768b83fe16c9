// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned by ParseDate for anything that is not a real
// YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseDate validates s as a calendar date and returns it in canonical
// YYYY-MM-DD form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// Today returns the current UTC date in YYYY-MM-DD form.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// ParseFloat parses s as a finite float64; ok is false for blanks and
// malformed input.
func ParseFloat(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
