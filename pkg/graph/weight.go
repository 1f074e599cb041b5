package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidWeight reports whether w is usable as a road weight.
func ValidWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// ParseWeight parses user input into a road weight.
func ParseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse weight %q: %w", s, ErrInvalidWeight)
	}
	if !ValidWeight(w) {
		return 0, fmt.Errorf("weight %q: %w", s, ErrInvalidWeight)
	}
	return w, nil
}

// FormatWeight renders whole weights without a fractional part.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
