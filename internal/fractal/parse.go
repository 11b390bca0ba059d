package fractal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseBounds parses "reMin reMax imMin imMax". Values may be separated by
// spaces and/or commas and optionally wrapped in [] or ().
func ParseBounds(s string) (PlaneBounds, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PlaneBounds{}, errors.New("bounds: empty")
	}
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSuffix(s, ")")

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(parts) != 4 {
		return PlaneBounds{}, fmt.Errorf("bounds: want 4 values (reMin reMax imMin imMax), got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return PlaneBounds{}, fmt.Errorf("bounds: value %d %q: %w", i+1, p, err)
		}
		v[i] = f
	}
	b := PlaneBounds{ReMin: v[0], ReMax: v[1], ImMin: v[2], ImMax: v[3]}
	if !b.Valid() {
		return PlaneBounds{}, fmt.Errorf("bounds: %s: %w", b, ErrInvalidBounds)
	}
	return b, nil
}
