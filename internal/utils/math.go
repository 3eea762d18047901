package utils

import (
	"errors"
	"math"
	"math/rand"
)

// ErrOverflow is returned when an integer product does not fit in int64
var ErrOverflow = errors.New("integer overflow")

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// MulInt64 multiplies two non-negative values, reporting overflow instead of wrapping
func MulInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errors.New("negative operand")
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt64/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}
