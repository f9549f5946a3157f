package common

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Epsilon is the tolerance used by AlmostZero.
const Epsilon = 1e-6

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

func Lerp[T constraints.Float](a, b, t T) T {
	return a + t*(b-a)
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func AlmostZero[T constraints.Float](v T) bool {
	return math.Abs(float64(v)) <= Epsilon
}

// ModPositive returns v mod d in [0, d) for d > 0.
func ModPositive[T constraints.Float](v, d T) T {
	r := T(math.Mod(float64(v), float64(d)))
	if r < 0 {
		r += d
		// -tiny + d rounds to d.
		if r >= d {
			r = 0
		}
	}
	return r
}

// ModPositiveInt returns v mod d in [0, d) for d > 0.
func ModPositiveInt[T constraints.Integer](v, d T) T {
	r := v % d
	if r < 0 {
		r += d
	}
	return r
}

// AvoidNegOrZero returns |v|, or Epsilon when v is almost zero.
func AvoidNegOrZero[T constraints.Float](v T) T {
	if AlmostZero(v) {
		return Epsilon
	}
	return T(math.Abs(float64(v)))
}
