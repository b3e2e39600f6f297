package types

import "math"

// Float is implemented by the IEEE-754 floating point types that can be used
// as the scalar type of the geometry primitives.
type Float interface {
	~float32 | ~float64
}

// Epsilon returns the tolerance used for approximate comparisons of values of
// type T. Single precision types get a coarser tolerance than double
// precision ones.
func Epsilon[T Float]() T {
	// 1e-10 is lost when added to 1 in single precision.
	if T(1)+T(1e-10) == T(1) {
		return T(1e-5)
	}
	return T(1e-9)
}

// Inf returns positive infinity for T.
func Inf[T Float]() T {
	return T(math.Inf(1))
}

// Abs returns the absolute value of v.
func Abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Sqrt returns the square root of v.
func Sqrt[T Float](v T) T {
	return T(math.Sqrt(float64(v)))
}
