package core

import "math"

// UnitNormTolerance bounds how far a normalized vector's length may drift from 1.
const UnitNormTolerance = 1e-4

// NormalizeVector returns a unit-length copy of v. Zero vectors come back as zeros.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	magnitude := Norm(v)

	// Can't normalize zero vector
	if magnitude == 0 {
		return make([]float32, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}

// Norm is the Euclidean length of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

// IsUnitNorm reports whether v has length 1 within UnitNormTolerance.
func IsUnitNorm(v []float32) bool {
	return math.Abs(Norm(v)-1) <= UnitNormTolerance
}

// Dot calculates the inner product over the shared prefix of a and b.
func Dot(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
