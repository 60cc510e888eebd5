package core

import "math"

// Epsilon is the float32 machine epsilon (the gap between 1 and the next float32).
const Epsilon float32 = 1.1920929e-07

// Sqrt returns the square root of x in single precision
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Tan returns the tangent of the radian argument x
func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Abs returns the absolute value of x
func Abs(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}

// Radians converts degrees to radians
func Radians(degrees float32) float32 {
	return degrees * (math.Pi / 180)
}

// IsFinite reports whether x is neither NaN nor an infinity
func IsFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
