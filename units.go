package recorder

import "math"

// Unit conversions applied by the sampler. Each function documents its
// input and output units and is independently testable.

// MetersPerSecondToKPH converts a speed in m/s to km/h.
func MetersPerSecondToKPH(v float64) float64 {
	return v * 3.6
}

// MetersPerSecondSquaredToG converts an acceleration in m/s² to g.
func MetersPerSecondSquaredToG(a float64) float64 {
	return a * 0.101971621
}

// RangeToPercent converts a 0-1 ratio to a percentage.
func RangeToPercent(x float64) float64 {
	return 100 * x
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(x float64) float64 {
	return x * 180 / math.Pi
}

// SecondsToMilliseconds converts a duration in seconds to milliseconds.
func SecondsToMilliseconds(x float64) float64 {
	return x * 1000
}

// BoolToFloat maps a flag to 1 or 0 for storage in a channel.
func BoolToFloat(b bool) float32 {
	if b {
		return 1
	}

	return 0
}
