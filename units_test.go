package recorder

import (
	"math"
	"testing"
)

func TestUnitConversions(t *testing.T) {
	cases := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"m/s to km/h", MetersPerSecondToKPH(10), 36},
		{"zero speed", MetersPerSecondToKPH(0), 0},
		{"m/s² to g", MetersPerSecondSquaredToG(9.80665), 0.9999999325261565},
		{"ratio to percent", RangeToPercent(0.42), 42},
		{"negative ratio to percent", RangeToPercent(-0.5), -50},
		{"radians to degrees", RadiansToDegrees(math.Pi), 180},
		{"half pi to degrees", RadiansToDegrees(math.Pi / 2), 90},
		{"seconds to milliseconds", SecondsToMilliseconds(1.5), 1500},
	}

	for _, c := range cases {
		if math.Abs(c.actual-c.expected) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", c.name, c.expected, c.actual)
		}
	}
}

func TestBoolToFloat(t *testing.T) {
	if BoolToFloat(true) != 1 {
		t.Error("expected true to map to 1")
	}

	if BoolToFloat(false) != 0 {
		t.Error("expected false to map to 0")
	}
}
