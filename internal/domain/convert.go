package domain

import "math"

const (
	feetPerMetre = 3.28084
	mphPerMps    = 2.237
)

// MetersToFeet converts a length in metres to feet.
func MetersToFeet(m float64) float64 { return m * feetPerMetre }

// CelsiusToFahrenheit converts a temperature in degrees Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// MpsToMph converts a speed in metres per second to miles per hour.
func MpsToMph(v float64) float64 { return v * mphPerMps }

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// convert applies fn to a present value and rounds the result. Absent stays absent.
func convert(v *float64, fn func(float64) float64, places int) *float64 {
	if v == nil {
		return nil
	}
	out := Round(fn(*v), places)
	return &out
}
