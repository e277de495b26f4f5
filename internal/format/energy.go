package format

import "math"

// RER returns the resting energy requirement in kcal/day for a body weight
// in kilograms: 70 * kg^0.75.
func RER(weightKg float64) float64 {
	if weightKg <= 0 {
		return 0
	}
	return 70 * math.Pow(weightKg, 0.75)
}

// MER returns the maintenance energy requirement in kcal/day: the animal's
// RER scaled by a life-stage factor (neutered adult ~1.6, puppy up to 3.0).
func MER(weightKg, factor float64) float64 {
	if factor <= 0 {
		factor = 1.6
	}
	return factor * RER(weightKg)
}
