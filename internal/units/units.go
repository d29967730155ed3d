// Package units converts (quantity, unit) pairs into canonical units:
// kilograms for mass, liters for volume. Count units and anything
// unrecognized pass through unchanged; permissiveness here is intentional,
// validation happens at the engine boundary, not per unit.
package units

import (
	"strings"

	"menu-profit-engine/internal/constants"
)

// Canonical unit names.
const (
	Kilogram = "kg"
	Liter    = "L"
)

// Normalize converts a quantity to its canonical unit. Pure and total:
// unknown units are returned as-is with the quantity untouched.
func Normalize(quantity float64, unit string) (float64, string) {
	switch strings.TrimSpace(strings.ToLower(unit)) {
	case "g", "gr", "gram", "grams", "gramme", "grammes":
		return quantity / constants.GramsPerKilogram, Kilogram
	case "kg", "kilo", "kilos", "kilogram", "kilograms":
		return quantity, Kilogram
	case "ml", "milliliter", "milliliters", "millilitre", "millilitres":
		return quantity / constants.MillilitersPerLiter, Liter
	case "cl":
		return quantity / 100, Liter
	case "l", "liter", "liters", "litre", "litres":
		return quantity, Liter
	default:
		// piece, bottle, bunch, dozen, ... and unknown units: identity.
		return quantity, unit
	}
}
