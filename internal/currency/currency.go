// Package currency holds the bilateral EUR/MGA conversion math used when
// the operating currency changes. Every monetary field in the application is
// converted with one factor computed up front, so all entities stay
// consistent even if the rate setting changes afterwards.
package currency

import "math"

// Symbols of the supported currency pair.
const (
	EUR = "€"
	MGA = "MGA"
)

// Factor returns the multiplier that converts amounts from one currency to
// the other. Identical or unrecognized pairs convert with a factor of 1, a
// deliberate no-op rather than an error. A non-positive rate is clamped to 1
// to keep the math safe against corrupted settings.
func Factor(from, to string, rate float64) float64 {
	if from == to {
		return 1
	}
	if rate <= 0 {
		rate = 1
	}
	switch {
	case from == EUR && to == MGA:
		return rate
	case from == MGA && to == EUR:
		return 1 / rate
	default:
		return 1
	}
}

// Convert scales an amount and rounds it to the nearest integer currency
// unit, matching how converted prices are stored.
func Convert(amount, factor float64) float64 {
	return math.Round(amount * factor)
}

// ConvertPrice behaves like Convert but substitutes 1 for a zero or
// negative persisted price before scaling.
func ConvertPrice(price, factor float64) float64 {
	if price <= 0 {
		price = 1
	}
	return Convert(price, factor)
}
