package catalog

import "github.com/noah-isme/motiondevis/internal/currency"

// Settings is the operator's pricing configuration. It is replaced
// atomically on save and persisted alongside the quotes.
type Settings struct {
	RateHour      float64            `json:"rateHour"`
	RateDay       float64            `json:"rateDay"`
	HoursPerDay   float64            `json:"hoursPerDay"`
	VAT           float64            `json:"vat"`
	Currency      string             `json:"currency"`
	ExchangeRate  float64            `json:"exchangeRate"`
	DefaultNotes  string             `json:"defaultNotes"`
	CatalogPrices map[string]float64 `json:"catalogPrices,omitempty"`
}

// DefaultSettings mirrors the studio defaults of the original tool.
func DefaultSettings() Settings {
	return Settings{
		RateHour:     75,
		RateDay:      450,
		HoursPerDay:  7,
		VAT:          20,
		Currency:     currency.EUR,
		ExchangeRate: 4500,
	}
}

// Normalize repairs fields that would make downstream math unsafe.
func (s *Settings) Normalize() {
	if s.Currency == "" {
		s.Currency = currency.EUR
	}
	if s.ExchangeRate <= 0 {
		s.ExchangeRate = 1
	}
}

// EffectivePrice resolves the unit price for a catalogue title: the
// operator override when present, else the built-in catalogue price, else 0.
// Titles match exactly.
func (s Settings) EffectivePrice(title string) float64 {
	if price, ok := s.CatalogPrices[title]; ok {
		return price
	}
	if entry, ok := Lookup(title); ok {
		return entry.UnitPrice
	}
	return 0
}

// Convert scales every monetary field with the provided factor. Zero or
// negative persisted overrides are replaced by 1 before scaling.
func (s *Settings) Convert(factor float64) {
	s.RateHour = currency.Convert(s.RateHour, factor)
	s.RateDay = currency.Convert(s.RateDay, factor)
	for title, price := range s.CatalogPrices {
		s.CatalogPrices[title] = currency.ConvertPrice(price, factor)
	}
}
