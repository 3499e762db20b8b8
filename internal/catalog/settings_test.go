package catalog

import "testing"

func TestEffectivePrice(t *testing.T) {
	s := DefaultSettings()
	if got := s.EffectivePrice("Storyboard"); got != 450 {
		t.Fatalf("catalogue default: expected 450, got %v", got)
	}

	s.CatalogPrices = map[string]float64{"Storyboard": 500}
	if got := s.EffectivePrice("Storyboard"); got != 500 {
		t.Fatalf("override: expected 500, got %v", got)
	}

	// Titles match exactly, no normalisation.
	if got := s.EffectivePrice("storyboard"); got != 0 {
		t.Fatalf("unknown title: expected 0, got %v", got)
	}
}

func TestSettingsConvert(t *testing.T) {
	s := DefaultSettings()
	s.CatalogPrices = map[string]float64{"Storyboard": 500, "Voix off": 0}
	s.Convert(4500)

	if s.RateHour != 75*4500 {
		t.Fatalf("rateHour: expected %v, got %v", 75*4500, s.RateHour)
	}
	if s.RateDay != 450*4500 {
		t.Fatalf("rateDay: expected %v, got %v", 450*4500, s.RateDay)
	}
	if s.CatalogPrices["Storyboard"] != 500*4500 {
		t.Fatalf("override: expected %v, got %v", 500*4500, s.CatalogPrices["Storyboard"])
	}
	// A corrupt zero override converts as if it were 1.
	if s.CatalogPrices["Voix off"] != 4500 {
		t.Fatalf("zero override: expected 4500, got %v", s.CatalogPrices["Voix off"])
	}
}

func TestNormalize(t *testing.T) {
	s := Settings{ExchangeRate: -2}
	s.Normalize()
	if s.ExchangeRate != 1 {
		t.Fatalf("expected exchange rate clamped to 1, got %v", s.ExchangeRate)
	}
	if s.Currency == "" {
		t.Fatal("expected a default currency")
	}
}

func TestCatalogueIsCopied(t *testing.T) {
	list := Entries()
	if len(list) != 10 {
		t.Fatalf("expected 10 services, got %d", len(list))
	}
	list[0].UnitPrice = 1
	if again := Entries(); again[0].UnitPrice == 1 {
		t.Fatal("Entries must not expose the backing slice")
	}
}
