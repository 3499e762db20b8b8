package currency

import "testing"

func TestFactor(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		rate     float64
		want     float64
	}{
		{"same currency", EUR, EUR, 4500, 1},
		{"eur to mga", EUR, MGA, 4500, 4500},
		{"mga to eur", MGA, EUR, 4500, 1.0 / 4500},
		{"non positive rate clamped", EUR, MGA, -3, 1},
		{"zero rate clamped", MGA, EUR, 0, 1},
		{"unknown pair is a no-op", "USD", MGA, 4500, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Factor(tc.from, tc.to, tc.rate); got != tc.want {
				t.Fatalf("Factor(%q, %q, %v) = %v, want %v", tc.from, tc.to, tc.rate, got, tc.want)
			}
		})
	}
}

func TestConvertRounds(t *testing.T) {
	if got := Convert(100, 4500); got != 450000 {
		t.Fatalf("expected 450000, got %v", got)
	}
	if got := Convert(450000, 1.0/4500); got != 100 {
		t.Fatalf("round trip: expected 100, got %v", got)
	}
	if got := Convert(0.4, 1); got != 0 {
		t.Fatalf("expected rounding to nearest unit, got %v", got)
	}
}

func TestConvertPriceFallback(t *testing.T) {
	if got := ConvertPrice(0, 4500); got != 4500 {
		t.Fatalf("zero price must fall back to 1 before scaling, got %v", got)
	}
	if got := ConvertPrice(-20, 2); got != 2 {
		t.Fatalf("negative price must fall back to 1 before scaling, got %v", got)
	}
	if got := ConvertPrice(100, 4500); got != 450000 {
		t.Fatalf("expected 450000, got %v", got)
	}
}
