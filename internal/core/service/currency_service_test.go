package service

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
)

func TestCurrencyService_Convert(t *testing.T) {
	svc := NewCurrencyService(domain.RateTable{
		"eur": {"usd": 1.1, "mad": 10.9, "gbp": 1.25},
		"USD": {"CAD": 1.35, "ZZZ": 0},
		"GBP": {"EUR": 0},
	}, zerolog.Nop())

	tests := []struct {
		name     string
		amount   float64
		from, to string
		want     float64
	}{
		{"identity", 42, "EUR", "EUR", 42},
		{"identity unknown code", 7, "XYZ", "xyz", 7},
		{"direct", 100, "EUR", "USD", 110},
		{"case insensitive", 100, "eur", "Mad", 1090},
		{"inverse", 110, "USD", "EUR", 100},
		{"zero rate inverse skipped", 5, "ZZZ", "USD", 5},
		{"zero rate direct skipped", 5, "USD", "ZZZ", 5},
		{"zero direct falls back to inverse", 125, "GBP", "EUR", 100},
		{"missing pair", 50, "CAD", "MAD", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Convert(tt.amount, tt.from, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Convert(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCurrencyService_Currencies(t *testing.T) {
	svc := NewCurrencyService(domain.RateTable{"EUR": {"USD": 1.1}, "USD": {"CAD": 1.3}}, zerolog.Nop())

	got := svc.Currencies()
	want := []string{"CAD", "EUR", "USD"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
