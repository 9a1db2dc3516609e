package service

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// CurrencyService converts amounts with a static rate table.
type CurrencyService struct {
	rates domain.RateTable
	log   zerolog.Logger
}

func NewCurrencyService(rates domain.RateTable, log zerolog.Logger) *CurrencyService {
	norm := make(domain.RateTable, len(rates))
	for from, row := range rates {
		from = strings.ToUpper(from)
		if norm[from] == nil {
			norm[from] = make(map[string]float64, len(row))
		}
		for to, r := range row {
			norm[from][strings.ToUpper(to)] = r
		}
	}
	return &CurrencyService{
		rates: norm,
		log:   log.With().Str("component", "currency").Logger(),
	}
}

// Convert returns amount expressed in to. A zero rate counts as missing;
// unknown pairs leave the amount unchanged.
func (s *CurrencyService) Convert(amount float64, from, to string) float64 {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount
	}

	if r, ok := s.rates[from][to]; ok && r != 0 {
		return amount * r
	}
	if r, ok := s.rates[to][from]; ok && r != 0 {
		return amount / r
	}

	s.log.Warn().Str("from", from).Str("to", to).Msg("no conversion rate, amount left unchanged")
	return amount
}

// Currencies lists every code that appears in the rate table.
func (s *CurrencyService) Currencies() []string {
	seen := make(map[string]struct{})
	for from, row := range s.rates {
		seen[from] = struct{}{}
		for to := range row {
			seen[to] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
