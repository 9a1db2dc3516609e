package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// CountryFilter narrows a country listing. Empty fields match everything.
type CountryFilter struct {
	Query  string // case-insensitive substring of name or code
	Region string // exact region, case-insensitive
}

type CountryService interface {
	List(ctx context.Context, filter CountryFilter) ([]domain.Country, error)
	Get(ctx context.Context, code string) (*domain.Country, error)
}
