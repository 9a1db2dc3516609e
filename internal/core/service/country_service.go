package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/core/ports"
)

// CountryCatalog is the bundled country data.
type CountryCatalog interface {
	Countries() []domain.Country
	Country(code string) (*domain.Country, error)
}

type CountryService struct {
	backend ports.Backend
	runner  *fallback.Runner
	catalog CountryCatalog
}

func NewCountryService(remote Remote, catalog CountryCatalog) *CountryService {
	return &CountryService{
		backend: remote.Backend,
		runner:  remote.runner("countries"),
		catalog: catalog,
	}
}

// List returns every country matching filter, from the backend when it is
// reachable and from the bundled catalogue otherwise.
func (s *CountryService) List(ctx context.Context, filter ports.CountryFilter) ([]domain.Country, error) {
	countries, err := fallback.Run(ctx, s.runner, "list",
		func(ctx context.Context) ([]domain.Country, error) {
			var out []domain.Country
			if err := s.backend.Do(ctx, http.MethodGet, "/countries", "", nil, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		func(context.Context) ([]domain.Country, error) {
			return s.catalog.Countries(), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return filterCountries(countries, filter), nil
}

func (s *CountryService) Get(ctx context.Context, code string) (*domain.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrCountryNotFound
	}

	return fallback.Run(ctx, s.runner, "get",
		func(ctx context.Context) (*domain.Country, error) {
			var out domain.Country
			if err := s.backend.Do(ctx, http.MethodGet, "/countries/"+url.PathEscape(code), "", nil, &out); err != nil {
				return nil, remap(err, domain.ErrNotFound, domain.ErrCountryNotFound)
			}
			return &out, nil
		},
		func(context.Context) (*domain.Country, error) {
			return s.catalog.Country(code)
		},
	)
}

func filterCountries(in []domain.Country, f ports.CountryFilter) []domain.Country {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	region := strings.TrimSpace(f.Region)

	out := make([]domain.Country, 0, len(in))
	for _, c := range in {
		if region != "" && !strings.EqualFold(c.Region, region) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Code), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}
