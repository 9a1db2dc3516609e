package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/fixtures"
	"github.com/visago/visa-assistant/internal/infrastructure/backend"
)

func newCountries(t *testing.T, b *stubBackend) *CountryService {
	t.Helper()
	fx, err := fixtures.Load(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	return NewCountryService(newRemote(b, nil), fx)
}

func TestCountryService_List_Offline(t *testing.T) {
	svc := newCountries(t, &stubBackend{online: false})

	all, err := svc.List(context.Background(), ports.CountryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 fixture countries, got %d", len(all))
	}

	got, err := svc.List(context.Background(), ports.CountryFilter{Query: "jap"})
	if err != nil || len(got) != 1 || got[0].Code != "JP" {
		t.Fatalf("query filter: %+v %v", got, err)
	}

	got, err = svc.List(context.Background(), ports.CountryFilter{Query: "ma"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range got {
		if c.Code == "FR" {
			t.Fatalf("France should not match %q", "ma")
		}
	}
}

func TestCountryService_List_Online(t *testing.T) {
	b := &stubBackend{online: true, respond: func(method, path string, _ any) (any, error) {
		if path != "/countries" {
			t.Fatalf("unexpected path %s", path)
		}
		return []domain.Country{
			{Code: "DE", Name: "Germany", Region: "Europe"},
			{Code: "BR", Name: "Brazil", Region: "Americas"},
		}, nil
	}}
	svc := newCountries(t, b)

	got, err := svc.List(context.Background(), ports.CountryFilter{Region: "europe"})
	if err != nil || len(got) != 1 || got[0].Code != "DE" {
		t.Fatalf("unexpected countries: %+v %v", got, err)
	}
}

func TestCountryService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("offline fixture", func(t *testing.T) {
		svc := newCountries(t, &stubBackend{online: false})
		c, err := svc.Get(ctx, "ma")
		if err != nil || c.Code != "MA" {
			t.Fatalf("get: %+v %v", c, err)
		}
		if _, err := svc.Get(ctx, "zz"); !errors.Is(err, domain.ErrCountryNotFound) {
			t.Fatalf("expected country not found, got %v", err)
		}
	})

	t.Run("backend 404", func(t *testing.T) {
		b := &stubBackend{online: true, respond: func(string, string, any) (any, error) {
			return nil, &backend.APIError{Status: http.StatusNotFound, Message: "nope"}
		}}
		svc := newCountries(t, b)
		if _, err := svc.Get(ctx, "FR"); !errors.Is(err, domain.ErrCountryNotFound) {
			t.Fatalf("expected country not found, got %v", err)
		}
	})
}
