// Package fixtures loads the JSON data bundled with the binary. It stands in
// for the backend's tables whenever the backend cannot be reached.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/visago/visa-assistant/internal/core/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// fixtureUser mirrors the on-disk shape; password is plaintext in the file
// and hashed on load.
type fixtureUser struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Role        string            `json:"role"`
	Avatar      string            `json:"avatar"`
	Preferences map[string]string `json:"preferences"`
}

// Store is the read-only fixture data set.
type Store struct {
	users     []domain.User
	countries []domain.Country
	byCode    map[string]int
	rates     domain.RateTable
}

// Load parses every bundled fixture. cost is the bcrypt cost used for the
// fixture passwords; values below bcrypt.MinCost are raised to it.
func Load(cost int) (*Store, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}

	s := &Store{byCode: make(map[string]int)}

	for _, name := range []string{"data/users.json", "data/admins.json"} {
		var raw []fixtureUser
		if err := decode(name, &raw); err != nil {
			return nil, err
		}
		for _, fu := range raw {
			hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("fixtures: hash password for %s: %w", fu.ID, err)
			}
			s.users = append(s.users, domain.User{
				ID:           fu.ID,
				Name:         fu.Name,
				Email:        strings.ToLower(fu.Email),
				PasswordHash: string(hash),
				Role:         fu.Role,
				Avatar:       fu.Avatar,
				Preferences:  fu.Preferences,
			})
		}
	}

	if err := decode("data/countries.json", &s.countries); err != nil {
		return nil, err
	}
	for i := range s.countries {
		s.countries[i].Code = strings.ToUpper(s.countries[i].Code)
	}
	sort.SliceStable(s.countries, func(i, j int) bool { return s.countries[i].Name < s.countries[j].Name })
	for i := range s.countries {
		s.byCode[s.countries[i].Code] = i
	}

	var rates map[string]map[string]float64
	if err := decode("data/currency_rates.json", &rates); err != nil {
		return nil, err
	}
	s.rates = make(domain.RateTable, len(rates))
	for base, quotes := range rates {
		up := make(map[string]float64, len(quotes))
		for quote, rate := range quotes {
			up[strings.ToUpper(quote)] = rate
		}
		s.rates[strings.ToUpper(base)] = up
	}

	return s, nil
}

func decode(name string, v any) error {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("fixtures: read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("fixtures: decode %s: %w", name, err)
	}
	return nil
}

// Authenticate looks up a fixture user or admin by email and checks the
// password. It returns domain.ErrInvalidCredentials for an unknown email as
// well as for a wrong password.
func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range s.users {
		u := &s.users[i]
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		return u.Public(), nil
	}
	return nil, domain.ErrInvalidCredentials
}

// Users returns public copies of every fixture account.
func (s *Store) Users() []domain.User {
	out := make([]domain.User, len(s.users))
	for i := range s.users {
		out[i] = *s.users[i].Public()
	}
	return out
}

// Countries returns the countries sorted by name.
func (s *Store) Countries() []domain.Country {
	out := make([]domain.Country, len(s.countries))
	copy(out, s.countries)
	return out
}

// Country returns the country with the given code, case-insensitive.
func (s *Store) Country(code string) (*domain.Country, error) {
	i, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, domain.ErrCountryNotFound
	}
	c := s.countries[i]
	return &c, nil
}

// Rates returns the static currency rate table.
func (s *Store) Rates() domain.RateTable {
	return s.rates
}
