package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visago/visa-assistant/internal/core/domain"
)

func loadStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(0)
	require.NoError(t, err)
	return s
}

func TestLoad_AllFixtures(t *testing.T) {
	s := loadStore(t)

	require.Len(t, s.Users(), 4)
	require.NotEmpty(t, s.Countries())
	require.Contains(t, s.Rates(), "EUR")

	for _, u := range s.Users() {
		require.Empty(t, u.PasswordHash, "public copies must not carry hashes")
	}
}

func TestAuthenticate(t *testing.T) {
	s := loadStore(t)

	u, err := s.Authenticate("Amina@Example.com", "voyage2024")
	require.NoError(t, err)
	require.Equal(t, "u-1001", u.ID)
	require.Equal(t, domain.RoleUser, u.Role)

	admin, err := s.Authenticate("admin@visago.example", "admin-secret")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())

	_, err = s.Authenticate("amina@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.Authenticate("nobody@example.com", "voyage2024")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCountry(t *testing.T) {
	s := loadStore(t)

	c, err := s.Country("fr")
	require.NoError(t, err)
	require.Equal(t, "France", c.Name)

	_, err = s.Country("ZZ")
	require.ErrorIs(t, err, domain.ErrCountryNotFound)

	countries := s.Countries()
	for i := 1; i < len(countries); i++ {
		require.LessOrEqual(t, countries[i-1].Name, countries[i].Name)
	}
}
