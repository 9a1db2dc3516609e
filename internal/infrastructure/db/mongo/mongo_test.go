package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func TestConfig_ClientOptions(t *testing.T) {
	opts := Config{URI: "mongodb://db:27017", AppName: "visa-assistant"}.clientOptions()

	require.NotNil(t, opts.ServerSelectionTimeout)
	require.Equal(t, defaultTimeout, *opts.ServerSelectionTimeout)
	require.NotNil(t, opts.AppName)
	require.Equal(t, "visa-assistant", *opts.AppName)
	require.Equal(t, readpref.PrimaryMode, opts.ReadPreference.Mode())
	require.Equal(t, []string{"db:27017"}, opts.Hosts)

	opts = Config{URI: "mongodb://db:27017", Timeout: time.Second}.clientOptions()
	require.Equal(t, time.Second, *opts.ServerSelectionTimeout)
	require.Nil(t, opts.AppName)
}

func TestOpen_RequiresDatabase(t *testing.T) {
	_, err := Open(context.Background(), Config{URI: "mongodb://db:27017"})
	require.ErrorContains(t, err, "database name is required")
}

func TestDocumentRepository_CloseWithoutOpen(t *testing.T) {
	require.NoError(t, (&DocumentRepository{}).Close(context.Background()))
}
