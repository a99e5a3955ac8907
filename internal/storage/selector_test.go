package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayaandrob/invite-api/internal/config"
)

func TestSelectorDefaultsToFileBackend(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.DataFile = t.TempDir() + "/rsvps.json"

	s := NewSelector(cfg, zerolog.Nop())
	store, err := s.Store(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
}

func TestSelectorSQLiteDriver(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.DataDriver = "sqlite"
	cfg.SQLitePath = ":memory:"

	s := NewSelector(cfg, zerolog.Nop())
	store, err := s.Store(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)

	// The instance is reused across requests.
	again, err := s.Store(context.Background())
	require.NoError(t, err)
	assert.Same(t, store, again)
}

func TestSelectorDoesNotCacheFailedHostedConstruction(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.DataFile = t.TempDir() + "/rsvps.json"
	s := NewSelector(cfg, zerolog.Nop())

	// A malformed URL fails construction before any connection attempt.
	t.Setenv("DATABASE_URL", "://not-a-url")
	t.Setenv("DATABASE_SERVICE_KEY", "service-role-key")
	_, err := s.Store(context.Background())
	require.Error(t, err)

	// The failure must not stick: with the credentials removed, the next
	// request re-evaluates the configuration and falls back to the file
	// backend instead of replaying the stale error.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_SERVICE_KEY", "")
	store, err := s.Store(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	// And re-configuring hosted credentials re-reads them and retries
	// construction rather than returning the cached file store.
	t.Setenv("DATABASE_URL", "://still-not-a-url")
	t.Setenv("DATABASE_SERVICE_KEY", "service-role-key")
	_, err = s.Store(context.Background())
	require.Error(t, err)
}

func TestHostedPredicateFollowsEnvironment(t *testing.T) {
	cfg := config.LoadConfig()
	assert.False(t, cfg.HostedConfigured())

	// The predicate is evaluated per request, so credentials appearing
	// after startup flip the selection without a reload.
	t.Setenv("DATABASE_URL", "postgres://db.example.test:5432/postgres")
	assert.False(t, cfg.HostedConfigured(), "url alone is not enough")

	t.Setenv("DATABASE_SERVICE_KEY", "service-role-key")
	assert.True(t, cfg.HostedConfigured())

	url, key := cfg.HostedCredentials()
	assert.Equal(t, "postgres://db.example.test:5432/postgres", url)
	assert.Equal(t, "service-role-key", key)
}
