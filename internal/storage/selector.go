package storage

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/config"
)

// Selector picks the backend serving each request. The configuration
// predicate runs per request, so a process started without hosted database
// credentials switches over as soon as they appear in the environment.
// Backend instances are cached only after successful construction and the
// hosted pool is keyed on the credentials that built it: a failed attempt
// is retried on the next request, and rotated credentials rebuild the pool.
type Selector struct {
	cfg *config.Config
	log zerolog.Logger

	mu sync.Mutex

	file   *FileStore
	sqlite *SQLiteStore

	pg    *PostgresStore
	pgURL string
	pgKey string
}

func NewSelector(cfg *config.Config, log zerolog.Logger) *Selector {
	return &Selector{cfg: cfg, log: log}
}

// Store returns the backend for the current request: hosted Postgres when
// the endpoint URL and service credential are both configured, otherwise
// the local driver (file or sqlite).
func (s *Selector) Store(ctx context.Context) (Store, error) {
	if s.cfg.HostedConfigured() {
		url, key := s.cfg.HostedCredentials()
		return s.hostedStore(ctx, url, key)
	}

	if s.cfg.DataDriver == "sqlite" {
		return s.sqliteStore()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		s.file = NewFileStore(s.cfg.DataFile)
		s.log.Info().Str("path", s.cfg.DataFile).Msg("using file backend")
	}
	return s.file, nil
}

func (s *Selector) hostedStore(ctx context.Context, url, key string) (Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pg != nil && s.pgURL == url && s.pgKey == key {
		return s.pg, nil
	}

	pg, err := NewPostgresStore(ctx, url, key)
	if err != nil {
		// Not cached: the next request re-reads the credentials and
		// retries, so a transient outage or a corrected URL recovers
		// without a restart.
		return nil, err
	}
	if s.pg != nil {
		s.pg.Close()
	}
	s.pg, s.pgURL, s.pgKey = pg, url, key
	s.log.Info().Msg("using hosted database backend")
	return pg, nil
}

func (s *Selector) sqliteStore() (Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sqlite != nil {
		return s.sqlite, nil
	}
	sqlite, err := NewSQLiteStore(s.cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	s.sqlite = sqlite
	s.log.Info().Str("path", s.cfg.SQLitePath).Msg("using sqlite backend")
	return s.sqlite, nil
}
