// Package for environmental dependencies

package env

import (
	"context"
	"log/slog"

	"spotify-gateway/internal/config"
	"spotify-gateway/internal/database"
	"spotify-gateway/internal/http"
	"spotify-gateway/internal/logging"
	"spotify-gateway/internal/metrics"
	"spotify-gateway/internal/spotify"

	"github.com/prometheus/client_golang/prometheus"
)

const Key = "spotify-gateway-env"

// Holds the dependencies for the environment
type Env struct {
	*slog.Logger
	Config   config.Config
	Database *database.Database
	Http     *http.Client
	Spotify  *spotify.Client
	Metrics  *metrics.Metrics
}

// Constructs an Env object with the provided parameters
func New(logger *slog.Logger, database *database.Database, httpClient *http.Client) *Env {
	if logger == nil {
		logger = slog.New(logging.NullLogger())
	}
	if httpClient == nil {
		httpClient = http.New()
	}

	return &Env{
		Logger:   logger,
		Database: database,
		Http:     httpClient,
	}
}

// Constructs a null instance
func Null() *Env {
	return &Env{
		Logger:   slog.New(logging.NullLogger()),
		Database: nil,
		Http:     http.New(),
		Spotify:  spotify.New(nil),
	}
}

// Builds the environment described by cfg. The database is optional and only
// opened when DB_URL is set. Metrics are registered on reg when it is not nil.
func FromConfig(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Env, error) {
	env := New(logger, nil, http.NewWithConfig(http.Config{
		RetryMax: http.Retries(cfg.SpotifyRetries),
		Logger:   logger,
	}))
	env.Config = cfg
	env.Metrics = metrics.New(reg)

	opts := []spotify.Option{
		spotify.WithLogger(env.Logger),
		spotify.WithMetrics(env.Metrics),
		spotify.WithLanguage(cfg.SpotifyLanguage),
	}
	if cfg.SpotifyBaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(cfg.SpotifyBaseURL))
	}
	if cfg.SpotifyAccessToken != "" {
		opts = append(opts, spotify.WithAccessToken(cfg.SpotifyAccessToken))
	} else {
		env.Logger.DebugContext(ctx, "Using client credentials flow")
		opts = append(opts, spotify.WithTokenSource(
			spotify.ClientCredentials(context.Background(), cfg.SpotifyClientID, cfg.SpotifyClientSecret, env.Http),
		))
	}

	if cfg.DatabaseURL != "" {
		env.Logger.InfoContext(ctx, "Connecting to database")
		db, err := database.NewDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		env.Database = db
		opts = append(opts, spotify.WithJournal(db))
	}

	env.Spotify = spotify.New(env.Http, opts...)
	return env, nil
}

// Releases held resources
func (e *Env) Close() error {
	return e.Database.Close()
}
