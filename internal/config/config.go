// Package for loading configuration from the environment

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	gatewayHttp "spotify-gateway/internal/http"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const defaultPort = "8080"

var spotifyFields = []string{"SpotifyClientID", "SpotifyClientSecret", "SpotifyAccessToken"}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	SpotifyClientID     string `validate:"required_without=SpotifyAccessToken,required_with=SpotifyClientSecret"`
	SpotifyClientSecret string `validate:"required_with=SpotifyClientID"`
	SpotifyAccessToken  string `validate:"required_without=SpotifyClientID"`
	SpotifyLanguage     string `validate:"omitempty,bcp47_language_tag"`
	SpotifyBaseURL      string `validate:"omitempty,url"`
	SpotifyRetries      int    `validate:"min=0,max=10"`

	DatabaseURL string `validate:"omitempty,url"`
	JWKSPath    string
	PrivateKey  string

	Port     string `validate:"required,number"`
	LogLevel string `validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// Loads .env files (when present) and reads the environment
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("Failed to load %s: %w", file, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyAccessToken:  os.Getenv("SPOTIFY_ACCESS_TOKEN"),
		SpotifyLanguage:     os.Getenv("SPOTIFY_LANGUAGE"),
		SpotifyBaseURL:      os.Getenv("SPOTIFY_BASE_URL"),
		DatabaseURL:         os.Getenv("DB_URL"),
		JWKSPath:            os.Getenv("JWKS_PATH"),
		PrivateKey:          os.Getenv("PRIVATE_KEY_PATH"),
		Port:                os.Getenv("PORT"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		SpotifyRetries:      gatewayHttp.DefaultRetryMax,
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if raw := os.Getenv("SPOTIFY_RETRIES"); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("Invalid SPOTIFY_RETRIES: %w", err)
		}
		cfg.SpotifyRetries = retries
	}

	if err := validate.StructExcept(cfg, spotifyFields...); err != nil {
		return cfg, fmt.Errorf("Invalid configuration: %w", err)
	}
	return cfg, nil
}

// Checks the Spotify credentials: an access token, or a client id and secret.
// Only commands that call Spotify need them.
func (c Config) ValidateSpotify() error {
	if err := validate.StructPartial(c, spotifyFields...); err != nil {
		return fmt.Errorf("Invalid Spotify credentials: %w", err)
	}
	return nil
}
