package env

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"spotify-gateway/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_AccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer static", r.Header.Get("Authorization"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(`{"id":"me","display_name":"Me"}`))
	}))
	defer ts.Close()

	env, err := FromConfig(context.Background(), config.Config{
		SpotifyAccessToken: "static",
		SpotifyLanguage:    "fr",
		SpotifyBaseURL:     ts.URL,
	}, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	defer env.Close()

	assert.Nil(t, env.Database)
	user, err := env.Spotify.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Me", user.DisplayName)
}

func TestFromConfig_ZeroRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	env, err := FromConfig(context.Background(), config.Config{
		SpotifyAccessToken: "static",
		SpotifyBaseURL:     ts.URL,
		SpotifyRetries:     0,
	}, nil, nil)
	require.NoError(t, err)
	defer env.Close()

	_, err = env.Spotify.CurrentUser(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNull(t *testing.T) {
	env := Null()
	assert.NotNil(t, env.Logger)
	assert.NotNil(t, env.Spotify)
	assert.NoError(t, env.Close())
}
