package playlist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spotify-gateway/internal/env"
	gatewayHttp "spotify-gateway/internal/http"
	"spotify-gateway/internal/spotify"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, handler http.HandlerFunc) *env.Env {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	httpClient := gatewayHttp.NewWithConfig(gatewayHttp.Config{RetryMax: gatewayHttp.Retries(0)})
	e := env.New(nil, nil, httpClient)
	e.Spotify = spotify.New(httpClient, spotify.WithBaseURL(ts.URL))
	return e
}

func TestItems(t *testing.T) {
	e := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/p1/tracks", r.URL.Path)
		assert.Equal(t, "track,episode", r.URL.Query().Get("additional_types"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"items":[{"track":{"id":"t1","name":"Windowlicker"}}],"total":1}`))
	})

	var out bytes.Buffer
	require.NoError(t, Items(context.Background(), e, &out, "https://open.spotify.com/playlist/p1", spotify.PlaylistItemsOptions{}))
	assert.Contains(t, out.String(), `"name": "Windowlicker"`)
}

func TestAdd(t *testing.T) {
	e := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/playlists/p1/tracks", r.URL.Path)

		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []any{"spotify:track:t1", "spotify:track:t2"}, payload["uris"])
		assert.NotContains(t, payload, "position")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"snapshot_id":"snap-9"}`))
	})

	var out bytes.Buffer
	require.NoError(t, Add(context.Background(), e, &out, "p1", []string{"t1", "spotify:track:t2"}, -1))
	assert.Equal(t, "snap-9\n", out.String())
}

func TestAdd_Forbidden(t *testing.T) {
	e := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":403,"message":"Forbidden"}}`))
	})

	var out bytes.Buffer
	err := Add(context.Background(), e, &out, "p1", []string{"t1"}, 0)
	serviceErr, ok := spotifyErrors.As(err)
	require.True(t, ok)
	assert.Contains(t, serviceErr.Message(), "Forbidden")
	assert.Empty(t, out.String())
}
