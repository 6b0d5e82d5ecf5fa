package player

import (
	"context"
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

type call struct {
	method, path, device, uri string
}

func testEnv(t *testing.T, status int, calls *[]call) *env.Env {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, call{
			method: r.Method,
			path:   r.URL.Path,
			device: r.URL.Query().Get("device_id"),
			uri:    r.URL.Query().Get("uri"),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(ts.Close)
	httpClient := gatewayHttp.NewWithConfig(gatewayHttp.Config{RetryMax: gatewayHttp.Retries(0)})
	e := env.New(nil, nil, httpClient)
	e.Spotify = spotify.New(httpClient, spotify.WithBaseURL(ts.URL))
	return e
}

func TestControl(t *testing.T) {
	tests := []struct {
		action string
		uris   []string
		want   []call
	}{
		{ActionPlay, nil, []call{{method: http.MethodPut, path: "/me/player/play", device: "d1"}}},
		{ActionPause, nil, []call{{method: http.MethodPut, path: "/me/player/pause", device: "d1"}}},
		{ActionNext, nil, []call{{method: http.MethodPost, path: "/me/player/next", device: "d1"}}},
		{ActionPrev, nil, []call{{method: http.MethodPost, path: "/me/player/previous", device: "d1"}}},
		{ActionQueue, []string{"t1", "spotify:episode:e1"}, []call{
			{method: http.MethodPost, path: "/me/player/queue", device: "d1", uri: "spotify:track:t1"},
			{method: http.MethodPost, path: "/me/player/queue", device: "d1", uri: "spotify:episode:e1"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var calls []call
			e := testEnv(t, http.StatusNoContent, &calls)
			require.NoError(t, Control(context.Background(), e, tt.action, "d1", tt.uris))
			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestControl_InvalidAction(t *testing.T) {
	var calls []call
	e := testEnv(t, http.StatusNoContent, &calls)

	assert.Error(t, Control(context.Background(), e, "rewind", "", nil))
	assert.Error(t, Control(context.Background(), e, ActionQueue, "", nil))
	assert.Empty(t, calls)
}

func TestControl_NoActiveDevice(t *testing.T) {
	var calls []call
	e := testEnv(t, http.StatusNotFound, &calls)

	err := Control(context.Background(), e, ActionPause, "", nil)
	serviceErr, ok := spotifyErrors.As(err)
	require.True(t, ok)
	status, ok := serviceErr.HTTPStatus()
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Len(t, calls, 1)
}
