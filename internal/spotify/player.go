package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zmb3/spotify/v2"
)

// What StartPlayback plays. Leaving every field empty resumes playback.
// Offset picks the starting item of ContextURI by position or URI.
type PlayOptions struct {
	DeviceID   string
	ContextURI string
	URIs       []string
	Offset     *spotify.PlaybackOffset
	PositionMs int
}

func deviceQuery(deviceID string) url.Values {
	query := url.Values{}
	setIfPresent(query, "device_id", deviceID)
	return query
}

// Returns the current user's available devices
func (c *Client) Devices(ctx context.Context) ([]spotify.PlayerDevice, error) {
	var res struct {
		Devices []spotify.PlayerDevice `json:"devices"`
	}
	if err := c.get(ctx, "me/player/devices", nil, &res); err != nil {
		return nil, err
	}
	return res.Devices, nil
}

// Returns the playback state, or nil when nothing is playing
func (c *Client) CurrentPlayback(ctx context.Context, market string) (*spotify.PlayerState, error) {
	query := url.Values{}
	setIfPresent(query, "market", market)

	var state *spotify.PlayerState
	if err := c.get(ctx, "me/player", query, &state); err != nil {
		return nil, err
	}
	return state, nil
}

func (c *Client) StartPlayback(ctx context.Context, opts PlayOptions) error {
	payload := map[string]any{}
	if opts.ContextURI != "" {
		payload["context_uri"] = opts.ContextURI
	}
	if len(opts.URIs) > 0 {
		payload["uris"] = trackURIs(opts.URIs)
	}
	if opts.Offset != nil {
		payload["offset"] = opts.Offset
	}
	if opts.PositionMs > 0 {
		payload["position_ms"] = opts.PositionMs
	}
	return c.call(ctx, http.MethodPut, "me/player/play", deviceQuery(opts.DeviceID), payload, nil)
}

func (c *Client) PausePlayback(ctx context.Context, deviceID string) error {
	return c.call(ctx, http.MethodPut, "me/player/pause", deviceQuery(deviceID), nil, nil)
}

// Moves playback to deviceID, starting it when play is set
func (c *Client) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	payload := map[string]any{"device_ids": []string{deviceID}, "play": play}
	return c.call(ctx, http.MethodPut, "me/player", nil, payload, nil)
}

func (c *Client) NextTrack(ctx context.Context, deviceID string) error {
	return c.call(ctx, http.MethodPost, "me/player/next", deviceQuery(deviceID), nil, nil)
}

func (c *Client) PreviousTrack(ctx context.Context, deviceID string) error {
	return c.call(ctx, http.MethodPost, "me/player/previous", deviceQuery(deviceID), nil, nil)
}

// Appends a track or episode to the playback queue
func (c *Client) AddToQueue(ctx context.Context, uri, deviceID string) error {
	query := deviceQuery(deviceID)
	query.Set("uri", URI(KindTrack, uri))
	return c.call(ctx, http.MethodPost, "me/player/queue", query, nil, nil)
}

func (c *Client) Queue(ctx context.Context) (*spotify.Queue, error) {
	var queue spotify.Queue
	if err := c.get(ctx, "me/player/queue", nil, &queue); err != nil {
		return nil, err
	}
	return &queue, nil
}
