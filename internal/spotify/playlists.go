package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zmb3/spotify/v2"
)

type snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}

type PlaylistItemsOptions struct {
	Fields string
	Market string
	Limit  int
	Offset int
}

// Moves RangeLength items starting at RangeStart to before InsertBefore
type ReorderOptions struct {
	RangeStart   int    `json:"range_start"`
	InsertBefore int    `json:"insert_before"`
	RangeLength  int    `json:"range_length,omitempty"`
	SnapshotID   string `json:"snapshot_id,omitempty"`
}

func (c *Client) playlistTracksPath(ctx context.Context, playlistID string) string {
	return "playlists/" + c.id(ctx, KindPlaylist, playlistID) + "/tracks"
}

// Track URIs for a mix of IDs, URIs and URLs. Episode URIs pass through.
func trackURIs(items []string) []string {
	uris := make([]string, 0, len(items))
	for _, item := range items {
		uris = append(uris, URI(KindTrack, item))
	}
	return uris
}

func (c *Client) Playlist(ctx context.Context, playlistID, fields, market string) (*spotify.FullPlaylist, error) {
	query := url.Values{"additional_types": {"track"}}
	setIfPresent(query, "fields", fields)
	setIfPresent(query, "market", market)

	var playlist spotify.FullPlaylist
	if err := c.get(ctx, "playlists/"+c.id(ctx, KindPlaylist, playlistID), query, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Returns one page of a playlist's items. Limit defaults to 100.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, opts PlaylistItemsOptions) (*spotify.PlaylistItemPage, error) {
	if opts.Limit == 0 {
		opts.Limit = 100
	}
	query := url.Values{"additional_types": {"track,episode"}}
	setIfPresent(query, "fields", opts.Fields)
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.PlaylistItemPage
	if err := c.get(ctx, c.playlistTracksPath(ctx, playlistID), query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Adds items to a playlist and returns the new snapshot ID. A negative
// position appends.
func (c *Client) PlaylistAddItems(ctx context.Context, playlistID string, items []string, position int) (string, error) {
	payload := map[string]any{"uris": trackURIs(items)}
	if position >= 0 {
		payload["position"] = position
	}

	var res snapshot
	if err := c.call(ctx, http.MethodPost, c.playlistTracksPath(ctx, playlistID), nil, payload, &res); err != nil {
		return "", err
	}
	return res.SnapshotID, nil
}

// Replaces every item of a playlist
func (c *Client) PlaylistReplaceItems(ctx context.Context, playlistID string, items []string) (string, error) {
	payload := map[string]any{"uris": trackURIs(items)}

	var res snapshot
	if err := c.call(ctx, http.MethodPut, c.playlistTracksPath(ctx, playlistID), nil, payload, &res); err != nil {
		return "", err
	}
	return res.SnapshotID, nil
}

func (c *Client) PlaylistReorderItems(ctx context.Context, playlistID string, opts ReorderOptions) (string, error) {
	var res snapshot
	if err := c.call(ctx, http.MethodPut, c.playlistTracksPath(ctx, playlistID), nil, opts, &res); err != nil {
		return "", err
	}
	return res.SnapshotID, nil
}

// Removes every occurrence of the given items. snapshotID may be empty.
func (c *Client) PlaylistRemoveItems(ctx context.Context, playlistID string, items []string, snapshotID string) (string, error) {
	tracks := make([]map[string]string, 0, len(items))
	for _, uri := range trackURIs(items) {
		tracks = append(tracks, map[string]string{"uri": uri})
	}
	payload := map[string]any{"tracks": tracks}
	if snapshotID != "" {
		payload["snapshot_id"] = snapshotID
	}

	var res snapshot
	if err := c.call(ctx, http.MethodDelete, c.playlistTracksPath(ctx, playlistID), nil, payload, &res); err != nil {
		return "", err
	}
	return res.SnapshotID, nil
}

func (c *Client) CurrentUserPlaylists(ctx context.Context, limit, offset int) (*spotify.SimplePlaylistPage, error) {
	query := url.Values{}
	setPaging(query, limit, offset)

	var page spotify.SimplePlaylistPage
	if err := c.get(ctx, "me/playlists", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
