package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zmb3/spotify/v2"
)

// Returns one page of the current user's saved tracks
func (c *Client) SavedTracks(ctx context.Context, opts PageOptions) (*spotify.SavedTrackPage, error) {
	query := url.Values{}
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.SavedTrackPage
	if err := c.get(ctx, "me/tracks", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SaveTracks(ctx context.Context, trackIDs []string) error {
	query := url.Values{"ids": {c.ids(ctx, KindTrack, trackIDs)}}
	return c.call(ctx, http.MethodPut, "me/tracks", query, nil, nil)
}

func (c *Client) RemoveSavedTracks(ctx context.Context, trackIDs []string) error {
	query := url.Values{"ids": {c.ids(ctx, KindTrack, trackIDs)}}
	return c.call(ctx, http.MethodDelete, "me/tracks", query, nil, nil)
}

// Reports, per track, whether it is in the current user's library
func (c *Client) SavedTracksContain(ctx context.Context, trackIDs []string) ([]bool, error) {
	query := url.Values{"ids": {c.ids(ctx, KindTrack, trackIDs)}}

	var contains []bool
	if err := c.get(ctx, "me/tracks/contains", query, &contains); err != nil {
		return nil, err
	}
	return contains, nil
}

func (c *Client) SavedAlbums(ctx context.Context, opts PageOptions) (*spotify.SavedAlbumPage, error) {
	query := url.Values{}
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.SavedAlbumPage
	if err := c.get(ctx, "me/albums", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SaveAlbums(ctx context.Context, albumIDs []string) error {
	query := url.Values{"ids": {c.ids(ctx, KindAlbum, albumIDs)}}
	return c.call(ctx, http.MethodPut, "me/albums", query, nil, nil)
}

func (c *Client) RemoveSavedAlbums(ctx context.Context, albumIDs []string) error {
	query := url.Values{"ids": {c.ids(ctx, KindAlbum, albumIDs)}}
	return c.call(ctx, http.MethodDelete, "me/albums", query, nil, nil)
}

func (c *Client) FollowArtists(ctx context.Context, artistIDs []string) error {
	query := url.Values{"type": {"artist"}, "ids": {c.ids(ctx, KindArtist, artistIDs)}}
	return c.call(ctx, http.MethodPut, "me/following", query, nil, nil)
}

func (c *Client) UnfollowArtists(ctx context.Context, artistIDs []string) error {
	query := url.Values{"type": {"artist"}, "ids": {c.ids(ctx, KindArtist, artistIDs)}}
	return c.call(ctx, http.MethodDelete, "me/following", query, nil, nil)
}
