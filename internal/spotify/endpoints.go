package spotify

import (
	"context"
	"net/url"
	"strconv"

	"github.com/zmb3/spotify/v2"
)

type AlbumsOptions struct {
	AlbumType string
	Country   string
	Limit     int
	Offset    int
}

// Market and paging for list endpoints. Zero values are left to Spotify.
type PageOptions struct {
	Market string
	Limit  int
	Offset int
}

type SearchOptions struct {
	Market string
	Limit  int
	Offset int
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

func setPaging(query url.Values, limit, offset int) {
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
}

// Returns a single track given its ID, URI or URL
func (c *Client) Track(ctx context.Context, trackID, market string) (*spotify.FullTrack, error) {
	query := url.Values{}
	setIfPresent(query, "market", market)

	var track spotify.FullTrack
	if err := c.get(ctx, "tracks/"+c.id(ctx, KindTrack, trackID), query, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Returns several tracks. Unknown IDs come back as nil entries.
func (c *Client) Tracks(ctx context.Context, trackIDs []string, market string) ([]*spotify.FullTrack, error) {
	query := url.Values{"ids": {c.ids(ctx, KindTrack, trackIDs)}}
	setIfPresent(query, "market", market)

	var res struct {
		Tracks []*spotify.FullTrack `json:"tracks"`
	}
	if err := c.get(ctx, "tracks", query, &res); err != nil {
		return nil, err
	}
	return res.Tracks, nil
}

func (c *Client) Artist(ctx context.Context, artistID string) (*spotify.FullArtist, error) {
	var artist spotify.FullArtist
	if err := c.get(ctx, "artists/"+c.id(ctx, KindArtist, artistID), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

func (c *Client) Artists(ctx context.Context, artistIDs []string) ([]*spotify.FullArtist, error) {
	query := url.Values{"ids": {c.ids(ctx, KindArtist, artistIDs)}}

	var res struct {
		Artists []*spotify.FullArtist `json:"artists"`
	}
	if err := c.get(ctx, "artists", query, &res); err != nil {
		return nil, err
	}
	return res.Artists, nil
}

// Returns one page of an artist's albums
func (c *Client) ArtistAlbums(ctx context.Context, artistID string, opts AlbumsOptions) (*spotify.SimpleAlbumPage, error) {
	query := url.Values{}
	setIfPresent(query, "include_groups", opts.AlbumType)
	setIfPresent(query, "market", opts.Country)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.SimpleAlbumPage
	if err := c.get(ctx, "artists/"+c.id(ctx, KindArtist, artistID)+"/albums", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Returns an artist's top tracks in a country. Country defaults to US.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, country string) ([]spotify.FullTrack, error) {
	if country == "" {
		country = "US"
	}
	query := url.Values{"market": {country}}

	var res struct {
		Tracks []spotify.FullTrack `json:"tracks"`
	}
	if err := c.get(ctx, "artists/"+c.id(ctx, KindArtist, artistID)+"/top-tracks", query, &res); err != nil {
		return nil, err
	}
	return res.Tracks, nil
}

func (c *Client) Album(ctx context.Context, albumID, market string) (*spotify.FullAlbum, error) {
	query := url.Values{}
	setIfPresent(query, "market", market)

	var album spotify.FullAlbum
	if err := c.get(ctx, "albums/"+c.id(ctx, KindAlbum, albumID), query, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Returns several albums. Unknown IDs come back as nil entries.
func (c *Client) Albums(ctx context.Context, albumIDs []string, market string) ([]*spotify.FullAlbum, error) {
	query := url.Values{"ids": {c.ids(ctx, KindAlbum, albumIDs)}}
	setIfPresent(query, "market", market)

	var res struct {
		Albums []*spotify.FullAlbum `json:"albums"`
	}
	if err := c.get(ctx, "albums", query, &res); err != nil {
		return nil, err
	}
	return res.Albums, nil
}

// Returns one page of an album's tracks. Limit defaults to 50.
func (c *Client) AlbumTracks(ctx context.Context, albumID string, opts PageOptions) (*spotify.SimpleTrackPage, error) {
	if opts.Limit == 0 {
		opts.Limit = 50
	}
	query := url.Values{}
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.SimpleTrackPage
	if err := c.get(ctx, "albums/"+c.id(ctx, KindAlbum, albumID)+"/tracks", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ArtistRelatedArtists(ctx context.Context, artistID string) ([]*spotify.FullArtist, error) {
	var res struct {
		Artists []*spotify.FullArtist `json:"artists"`
	}
	if err := c.get(ctx, "artists/"+c.id(ctx, KindArtist, artistID)+"/related-artists", nil, &res); err != nil {
		return nil, err
	}
	return res.Artists, nil
}

func (c *Client) Show(ctx context.Context, showID, market string) (*spotify.FullShow, error) {
	query := url.Values{}
	setIfPresent(query, "market", market)

	var show spotify.FullShow
	if err := c.get(ctx, "shows/"+c.id(ctx, KindShow, showID), query, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// Returns one page of a show's episodes. Limit defaults to 50.
func (c *Client) ShowEpisodes(ctx context.Context, showID string, opts PageOptions) (*spotify.SimpleEpisodePage, error) {
	if opts.Limit == 0 {
		opts.Limit = 50
	}
	query := url.Values{}
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var page spotify.SimpleEpisodePage
	if err := c.get(ctx, "shows/"+c.id(ctx, KindShow, showID)+"/episodes", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Episode(ctx context.Context, episodeID, market string) (*spotify.EpisodePage, error) {
	query := url.Values{}
	setIfPresent(query, "market", market)

	var episode spotify.EpisodePage
	if err := c.get(ctx, "episodes/"+c.id(ctx, KindEpisode, episodeID), query, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// Returns audio features for several tracks. Unknown IDs come back as nil entries.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) ([]*spotify.AudioFeatures, error) {
	query := url.Values{"ids": {c.ids(ctx, KindTrack, trackIDs)}}

	var res struct {
		AudioFeatures []*spotify.AudioFeatures `json:"audio_features"`
	}
	if err := c.get(ctx, "audio-features", query, &res); err != nil {
		return nil, err
	}
	return res.AudioFeatures, nil
}

// Returns the markets where Spotify is available
func (c *Client) AvailableMarkets(ctx context.Context) ([]string, error) {
	var res struct {
		Markets []string `json:"markets"`
	}
	if err := c.get(ctx, "markets", nil, &res); err != nil {
		return nil, err
	}
	return res.Markets, nil
}

func (c *Client) NewReleases(ctx context.Context, opts PageOptions) (*spotify.SimpleAlbumPage, error) {
	query := url.Values{}
	setIfPresent(query, "country", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var res struct {
		Albums spotify.SimpleAlbumPage `json:"albums"`
	}
	if err := c.get(ctx, "browse/new-releases", query, &res); err != nil {
		return nil, err
	}
	return &res.Albums, nil
}

func (c *Client) User(ctx context.Context, userID string) (*spotify.User, error) {
	var user spotify.User
	if err := c.get(ctx, "users/"+url.PathEscape(c.id(ctx, KindUser, userID)), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Returns the profile of the user owning the access token
func (c *Client) CurrentUser(ctx context.Context) (*spotify.PrivateUser, error) {
	var user spotify.PrivateUser
	if err := c.get(ctx, "me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Searches the catalog. searchType is a comma separated list such as "track,artist".
func (c *Client) Search(ctx context.Context, q, searchType string, opts SearchOptions) (*spotify.SearchResult, error) {
	if searchType == "" {
		searchType = "track"
	}
	query := url.Values{"q": {q}, "type": {searchType}}
	setIfPresent(query, "market", opts.Market)
	setPaging(query, opts.Limit, opts.Offset)

	var result spotify.SearchResult
	if err := c.get(ctx, "search", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Fetches the page at a paging object's next URL into dst. It reports false
// without calling Spotify when there is no next page.
func (c *Client) Next(ctx context.Context, nextURL string, dst any) (bool, error) {
	return c.page(ctx, nextURL, dst)
}

func (c *Client) Previous(ctx context.Context, previousURL string, dst any) (bool, error) {
	return c.page(ctx, previousURL, dst)
}

func (c *Client) page(ctx context.Context, pageURL string, dst any) (bool, error) {
	if pageURL == "" {
		return false, nil
	}
	if err := c.get(ctx, pageURL, nil, dst); err != nil {
		return false, err
	}
	return true, nil
}
