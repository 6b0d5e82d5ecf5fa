package spotify

import (
	"context"
	"log/slog"
	"strings"
)

type Kind string

const (
	KindTrack    Kind = "track"
	KindArtist   Kind = "artist"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
	KindShow     Kind = "show"
	KindEpisode  Kind = "episode"
	KindUser     Kind = "user"
)

// ParseID extracts the bare ID from a Spotify URI (spotify:track:ID), an open
// URL (https://open.spotify.com/track/ID?si=...) or a bare ID. found is the
// kind named by the URI or URL, and is empty for bare IDs.
func ParseID(raw string) (id string, found Kind) {
	if fields := strings.Split(raw, ":"); len(fields) >= 3 {
		return fields[len(fields)-1], Kind(fields[len(fields)-2])
	}
	if fields := strings.Split(raw, "/"); len(fields) >= 3 {
		bare, _, _ := strings.Cut(fields[len(fields)-1], "?")
		return bare, Kind(fields[len(fields)-2])
	}
	id, _, _ = strings.Cut(raw, "?")
	return id, ""
}

// Reports whether raw is a full URI such as spotify:track:ID
func IsURI(raw string) bool {
	return strings.HasPrefix(raw, "spotify:") && len(strings.Split(raw, ":")) == 3
}

// Returns the URI for an ID, URL or URI
func URI(kind Kind, raw string) string {
	if IsURI(raw) {
		return raw
	}
	id, _ := ParseID(raw)
	return "spotify:" + string(kind) + ":" + id
}

// Resolves raw to an ID, warning when it names a different kind
func (c *Client) id(ctx context.Context, kind Kind, raw string) string {
	id, found := ParseID(raw)
	if found != "" && found != kind {
		c.logger.WarnContext(ctx, "Unexpected spotify id type",
			slog.String("expected", string(kind)),
			slog.String("found", string(found)),
			slog.String("id", raw),
		)
	}
	return id
}

func (c *Client) ids(ctx context.Context, kind Kind, raw []string) string {
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, c.id(ctx, kind, r))
	}
	return strings.Join(ids, ",")
}
