// Package for handler request structs

package requests

type Market struct {
	Market string `validate:"omitempty,iso3166_1_alpha2"`
}

type ArtistAlbums struct {
	Market        string `validate:"omitempty,iso3166_1_alpha2"`
	IncludeGroups string `validate:"omitempty,oneof=album single appears_on compilation"`
	Limit         int    `validate:"omitempty,min=1,max=50"`
	Offset        int    `validate:"min=0"`
}

type Search struct {
	Query  string `validate:"required"`
	Type   string `validate:"omitempty,oneof=album artist track"`
	Market string `validate:"omitempty,iso3166_1_alpha2"`
	Limit  int    `validate:"omitempty,min=1,max=50"`
	Offset int    `validate:"min=0"`
}

type ListFailures struct {
	Limit int `validate:"min=1,max=500"`
}

type Page struct {
	Market string `validate:"omitempty,iso3166_1_alpha2"`
	Limit  int    `validate:"omitempty,min=1,max=50"`
	Offset int    `validate:"min=0"`
}

type PlaylistItems struct {
	Market string `validate:"omitempty,iso3166_1_alpha2"`
	Limit  int    `validate:"omitempty,min=1,max=100"`
	Offset int    `validate:"min=0"`
}

// Body of POST /api/playlists/{id}/tracks. A missing position appends.
type AddPlaylistItems struct {
	URIs     []string `json:"uris" validate:"required,min=1,max=100,dive,required"`
	Position *int     `json:"position" validate:"omitempty,min=0"`
}

// Body of PUT /api/me/player/play. An empty body resumes playback.
type StartPlayback struct {
	DeviceID   string   `json:"device_id"`
	ContextURI string   `json:"context_uri" validate:"omitempty,startswith=spotify:"`
	URIs       []string `json:"uris" validate:"omitempty,dive,required"`
	PositionMs int      `json:"position_ms" validate:"min=0"`
}
