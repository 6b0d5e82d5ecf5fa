// Package for API Handlers

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"spotify-gateway/internal/api/models/requests"
	"spotify-gateway/internal/api/models/responses"
	gatewayEnv "spotify-gateway/internal/env"
	gatewayJson "spotify-gateway/internal/json"
	"spotify-gateway/internal/spotify"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const defaultFailuresLimit = 50

var validate = validator.New(validator.WithRequiredStructEnabled())

func environment(r *http.Request) *gatewayEnv.Env {
	env, ok := r.Context().Value(gatewayEnv.Key).(*gatewayEnv.Env)
	if !ok {
		env = gatewayEnv.Null()
	}
	return env
}

// Parses an optional integer query parameter
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %w", key, err)
	}
	return n, nil
}

func encode(w http.ResponseWriter, r *http.Request, env *gatewayEnv.Env, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		env.Logger.ErrorContext(r.Context(), "Unable to encode response", slog.Any("error", err))
	}
}

// Writes a Spotify failure to the client. The upstream status and Retry-After
// are forwarded; failures without a status become 502.
func WriteServiceError(w http.ResponseWriter, r *http.Request, env *gatewayEnv.Env, err error) {
	ctx := r.Context()
	serviceErr, ok := spotifyErrors.As(err)
	if !ok {
		env.Logger.ErrorContext(ctx, "Unexpected error", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body := responses.FromServiceError(serviceErr, http.StatusBadGateway)
	if retryAfter, ok := serviceErr.RetryAfter(); ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Error.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode error response", slog.Any("error", err))
	}
}

// Parses and validates the market, limit and offset query parameters
func pageQuery(r *http.Request) (requests.Page, error) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return requests.Page{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return requests.Page{}, err
	}
	query := requests.Page{
		Market: r.URL.Query().Get("market"),
		Limit:  limit,
		Offset: offset,
	}
	return query, validate.Struct(query)
}

// Decodes a single JSON object, rejecting unknown fields
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()
	return gatewayJson.DecodeJson(dst, decoder)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func GetTrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	// Validate query
	env.Logger.DebugContext(ctx, "Validating query")
	query := requests.Market{Market: r.URL.Query().Get("market")}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Retrieve track
	env.Logger.DebugContext(ctx, "Retrieving track")
	track, err := env.Spotify.Track(ctx, mux.Vars(r)["id"], query.Market)
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, track)
}

func GetArtist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	env.Logger.DebugContext(ctx, "Retrieving artist")
	artist, err := env.Spotify.Artist(ctx, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, artist)
}

func GetArtistAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	// Parse query
	env.Logger.DebugContext(ctx, "Parsing query")
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := requests.ArtistAlbums{
		Market:        r.URL.Query().Get("market"),
		IncludeGroups: r.URL.Query().Get("include_groups"),
		Limit:         limit,
		Offset:        offset,
	}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Retrieve albums
	env.Logger.DebugContext(ctx, "Retrieving artist albums")
	page, err := env.Spotify.ArtistAlbums(ctx, mux.Vars(r)["id"], spotify.AlbumsOptions{
		AlbumType: query.IncludeGroups,
		Country:   query.Market,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, page)
}

func GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	query := requests.Market{Market: r.URL.Query().Get("market")}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving album")
	album, err := env.Spotify.Album(ctx, mux.Vars(r)["id"], query.Market)
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, album)
}

func GetAlbumTracks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	env.Logger.DebugContext(ctx, "Parsing query")
	query, err := pageQuery(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving album tracks")
	page, err := env.Spotify.AlbumTracks(ctx, mux.Vars(r)["id"], spotify.PageOptions{
		Market: query.Market,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, page)
}

func GetShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	query := requests.Market{Market: r.URL.Query().Get("market")}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving show")
	show, err := env.Spotify.Show(ctx, mux.Vars(r)["id"], query.Market)
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, show)
}

func GetEpisode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	query := requests.Market{Market: r.URL.Query().Get("market")}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving episode")
	episode, err := env.Spotify.Episode(ctx, mux.Vars(r)["id"], query.Market)
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, episode)
}

func GetPlaylistItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	// Parse query
	env.Logger.DebugContext(ctx, "Parsing query")
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := requests.PlaylistItems{
		Market: r.URL.Query().Get("market"),
		Limit:  limit,
		Offset: offset,
	}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Retrieve items
	env.Logger.DebugContext(ctx, "Retrieving playlist items")
	page, err := env.Spotify.PlaylistItems(ctx, mux.Vars(r)["id"], spotify.PlaylistItemsOptions{
		Fields: r.URL.Query().Get("fields"),
		Market: query.Market,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, page)
}

func AddPlaylistItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var req requests.AddPlaylistItems
	if err := decodeBody(r, &req); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Add items
	position := -1
	if req.Position != nil {
		position = *req.Position
	}
	env.Logger.DebugContext(ctx, "Adding playlist items", slog.Int("count", len(req.URIs)))
	snapshotID, err := env.Spotify.PlaylistAddItems(ctx, mux.Vars(r)["id"], req.URIs, position)
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(responses.Snapshot{SnapshotID: snapshotID}); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
	}
}

func StartPlayback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	var req requests.StartPlayback
	if r.ContentLength != 0 {
		env.Logger.DebugContext(ctx, "Decoding request body")
		if err := decodeBody(r, &req); err != nil {
			env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	env.Logger.DebugContext(ctx, "Starting playback")
	err := env.Spotify.StartPlayback(ctx, spotify.PlayOptions{
		DeviceID:   req.DeviceID,
		ContextURI: req.ContextURI,
		URIs:       req.URIs,
		PositionMs: req.PositionMs,
	})
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PausePlayback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	env.Logger.DebugContext(ctx, "Pausing playback")
	if err := env.Spotify.PausePlayback(ctx, r.URL.Query().Get("device_id")); err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	// Parse query
	env.Logger.DebugContext(ctx, "Parsing query")
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := requests.Search{
		Query:  r.URL.Query().Get("q"),
		Type:   r.URL.Query().Get("type"),
		Market: r.URL.Query().Get("market"),
		Limit:  limit,
		Offset: offset,
	}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Search
	env.Logger.DebugContext(ctx, "Searching catalog", slog.String("q", query.Query))
	result, err := env.Spotify.Search(ctx, query.Query, query.Type, spotify.SearchOptions{
		Market: query.Market,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		WriteServiceError(w, r, env, err)
		return
	}
	encode(w, r, env, result)
}

func ListFailures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := environment(r)

	if env.Database == nil {
		env.Logger.WarnContext(ctx, "Failure journal is disabled")
		http.Error(w, "Failure journal is disabled", http.StatusServiceUnavailable)
		return
	}

	limit, err := queryInt(r, "limit", defaultFailuresLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := requests.ListFailures{Limit: limit}
	if err := validate.Struct(query); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate query", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Retrieve failures
	env.Logger.DebugContext(ctx, "Listing failures")
	rows, err := env.Database.ListFailures(ctx, int32(query.Limit))
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to list failures", slog.Any("error", err))
		http.Error(w, "Unable to list failures", http.StatusInternalServerError)
		return
	}
	res, err := responses.FromFailures(rows)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode failure headers", slog.Any("error", err))
		http.Error(w, "Unable to decode failures", http.StatusInternalServerError)
		return
	}
	encode(w, r, env, res)
}
