package responses

import (
	"encoding/json"
	"testing"
	"time"

	"spotify-gateway/internal/database"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFailures(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  database.SpotifyFailure
		want string
	}{
		{
			name: "all columns",
			row: database.SpotifyFailure{
				ID:         7,
				Method:     "GET",
				Url:        "https://api.spotify.com/v1/tracks/x",
				HttpStatus: pgtype.Int4{Int32: 429, Valid: true},
				Code:       pgtype.Text{String: "-1", Valid: true},
				Message:    "rate limited",
				Reason:     pgtype.Text{String: "rate_limit_exceeded", Valid: true},
				Headers:    []byte(`{"Retry-After":"5"}`),
				CreatedAt:  pgtype.Timestamptz{Time: createdAt, Valid: true},
			},
			want: `{"id":7,"method":"GET","url":"https://api.spotify.com/v1/tracks/x","http_status":429,"code":"-1",
				"message":"rate limited","reason":"rate_limit_exceeded","headers":{"Retry-After":"5"},
				"created_at":"2024-05-01T12:00:00Z"}`,
		},
		{
			name: "null columns",
			row: database.SpotifyFailure{
				ID:        8,
				Method:    "GET",
				Url:       "https://api.spotify.com/v1/me",
				Message:   "Unknown error",
				CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
			},
			want: `{"id":8,"method":"GET","url":"https://api.spotify.com/v1/me","http_status":null,"code":null,
				"message":"Unknown error","reason":null,"headers":null,"created_at":"2024-05-01T12:00:00Z"}`,
		},
		{
			name: "empty headers and strings",
			row: database.SpotifyFailure{
				ID:        9,
				Method:    "PUT",
				Url:       "https://api.spotify.com/v1/me/player/pause",
				Code:      pgtype.Text{String: "", Valid: true},
				Message:   "",
				Reason:    pgtype.Text{String: "", Valid: true},
				Headers:   []byte(`{}`),
				CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
			},
			want: `{"id":9,"method":"PUT","url":"https://api.spotify.com/v1/me/player/pause","http_status":null,"code":"",
				"message":"","reason":"","headers":{},"created_at":"2024-05-01T12:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FromFailures([]database.SpotifyFailure{tt.row})
			require.NoError(t, err)
			require.Len(t, res.Failures, 1)

			raw, err := json.Marshal(res.Failures[0])
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestFromFailures_EmptyHeadersArePresent(t *testing.T) {
	res, err := FromFailures([]database.SpotifyFailure{{Headers: []byte(`{}`)}, {}})
	require.NoError(t, err)

	assert.NotNil(t, res.Failures[0].Headers)
	assert.Empty(t, res.Failures[0].Headers)
	assert.Nil(t, res.Failures[1].Headers)
}

func TestFromFailures_NoRows(t *testing.T) {
	res, err := FromFailures(nil)
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"failures":[]}`, string(raw))
}

func TestFromFailures_InvalidHeaders(t *testing.T) {
	_, err := FromFailures([]database.SpotifyFailure{{Headers: []byte(`not json`)}})
	assert.Error(t, err)
}

func TestFromServiceError(t *testing.T) {
	withStatus := FromServiceError(spotifyErrors.New("msg",
		spotifyErrors.WithHTTPStatus(404),
		spotifyErrors.WithCode(spotifyErrors.IntCode(-1)),
	), 502)
	assert.Equal(t, 404, withStatus.Error.Status)
	assert.Equal(t, -1, withStatus.Error.Code)
	assert.Nil(t, withStatus.Error.Reason)

	bare := FromServiceError(spotifyErrors.New("msg",
		spotifyErrors.WithCode(spotifyErrors.StringCode("invalid_client")),
		spotifyErrors.WithReason("")), 502)
	assert.Equal(t, 502, bare.Error.Status)
	assert.Equal(t, "invalid_client", bare.Error.Code)
	require.NotNil(t, bare.Error.Reason)
	assert.Equal(t, "", *bare.Error.Reason)
}
