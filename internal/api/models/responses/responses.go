// Package for handler response structs

package responses

import (
	"encoding/json"
	"time"

	"spotify-gateway/internal/database"
	spotifyErrors "spotify-gateway/internal/spotify/errors"
)

// Error object in Spotify's own shape
type Error struct {
	Status  int     `json:"status"`
	Message string  `json:"message"`
	Reason  *string `json:"reason,omitempty"`
	Code    any     `json:"code,omitempty"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

// Converts a ServiceError, using fallbackStatus when no status was captured
func FromServiceError(serviceErr *spotifyErrors.ServiceError, fallbackStatus int) ErrorResponse {
	body := Error{
		Status:  fallbackStatus,
		Message: serviceErr.Message(),
	}
	if status, ok := serviceErr.HTTPStatus(); ok {
		body.Status = status
	}
	if reason, ok := serviceErr.Reason(); ok {
		body.Reason = &reason
	}
	if code, ok := serviceErr.Code(); ok {
		if n, isNum := code.Int(); isNum {
			body.Code = n
		} else {
			body.Code = code.String()
		}
	}
	return ErrorResponse{Error: body}
}

type Failure struct {
	ID         int64             `json:"id"`
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	HTTPStatus *int32            `json:"http_status"`
	Code       *string           `json:"code"`
	Message    string            `json:"message"`
	Reason     *string           `json:"reason"`
	Headers    map[string]string `json:"headers"`
	CreatedAt  time.Time         `json:"created_at"`
}

type ListFailures struct {
	Failures []Failure `json:"failures"`
}

// Converts journal rows, keeping NULL columns as null
func FromFailures(rows []database.SpotifyFailure) (ListFailures, error) {
	res := ListFailures{Failures: make([]Failure, 0, len(rows))}
	for _, row := range rows {
		failure := Failure{
			ID:        row.ID,
			Method:    row.Method,
			URL:       row.Url,
			Message:   row.Message,
			CreatedAt: row.CreatedAt.Time,
		}
		if row.HttpStatus.Valid {
			failure.HTTPStatus = &row.HttpStatus.Int32
		}
		if row.Code.Valid {
			failure.Code = &row.Code.String
		}
		if row.Reason.Valid {
			failure.Reason = &row.Reason.String
		}
		if row.Headers != nil {
			if err := json.Unmarshal(row.Headers, &failure.Headers); err != nil {
				return res, err
			}
		}
		res.Failures = append(res.Failures, failure)
	}
	return res, nil
}

type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}
