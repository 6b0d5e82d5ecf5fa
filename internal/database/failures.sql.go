package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createFailuresTable = `
CREATE TABLE IF NOT EXISTS spotify_failures (
    id          BIGSERIAL PRIMARY KEY,
    method      TEXT NOT NULL,
    url         TEXT NOT NULL,
    http_status INTEGER,
    code        TEXT,
    message     TEXT NOT NULL,
    reason      TEXT,
    headers     JSONB,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

func (q *Queries) CreateFailuresTable(ctx context.Context) error {
	_, err := q.db.Exec(ctx, createFailuresTable)
	return err
}

const recordFailure = `
INSERT INTO spotify_failures (method, url, http_status, code, message, reason, headers)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type RecordFailureParams struct {
	Method     string      `json:"method"`
	Url        string      `json:"url"`
	HttpStatus pgtype.Int4 `json:"http_status"`
	Code       pgtype.Text `json:"code"`
	Message    string      `json:"message"`
	Reason     pgtype.Text `json:"reason"`
	Headers    []byte      `json:"headers"`
}

func (q *Queries) RecordFailure(ctx context.Context, arg RecordFailureParams) error {
	_, err := q.db.Exec(ctx, recordFailure,
		arg.Method,
		arg.Url,
		arg.HttpStatus,
		arg.Code,
		arg.Message,
		arg.Reason,
		arg.Headers,
	)
	return err
}

const listFailures = `
SELECT id, method, url, http_status, code, message, reason, headers, created_at
FROM spotify_failures
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (q *Queries) ListFailures(ctx context.Context, limit int32) ([]SpotifyFailure, error) {
	rows, err := q.db.Query(ctx, listFailures, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SpotifyFailure
	for rows.Next() {
		var i SpotifyFailure
		if err := rows.Scan(
			&i.ID,
			&i.Method,
			&i.Url,
			&i.HttpStatus,
			&i.Code,
			&i.Message,
			&i.Reason,
			&i.Headers,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
