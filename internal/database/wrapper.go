package database

import (
	"context"
	"encoding/json"
	"fmt"

	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	*Queries
	Pool *pgxpool.Pool
}

// Opens a connection pool and makes sure the schema exists
func NewDatabase(ctx context.Context, url string) (*Database, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("Failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("Failed to reach database: %w", err)
	}

	db := &Database{Queries: New(pool), Pool: pool}
	if err := db.CreateFailuresTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("Failed to migrate: %w", err)
	}
	return db, nil
}

func (db *Database) Close() error {
	if db == nil || db.Pool == nil {
		return nil
	}

	db.Pool.Close()
	return nil
}

// Stores a failed Spotify call. Absent fields become NULL.
func (q *Queries) RecordServiceError(ctx context.Context, method, url string, serviceErr *spotifyErrors.ServiceError) error {
	params, err := FailureParams(method, url, serviceErr)
	if err != nil {
		return err
	}
	return q.RecordFailure(ctx, params)
}

func FailureParams(method, url string, serviceErr *spotifyErrors.ServiceError) (RecordFailureParams, error) {
	params := RecordFailureParams{
		Method:  method,
		Url:     url,
		Message: serviceErr.Message(),
	}
	if status, ok := serviceErr.HTTPStatus(); ok {
		params.HttpStatus = pgtype.Int4{Int32: int32(status), Valid: true}
	}
	if code, ok := serviceErr.Code(); ok {
		params.Code = pgtype.Text{String: code.String(), Valid: true}
	}
	if reason, ok := serviceErr.Reason(); ok {
		params.Reason = pgtype.Text{String: reason, Valid: true}
	}
	if headers, ok := serviceErr.Headers(); ok {
		raw, err := json.Marshal(headers)
		if err != nil {
			return params, fmt.Errorf("Failed to marshal headers: %w", err)
		}
		params.Headers = raw
	}
	return params, nil
}
