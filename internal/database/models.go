package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type SpotifyFailure struct {
	ID         int64              `json:"id"`
	Method     string             `json:"method"`
	Url        string             `json:"url"`
	HttpStatus pgtype.Int4        `json:"http_status"`
	Code       pgtype.Text        `json:"code"`
	Message    string             `json:"message"`
	Reason     pgtype.Text        `json:"reason"`
	Headers    []byte             `json:"headers"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}
