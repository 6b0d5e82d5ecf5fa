// Package for CLI output and exit handling

package output

import (
	"encoding/json"
	"io"
	"log/slog"

	"spotify-gateway/internal/env"
	spotifyErrors "spotify-gateway/internal/spotify/errors"
)

const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitTempFail = 75
)

// Writes v as indented JSON
func PrintJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Exit status for err. Retryable Spotify failures exit with EX_TEMPFAIL.
func ExitCode(err error) int {
	if serviceErr, ok := spotifyErrors.As(err); ok && serviceErr.Retryable() {
		return ExitTempFail
	}
	return ExitFailure
}

// Logs the failure and returns its exit status
func Fail(env *env.Env, msg string, err error) int {
	env.Logger.Error(msg, slog.Any("error", err))
	return ExitCode(err)
}
