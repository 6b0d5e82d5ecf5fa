package output

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"spotify-gateway/internal/env"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	rateLimited := spotifyErrors.New("Too many requests", spotifyErrors.WithHTTPStatus(429))
	notFound := spotifyErrors.New("Not found", spotifyErrors.WithHTTPStatus(404))

	assert.Equal(t, ExitTempFail, ExitCode(rateLimited))
	assert.Equal(t, ExitTempFail, ExitCode(fmt.Errorf("wrapped: %w", rateLimited)))
	assert.Equal(t, ExitFailure, ExitCode(notFound))
	assert.Equal(t, ExitFailure, ExitCode(spotifyErrors.New("Unknown error")))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("plain")))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]string{"name": "Kid A"}))
	assert.Equal(t, "{\n  \"name\": \"Kid A\"\n}\n", buf.String())
}

func TestFail(t *testing.T) {
	e := env.Null()
	rateLimited := spotifyErrors.New("Too many requests", spotifyErrors.WithHTTPStatus(429))

	assert.Equal(t, ExitTempFail, Fail(e, "Failed to search", rateLimited))
	assert.Equal(t, ExitFailure, Fail(e, "Failed to search", errors.New("plain")))
}
