package cli

import (
	"os"
	"testing"

	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_ACCESS_TOKEN", "SPOTIFY_LANGUAGE",
		"SPOTIFY_BASE_URL", "SPOTIFY_RETRIES", "DB_URL", "JWKS_PATH", "PRIVATE_KEY_PATH", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestExecute_SpotifyCommandNeedsCredentials(t *testing.T) {
	clearEnv(t)
	called := false

	code := execute(&cobra.Command{}, nil, true, func(*cobra.Command, []string, *env.Env) int {
		called = true
		return output.ExitOK
	})
	assert.Equal(t, output.ExitFailure, code)
	assert.False(t, called)
}

func TestExecute_LocalCommandSkipsCredentials(t *testing.T) {
	clearEnv(t)
	var got *env.Env

	code := execute(&cobra.Command{}, []string{"operator"}, false, func(_ *cobra.Command, args []string, e *env.Env) int {
		assert.Equal(t, []string{"operator"}, args)
		got = e
		return output.ExitTempFail
	})
	assert.Equal(t, output.ExitTempFail, code)
	if assert.NotNil(t, got) {
		assert.Nil(t, got.Database)
	}
}

func TestExecute_AccessToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTIFY_ACCESS_TOKEN", "token")

	code := execute(&cobra.Command{}, nil, true, func(*cobra.Command, []string, *env.Env) int {
		return output.ExitOK
	})
	assert.Equal(t, output.ExitOK, code)
}
