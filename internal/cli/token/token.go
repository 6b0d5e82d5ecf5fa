package token

import (
	"fmt"
	"io"
	"os"
	"time"

	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"
	gatewayJWT "spotify-gateway/internal/jwt"

	"github.com/spf13/cobra"
)

// Signs a gateway JWT with the configured private key
func Issue(env *env.Env, out io.Writer, subject string, admin bool, ttl time.Duration) error {
	if env.Config.PrivateKey == "" || env.Config.JWKSPath == "" {
		return fmt.Errorf("Please set PRIVATE_KEY_PATH and JWKS_PATH environment variables")
	}

	env.Logger.Debug("Reading private key")
	key, err := os.ReadFile(env.Config.PrivateKey)
	if err != nil {
		return fmt.Errorf("Failed to read private key: %w", err)
	}

	env.Logger.Debug("Signing token")
	signed, err := gatewayJWT.CreateJWT(gatewayJWT.JWTParams{
		Subject: subject,
		Admin:   admin,
		TTL:     ttl,
	}, key, env.Config.JWKSPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, signed)
	return err
}

func Run(cmd *cobra.Command, args []string, env *env.Env) int {
	admin, _ := cmd.Flags().GetBool("admin")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if err := Issue(env, cmd.OutOrStdout(), args[0], admin, ttl); err != nil {
		return output.Fail(env, "Failed to issue token", err)
	}
	return output.ExitOK
}
