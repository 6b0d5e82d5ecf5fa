package failures

import (
	"context"
	"errors"
	"io"

	"spotify-gateway/internal/api/models/responses"
	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"

	"github.com/spf13/cobra"
)

var ErrJournalDisabled = errors.New("failure journal is disabled: set DB_URL")

// Prints the most recent recorded Spotify failures
func List(ctx context.Context, env *env.Env, out io.Writer, limit int) error {
	if env.Database == nil {
		return ErrJournalDisabled
	}

	env.Logger.DebugContext(ctx, "Listing failures")
	rows, err := env.Database.ListFailures(ctx, int32(limit))
	if err != nil {
		return err
	}
	res, err := responses.FromFailures(rows)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, res)
}

func Run(cmd *cobra.Command, _ []string, env *env.Env) int {
	limit, _ := cmd.Flags().GetInt("limit")
	if err := List(cmd.Context(), env, cmd.OutOrStdout(), limit); err != nil {
		return output.Fail(env, "Failed to list failures", err)
	}
	return output.ExitOK
}
