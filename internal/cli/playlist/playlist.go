package playlist

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"
	"spotify-gateway/internal/spotify"

	"github.com/spf13/cobra"
)

// Prints one page of a playlist's items
func Items(ctx context.Context, env *env.Env, out io.Writer, id string, opts spotify.PlaylistItemsOptions) error {
	env.Logger.DebugContext(ctx, "Retrieving playlist items", slog.String("id", id))
	page, err := env.Spotify.PlaylistItems(ctx, id, opts)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, page)
}

// Adds items to a playlist and prints the new snapshot ID
func Add(ctx context.Context, env *env.Env, out io.Writer, id string, items []string, position int) error {
	env.Logger.DebugContext(ctx, "Adding playlist items", slog.String("id", id), slog.Int("count", len(items)))
	snapshotID, err := env.Spotify.PlaylistAddItems(ctx, id, items, position)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, snapshotID)
	return err
}

func RunItems(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	opts := spotify.PlaylistItemsOptions{Market: market, Limit: limit, Offset: offset}
	if err := Items(cmd.Context(), env, cmd.OutOrStdout(), args[0], opts); err != nil {
		return output.Fail(env, "Failed to retrieve playlist items", err)
	}
	return output.ExitOK
}

func RunAdd(cmd *cobra.Command, args []string, env *env.Env) int {
	position, _ := cmd.Flags().GetInt("position")
	if err := Add(cmd.Context(), env, cmd.OutOrStdout(), args[0], args[1:], position); err != nil {
		return output.Fail(env, "Failed to add playlist items", err)
	}
	return output.ExitOK
}
