package lookup

import (
	"context"
	"io"
	"log/slog"

	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"
	"spotify-gateway/internal/spotify"

	"github.com/spf13/cobra"
)

func Track(ctx context.Context, env *env.Env, out io.Writer, id, market string) error {
	env.Logger.DebugContext(ctx, "Retrieving track", slog.String("id", id))
	track, err := env.Spotify.Track(ctx, id, market)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, track)
}

func Artist(ctx context.Context, env *env.Env, out io.Writer, id string, top bool, market string) error {
	if top {
		env.Logger.DebugContext(ctx, "Retrieving artist top tracks", slog.String("id", id))
		tracks, err := env.Spotify.ArtistTopTracks(ctx, id, market)
		if err != nil {
			return err
		}
		return output.PrintJSON(out, tracks)
	}

	env.Logger.DebugContext(ctx, "Retrieving artist", slog.String("id", id))
	artist, err := env.Spotify.Artist(ctx, id)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, artist)
}

func Search(ctx context.Context, env *env.Env, out io.Writer, query, searchType string, opts spotify.SearchOptions) error {
	env.Logger.DebugContext(ctx, "Searching catalog", slog.String("q", query), slog.String("type", searchType))
	result, err := env.Spotify.Search(ctx, query, searchType, opts)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, result)
}

func AlbumTracks(ctx context.Context, env *env.Env, out io.Writer, id string, opts spotify.PageOptions) error {
	env.Logger.DebugContext(ctx, "Retrieving album tracks", slog.String("id", id))
	page, err := env.Spotify.AlbumTracks(ctx, id, opts)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, page)
}

// Prints a show, or an episode when episode is set
func Show(ctx context.Context, env *env.Env, out io.Writer, id string, episode bool, market string) error {
	if episode {
		env.Logger.DebugContext(ctx, "Retrieving episode", slog.String("id", id))
		res, err := env.Spotify.Episode(ctx, id, market)
		if err != nil {
			return err
		}
		return output.PrintJSON(out, res)
	}

	env.Logger.DebugContext(ctx, "Retrieving show", slog.String("id", id))
	res, err := env.Spotify.Show(ctx, id, market)
	if err != nil {
		return err
	}
	return output.PrintJSON(out, res)
}

func RunTrack(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	if err := Track(cmd.Context(), env, cmd.OutOrStdout(), args[0], market); err != nil {
		return output.Fail(env, "Failed to retrieve track", err)
	}
	return output.ExitOK
}

func RunArtist(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	top, _ := cmd.Flags().GetBool("top-tracks")
	if err := Artist(cmd.Context(), env, cmd.OutOrStdout(), args[0], top, market); err != nil {
		return output.Fail(env, "Failed to retrieve artist", err)
	}
	return output.ExitOK
}

func RunSearch(cmd *cobra.Command, args []string, env *env.Env) int {
	searchType, _ := cmd.Flags().GetString("type")
	market, _ := cmd.Flags().GetString("market")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := spotify.SearchOptions{Market: market, Limit: limit}
	if err := Search(cmd.Context(), env, cmd.OutOrStdout(), args[0], searchType, opts); err != nil {
		return output.Fail(env, "Failed to search", err)
	}
	return output.ExitOK
}

func RunAlbumTracks(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	opts := spotify.PageOptions{Market: market, Limit: limit, Offset: offset}
	if err := AlbumTracks(cmd.Context(), env, cmd.OutOrStdout(), args[0], opts); err != nil {
		return output.Fail(env, "Failed to retrieve album tracks", err)
	}
	return output.ExitOK
}

func RunShow(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	if err := Show(cmd.Context(), env, cmd.OutOrStdout(), args[0], false, market); err != nil {
		return output.Fail(env, "Failed to retrieve show", err)
	}
	return output.ExitOK
}

func RunEpisode(cmd *cobra.Command, args []string, env *env.Env) int {
	market, _ := cmd.Flags().GetString("market")
	if err := Show(cmd.Context(), env, cmd.OutOrStdout(), args[0], true, market); err != nil {
		return output.Fail(env, "Failed to retrieve episode", err)
	}
	return output.ExitOK
}
