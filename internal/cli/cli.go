package cli

import (
	"context"
	"log"
	"os"

	"spotify-gateway/internal/cli/failures"
	"spotify-gateway/internal/cli/lookup"
	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/cli/player"
	"spotify-gateway/internal/cli/playlist"
	"spotify-gateway/internal/cli/token"
	"spotify-gateway/internal/config"
	"spotify-gateway/internal/env"
	"spotify-gateway/internal/logging"

	"github.com/spf13/cobra"
)

type runFunc func(*cobra.Command, []string, *env.Env) int

var rootCmd = &cobra.Command{
	Use:   "spotify-gateway",
	Short: "Spotify gateway CLI",
	Args:  cobra.OnlyValidArgs,
}

// Loads the configuration, builds the environment, runs the command and
// releases the environment. Returns the process exit status.
func execute(cmd *cobra.Command, args []string, needsSpotify bool, run runFunc) int {
	logger := logging.New()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return output.ExitFailure
	}
	if needsSpotify {
		if err := cfg.ValidateSpotify(); err != nil {
			logger.Error("Missing Spotify credentials", "error", err)
			return output.ExitFailure
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	environment, err := env.FromConfig(ctx, cfg, logger, nil)
	if err != nil {
		logger.Error("Failed to build environment", "error", err)
		return output.ExitFailure
	}
	defer environment.Close()
	return run(cmd, args, environment)
}

// Adapts a command body to cobra, exiting with its status
func withEnv(needsSpotify bool, run runFunc) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if code := execute(cmd, args, needsSpotify, run); code != output.ExitOK {
			os.Exit(code)
		}
	}
}

var trackCmd = &cobra.Command{
	Use:   "track <id|uri|url>",
	Short: "Show a track",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunTrack),
}

var artistCmd = &cobra.Command{
	Use:   "artist <id|uri|url>",
	Short: "Show an artist",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunArtist),
}

var albumTracksCmd = &cobra.Command{
	Use:   "album-tracks <id|uri|url>",
	Short: "List an album's tracks",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunAlbumTracks),
}

var showCmd = &cobra.Command{
	Use:   "show <id|uri|url>",
	Short: "Show a podcast",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunShow),
}

var episodeCmd = &cobra.Command{
	Use:   "episode <id|uri|url>",
	Short: "Show a podcast episode",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunEpisode),
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Spotify catalog",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, lookup.RunSearch),
}

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Read and edit playlists",
}

var playlistItemsCmd = &cobra.Command{
	Use:   "items <playlist>",
	Short: "List a playlist's items",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(true, playlist.RunItems),
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist> <item>...",
	Short: "Add tracks or episodes to a playlist",
	Args:  cobra.MinimumNArgs(2),
	Run:   withEnv(true, playlist.RunAdd),
}

var playerCmd = &cobra.Command{
	Use:       "player <play|pause|next|previous|queue> [uri]...",
	Short:     "Control playback on the user's devices",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{player.ActionPlay, player.ActionPause, player.ActionNext, player.ActionPrev, player.ActionQueue},
	Run:       withEnv(true, player.Run),
}

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List recorded Spotify failures",
	Run:   withEnv(false, failures.Run),
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token <subject>",
	Short: "Issue a gateway JWT",
	Args:  cobra.ExactArgs(1),
	Run:   withEnv(false, token.Run),
}

func init() {
	trackCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	artistCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	artistCmd.Flags().Bool("top-tracks", false, "show the artist's top tracks instead")
	albumTracksCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	albumTracksCmd.Flags().Int("limit", 50, "number of tracks")
	albumTracksCmd.Flags().Int("offset", 0, "index of the first track")
	showCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	episodeCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	searchCmd.Flags().String("type", "track", "comma separated item types (album, artist, track)")
	searchCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	searchCmd.Flags().Int("limit", 10, "number of results per type")
	playlistItemsCmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	playlistItemsCmd.Flags().Int("limit", 100, "number of items")
	playlistItemsCmd.Flags().Int("offset", 0, "index of the first item")
	playlistAddCmd.Flags().Int("position", -1, "insert position (default append)")
	playerCmd.Flags().String("device", "", "target device id (default the active device)")
	failuresCmd.Flags().Int("limit", 20, "number of failures to show")
	issueTokenCmd.Flags().Bool("admin", false, "grant the admin claim")
	issueTokenCmd.Flags().Duration("ttl", 0, "token lifetime (default 1h)")

	playlistCmd.AddCommand(playlistItemsCmd, playlistAddCmd)
	rootCmd.AddCommand(
		trackCmd, artistCmd, albumTracksCmd, showCmd, episodeCmd, searchCmd,
		playlistCmd, playerCmd, failuresCmd, issueTokenCmd,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
