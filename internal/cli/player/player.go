package player

import (
	"context"
	"fmt"
	"log/slog"

	"spotify-gateway/internal/cli/output"
	"spotify-gateway/internal/env"
	"spotify-gateway/internal/spotify"

	"github.com/spf13/cobra"
)

const (
	ActionPlay  = "play"
	ActionPause = "pause"
	ActionNext  = "next"
	ActionPrev  = "previous"
	ActionQueue = "queue"
)

// Sends a playback command to the user's active device, or to deviceID
func Control(ctx context.Context, env *env.Env, action, deviceID string, uris []string) error {
	env.Logger.DebugContext(ctx, "Sending playback command", slog.String("action", action))
	switch action {
	case ActionPlay:
		return env.Spotify.StartPlayback(ctx, spotify.PlayOptions{DeviceID: deviceID, URIs: uris})
	case ActionPause:
		return env.Spotify.PausePlayback(ctx, deviceID)
	case ActionNext:
		return env.Spotify.NextTrack(ctx, deviceID)
	case ActionPrev:
		return env.Spotify.PreviousTrack(ctx, deviceID)
	case ActionQueue:
		if len(uris) == 0 {
			return fmt.Errorf("queue needs a track or episode")
		}
		for _, uri := range uris {
			if err := env.Spotify.AddToQueue(ctx, uri, deviceID); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("Unknown playback action %q", action)
	}
}

func Run(cmd *cobra.Command, args []string, env *env.Env) int {
	deviceID, _ := cmd.Flags().GetString("device")
	if err := Control(cmd.Context(), env, args[0], deviceID, args[1:]); err != nil {
		return output.Fail(env, "Playback command failed", err)
	}
	return output.ExitOK
}
