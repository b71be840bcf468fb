package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/lukec11/steve/internal/metrics"
)

// buildTimeout bounds one full build-and-deliver run across all
// configured servers.
const buildTimeout = 30 * time.Second

// Players handles the /players slash command. The endpoint answers
// immediately; the roster is built and pushed through the chat client
// asynchronously so Slack never times the command out.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "invalid slash command")
		return
	}

	if !h.commandValid(cmd) {
		h.log.Warn().Str("team_id", cmd.TeamID).Msg("slash command failed verification")
		h.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	metrics.CommandsReceived.WithLabelValues("players").Inc()

	channelID := cmd.ChannelID
	userID := cmd.UserID

	// The request context dies as soon as we answer Slack; the build runs
	// on its own bounded context.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
		defer cancel()

		blocks, fallback, err := h.builder.FullMessage(ctx, userID)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to build roster message")
			if err := h.chat.PostEphemeral(ctx, channelID, userID, "Sorry, something went wrong building the roster."); err != nil {
				h.log.Warn().Err(err).Msg("failed to post build-failure notice")
			}
			return
		}

		if err := h.deliverer.Deliver(ctx, channelID, userID, blocks, fallback); err != nil {
			h.log.Error().Err(err).Str("channel", channelID).Msg("all delivery tiers exhausted")
		}
	}()

	w.WriteHeader(http.StatusOK)
}
