package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/lukec11/steve/internal/message"
	"github.com/lukec11/steve/internal/metrics"
)

// Interact handles the Delete button callback. Only the user who
// requested the original message, or the configured admin, may delete
// it; everyone else gets an ephemeral rejection and the message stays.
func (h *Handler) Interact(w http.ResponseWriter, r *http.Request) {
	payload := r.FormValue("payload")
	if payload == "" {
		h.Error(w, http.StatusBadRequest, "missing payload")
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if callback.Token != h.cfg.SlackVerifyToken {
		h.log.Warn().Msg("interaction callback failed verification")
		h.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requesterID := callback.User.ID
	channelID := callback.Channel.ID
	timestamp := callback.Message.Timestamp
	ctx := r.Context()

	posterID, ok := message.PosterID(callback.Message.Blocks.BlockSet)
	if !ok {
		h.log.Warn().Str("channel", channelID).Msg("no poster identity in message blocks")
		h.notify(ctx, w, channelID, requesterID, "Sorry, I can't tell who posted that message.")
		return
	}

	if requesterID != posterID && requesterID != h.cfg.AdminUserID {
		h.log.Info().
			Str("requester", requesterID).
			Str("poster", posterID).
			Msg("delete request rejected")
		metrics.DeletionsRejected.Inc()
		h.notify(ctx, w, channelID, requesterID, "Sorry, you can't do that!")
		return
	}

	if err := h.chat.DeleteMessage(ctx, channelID, timestamp); err != nil {
		// The platform can refuse the deletion independently of our
		// authorization; explain instead of failing.
		h.log.Warn().Err(err).Str("channel", channelID).Msg("platform rejected message deletion")
		h.notify(ctx, w, channelID, requesterID, "Slack wouldn't let me delete that message.")
		return
	}

	metrics.MessagesDeleted.Inc()
	h.JSON(w, http.StatusOK, map[string]bool{"delete_original": true})
}

// notify posts an ephemeral explanation to the requester and answers the
// callback without deleting anything.
func (h *Handler) notify(ctx context.Context, w http.ResponseWriter, channelID, userID, text string) {
	if err := h.chat.PostEphemeral(ctx, channelID, userID, text); err != nil {
		h.log.Warn().Err(err).Msg("failed to post ephemeral notice")
	}
	w.WriteHeader(http.StatusOK)
}
