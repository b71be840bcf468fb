package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/lukec11/steve/internal/config"
)

// MessageBuilder assembles the full roster payload for a requesting user.
type MessageBuilder interface {
	FullMessage(ctx context.Context, requestingUserID string) ([]slack.Block, string, error)
}

// Deliverer posts an assembled payload through the fallback chain.
type Deliverer interface {
	Deliver(ctx context.Context, channelID, userID string, blocks []slack.Block, fallback string) error
}

// Chat is the subset of the Slack API the handlers call directly.
type Chat interface {
	PostEphemeral(ctx context.Context, channelID, userID, text string) error
	DeleteMessage(ctx context.Context, channelID, timestamp string) error
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	builder   MessageBuilder
	deliverer Deliverer
	chat      Chat
	checks    map[string]HealthCheck
	log       zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(cfg *config.Config, builder MessageBuilder, deliverer Deliverer, chat Chat, checks map[string]HealthCheck, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		builder:   builder,
		deliverer: deliverer,
		chat:      chat,
		checks:    checks,
		log:       log.With().Str("component", "handlers").Logger(),
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// commandValid checks the shared-secret token and workspace ID carried on
// a slash command against the configured values.
func (h *Handler) commandValid(cmd slack.SlashCommand) bool {
	return cmd.Token == h.cfg.SlackVerifyToken && cmd.TeamID == h.cfg.SlackTeamID
}

// ephemeralResponse answers a slash command with text shown only to the
// invoking user.
func (h *Handler) ephemeralResponse(w http.ResponseWriter, text string) {
	h.JSON(w, http.StatusOK, map[string]string{
		"response_type": "ephemeral",
		"text":          text,
	})
}
