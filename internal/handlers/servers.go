package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/lukec11/steve/internal/metrics"
	"github.com/lukec11/steve/internal/serverlist"
)

// AddServer handles the /addserver slash command: appends a server to
// the shared configuration list. Usage: /addserver <name> <host:port>
func (h *Handler) AddServer(w http.ResponseWriter, r *http.Request) {
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
	metrics.CommandsReceived.WithLabelValues("addserver").Inc()

	fields := strings.Fields(cmd.Text)
	if len(fields) != 2 {
		h.ephemeralResponse(w, "Usage: /addserver <name> <host:port>")
		return
	}

	server := serverlist.ServerConfig{Name: fields[0], Address: fields[1]}
	if err := serverlist.Append(h.cfg.ServersFile, server); err != nil {
		h.log.Error().Err(err).Str("server", server.Name).Msg("failed to add server")
		h.ephemeralResponse(w, fmt.Sprintf("Couldn't add %s: %v", server.Name, err))
		return
	}

	h.log.Info().Str("server", server.Name).Str("address", server.Address).Msg("server added")
	h.ephemeralResponse(w, fmt.Sprintf("Added *%s* (%s) to the server list!", server.Name, server.Address))
}
