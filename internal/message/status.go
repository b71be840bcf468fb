// Package message builds the Slack payloads the bot posts: one status
// block per configured server, assembled into a full Block Kit message
// with a delete affordance and requester attribution.
package message

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lukec11/steve/internal/identity"
	"github.com/lukec11/steve/internal/mcstatus"
	"github.com/lukec11/steve/internal/metrics"
	"github.com/lukec11/steve/internal/roster"
	"github.com/lukec11/steve/internal/serverlist"
)

const (
	defaultEmote = ":bust_in_silhouette:"
	weedEmote    = ":weed:"

	// The easter egg triggers only at exactly this many players online,
	// with a 1-in-5 chance.
	easterEggCount = 4
	easterEggDie   = 5
)

// StatusPinger queries a Minecraft server for its live status.
type StatusPinger interface {
	Ping(ctx context.Context, address string) (*mcstatus.Status, error)
}

// IdentityResolver maps a raw in-game name to a display identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawName string) identity.Resolved
}

// ServerLoader returns the ordered list of configured servers.
type ServerLoader func() ([]serverlist.ServerConfig, error)

// Builder renders server status text and assembles full messages.
type Builder struct {
	pinger   StatusPinger
	resolver IdentityResolver
	servers  ServerLoader
	randInt  func(n int) int
	log      zerolog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(pinger StatusPinger, resolver IdentityResolver, servers ServerLoader, log zerolog.Logger) *Builder {
	return &Builder{
		pinger:   pinger,
		resolver: resolver,
		servers:  servers,
		randInt:  rand.IntN,
		log:      log.With().Str("component", "builder").Logger(),
	}
}

// Status renders the status text for one server: down, empty, or a
// populated roster. A server that cannot be reached short-circuits; no
// identity lookups are issued for it.
func (b *Builder) Status(ctx context.Context, server serverlist.ServerConfig) string {
	status, err := b.pinger.Ping(ctx, server.Address)
	if err != nil {
		metrics.StatusQueries.WithLabelValues("down").Inc()
		b.log.Warn().Err(err).Str("server", server.Name).Msg("status query failed")
		return fmt.Sprintf("*%s:* Server is down! :scream:", server.Name)
	}

	if status.Players.Online == 0 {
		metrics.StatusQueries.WithLabelValues("empty").Inc()
		return fmt.Sprintf("*%s:* No players online :disappointed:", server.Name)
	}
	metrics.StatusQueries.WithLabelValues("populated").Inc()

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s:* %d out of %d %s online:\n",
		server.Name, status.Players.Online, status.Players.Max, b.emote(status, server))

	// The sample may be a strict subset of the online players, or empty
	// despite a nonzero count; render exactly what was advertised.
	resolved := make([]identity.Resolved, 0, len(status.Players.Sample))
	for _, player := range status.Players.Sample {
		resolved = append(resolved, b.resolver.Resolve(ctx, player.Name))
	}
	for _, line := range roster.Render(resolved) {
		sb.WriteString(line)
	}
	return sb.String()
}

// emote picks the header emote. At exactly easterEggCount players online,
// and unless the server disables it, one uniform draw in [0,4] turns up
// the alternate emote on the single value 4.
func (b *Builder) emote(status *mcstatus.Status, server serverlist.ServerConfig) string {
	if status.Players.Online == easterEggCount && server.EasterEggEnabled() {
		if b.randInt(easterEggDie) == easterEggDie-1 {
			return weedEmote
		}
	}
	return defaultEmote
}
