package slackbot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/lukec11/steve/internal/metrics"
)

// Deliverer posts a message through an increasingly permissive fallback
// chain: post to the channel, join the channel and retry, then fall back
// to the requester's DM with a hint on how to fix channel delivery.
type Deliverer struct {
	api       API
	botUserID string
	log       zerolog.Logger
}

// NewDeliverer creates a Deliverer. botUserID is named in the tier-3
// invite hint.
func NewDeliverer(api API, botUserID string, log zerolog.Logger) *Deliverer {
	return &Deliverer{
		api:       api,
		botUserID: botUserID,
		log:       log.With().Str("component", "deliverer").Logger(),
	}
}

// Deliver posts blocks to channelID, escalating through the fallback
// tiers. It fails only when every tier is exhausted; every tier carries
// the same plain-text fallback.
func (d *Deliverer) Deliver(ctx context.Context, channelID, userID string, blocks []slack.Block, fallback string) error {
	// Tier 1: post directly to the channel.
	err := d.api.PostMessage(ctx, channelID, blocks, fallback)
	if err == nil {
		metrics.DeliveryAttempts.WithLabelValues("1", "ok").Inc()
		return nil
	}
	metrics.DeliveryAttempts.WithLabelValues("1", "fail").Inc()
	d.log.Info().Err(err).Str("channel", channelID).Msg("direct post failed, trying to join")

	// Tier 2: the bot is usually just not a member yet; join and retry once.
	if joinErr := d.api.JoinChannel(ctx, channelID); joinErr == nil {
		if err = d.api.PostMessage(ctx, channelID, blocks, fallback); err == nil {
			metrics.DeliveryAttempts.WithLabelValues("2", "ok").Inc()
			return nil
		}
	}
	metrics.DeliveryAttempts.WithLabelValues("2", "fail").Inc()
	d.log.Info().Err(err).Str("channel", channelID).Msg("join-and-post failed, falling back to DM")

	// Tier 3: DM the requester instead, with a hint for next time.
	// This is the terminal tier; its failure fails the delivery.
	if err := d.api.PostMessage(ctx, userID, blocks, fallback); err != nil {
		metrics.DeliveryAttempts.WithLabelValues("3", "fail").Inc()
		return fmt.Errorf("all delivery tiers exhausted: %w", err)
	}
	metrics.DeliveryAttempts.WithLabelValues("3", "ok").Inc()

	hint := "In order to use the bot in the channel, please invite <@" + d.botUserID + ">!"
	if err := d.api.PostPlain(ctx, userID, hint); err != nil {
		d.log.Warn().Err(err).Msg("failed to post invite hint")
	}
	return nil
}
