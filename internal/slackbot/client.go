// Package slackbot wraps the Slack Web API behind a narrow interface and
// implements the escalating delivery chain for posting bot messages.
package slackbot

import (
	"context"
	"time"

	"github.com/slack-go/slack"
)

// API is the chat platform boundary. Each operation can fail
// independently; callers decide how to degrade.
type API interface {
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, fallback string) error
	PostPlain(ctx context.Context, channelID, text string) error
	PostEphemeral(ctx context.Context, channelID, userID, text string) error
	DeleteMessage(ctx context.Context, channelID, timestamp string) error
	JoinChannel(ctx context.Context, channelID string) error
}

// Client implements API on the Slack Web API.
type Client struct {
	api     *slack.Client
	timeout time.Duration
}

var _ API = (*Client)(nil)

// NewClient creates a Slack client with a bounded per-call timeout.
func NewClient(botToken string, timeout time.Duration) *Client {
	return &Client{
		api:     slack.New(botToken),
		timeout: timeout,
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// PostMessage posts a rich Block Kit message. The fallback text is what
// notification banners and block-incapable surfaces show.
func (c *Client) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, fallback string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionAsUser(true),
	)
	return err
}

// PostPlain posts a plain-text message.
func (c *Client) PostPlain(ctx context.Context, channelID, text string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
	)
	return err
}

// PostEphemeral posts a message visible only to userID.
func (c *Client) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err := c.api.PostEphemeralContext(ctx, channelID, userID,
		slack.MsgOptionText(text, false),
	)
	return err
}

// DeleteMessage deletes a previously posted message by timestamp.
func (c *Client) DeleteMessage(ctx context.Context, channelID, timestamp string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, _, err := c.api.DeleteMessageContext(ctx, channelID, timestamp)
	return err
}

// JoinChannel joins a public channel so the bot can post there.
func (c *Client) JoinChannel(ctx context.Context, channelID string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, _, _, err := c.api.JoinConversationContext(ctx, channelID)
	return err
}
