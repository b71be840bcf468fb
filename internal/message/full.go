package message

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
)

// DeleteActionID identifies the delete button in interaction callbacks.
// Its value carries the requesting user's ID, so deletion authorization
// reads first-class metadata instead of slicing rendered text.
const DeleteActionID = "delete_message"

// mentionPattern matches the user mention inside an attribution line.
var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)>`)

// FullMessage assembles the complete Block Kit payload for every
// configured server, in configuration order, plus the plain-text fallback
// carried on every delivery tier. Each server group ends with a delete
// button and a "Requested by" attribution; the separator before the final
// group is dropped so the message never trails off with a bare divider.
func (b *Builder) FullMessage(ctx context.Context, requestingUserID string) ([]slack.Block, string, error) {
	servers, err := b.servers()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load server list: %w", err)
	}

	var blocks []slack.Block
	var fallback []string
	for _, server := range servers {
		text := b.Status(ctx, server)
		fallback = append(fallback, text)

		blocks = append(blocks,
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
				nil, nil,
			),
			slack.NewDividerBlock(),
			slack.NewActionBlock(
				"",
				slack.NewButtonBlockElement(
					DeleteActionID,
					requestingUserID,
					slack.NewTextBlockObject(slack.PlainTextType, "Delete", true, false),
				).WithStyle(slack.StyleDanger),
			),
			slack.NewContextBlock(
				"",
				slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Requested by <@%s>", requestingUserID), false, false),
			),
		)
	}

	return stripDanglingDivider(blocks), strings.Join(fallback, "\n"), nil
}

// stripDanglingDivider removes the divider immediately preceding the
// final delete/attribution group. The assembled message must never end
// with a bare separator, and no two separators may sit adjacent.
func stripDanglingDivider(blocks []slack.Block) []slack.Block {
	if len(blocks) < 4 {
		return blocks
	}
	// Per-server groups are [section, divider, actions, context]; the
	// divider to drop sits third from the end.
	i := len(blocks) - 3
	if blocks[i].BlockType() != slack.MBTDivider {
		return blocks
	}
	return append(blocks[:i], blocks[i+1:]...)
}

// PosterID recovers the original requester from a posted message's
// blocks. The delete button's value is the authoritative source; the
// attribution text is kept as a fallback for messages posted before the
// button carried metadata.
func PosterID(blocks []slack.Block) (string, bool) {
	for _, block := range blocks {
		actions, ok := block.(*slack.ActionBlock)
		if !ok || actions.Elements == nil {
			continue
		}
		for _, element := range actions.Elements.ElementSet {
			button, ok := element.(*slack.ButtonBlockElement)
			if !ok || button.ActionID != DeleteActionID {
				continue
			}
			if button.Value != "" {
				return button.Value, true
			}
		}
	}

	for _, block := range blocks {
		ctxBlock, ok := block.(*slack.ContextBlock)
		if !ok {
			continue
		}
		for _, element := range ctxBlock.ContextElements.Elements {
			text, ok := element.(*slack.TextBlockObject)
			if !ok {
				continue
			}
			if m := mentionPattern.FindStringSubmatch(text.Text); m != nil {
				return m[1], true
			}
		}
	}

	return "", false
}
