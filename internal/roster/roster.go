// Package roster turns resolved player identities into the display lines
// of a status message. Names are sanitized so they cannot break Slack's
// inline formatting, and interleaved with a zero-width character so Slack
// never parses them as mentions.
package roster

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lukec11/steve/internal/identity"
)

// zeroWidth is inserted between every pair of adjacent characters in a
// display name. The name stays visually identical but no longer matches
// any mention or auto-link pattern.
const zeroWidth = "‌"

// botMarker tags nicknames assigned to automated accounts. Their lines
// render struck through, after all player lines.
const botMarker = "[bot]"

// sanitizeRule is one ordered pattern substitution applied to names
// before display.
type sanitizeRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// sanitizeRules strips the characters that act as inline formatting
// delimiters in Slack mrkdwn. A single unmatched delimiter corrupts the
// remainder of the message, so they are removed outright.
var sanitizeRules = []sanitizeRule{
	{regexp.MustCompile("[_~*`|]"), ""},
}

// Sanitize removes formatting-breaking characters from a display name.
func Sanitize(name string) string {
	for _, rule := range sanitizeRules {
		name = rule.pattern.ReplaceAllString(name, rule.replacement)
	}
	return name
}

// Interleave inserts the zero-width character between every pair of
// adjacent characters in name.
func Interleave(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + (len(runes)-1)*len(zeroWidth))
	for i, r := range runes {
		if i > 0 {
			b.WriteString(zeroWidth)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// display sanitizes and interleaves a name for safe rendering.
func display(name string) string {
	return Interleave(Sanitize(name))
}

// Line renders one player as a list item. Nicknamed players show the
// nickname with the raw account name in parentheses; everyone else shows
// the raw name alone.
func Line(res identity.Resolved) string {
	body := display(res.RawName)
	if res.HasNickname && res.Nickname != res.RawName {
		body = display(res.Nickname) + " (" + body + ")"
	}
	if IsBot(res) {
		// Strikethrough wraps the text, not the trailing newline.
		body = "~" + body + "~"
	}
	return "- " + body + "\n"
}

// IsBot reports whether the resolved nickname carries the bot marker.
func IsBot(res identity.Resolved) bool {
	return res.HasNickname && strings.Contains(strings.ToLower(res.Nickname), botMarker)
}

// Render formats a roster sample as ordered display lines: players first,
// then bots, each bucket sorted lexicographically. Duplicate entries for
// the same account are dropped.
func Render(resolved []identity.Resolved) []string {
	seen := make(map[string]bool, len(resolved))
	var players, bots []string

	for _, res := range resolved {
		key := strings.ToLower(res.RawName)
		if seen[key] {
			continue
		}
		seen[key] = true

		if IsBot(res) {
			bots = append(bots, Line(res))
		} else {
			players = append(players, Line(res))
		}
	}

	// Sort each bucket in place, then concatenate.
	sort.Strings(players)
	sort.Strings(bots)
	return append(players, bots...)
}
