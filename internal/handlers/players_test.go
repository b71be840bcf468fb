package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

type fakeBuilder struct {
	blocks   []slack.Block
	fallback string
	err      error
}

func (f *fakeBuilder) FullMessage(_ context.Context, _ string) ([]slack.Block, string, error) {
	return f.blocks, f.fallback, f.err
}

type fakeDeliverer struct {
	delivered chan deliveredMsg
}

type deliveredMsg struct {
	channel, user, fallback string
}

func (f *fakeDeliverer) Deliver(_ context.Context, channelID, userID string, _ []slack.Block, fallback string) error {
	f.delivered <- deliveredMsg{channelID, userID, fallback}
	return nil
}

func commandForm(token, teamID string) string {
	form := url.Values{
		"token":      {token},
		"team_id":    {teamID},
		"channel_id": {"C999"},
		"user_id":    {"U111"},
		"command":    {"/players"},
	}
	return form.Encode()
}

func postCommand(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Players(rec, req)
	return rec
}

func TestPlayersRespondsPromptlyAndDelivers(t *testing.T) {
	deliverer := &fakeDeliverer{delivered: make(chan deliveredMsg, 1)}
	builder := &fakeBuilder{
		blocks:   []slack.Block{slack.NewDividerBlock()},
		fallback: "summary",
	}
	h := NewHandler(testConfig(), builder, deliverer, &fakeChat{}, nil, zerolog.Nop())

	rec := postCommand(t, h, commandForm("shhh", "T123"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	select {
	case msg := <-deliverer.delivered:
		if msg.channel != "C999" || msg.user != "U111" || msg.fallback != "summary" {
			t.Fatalf("unexpected delivery: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never happened")
	}
}

func TestPlayersRejectsBadToken(t *testing.T) {
	deliverer := &fakeDeliverer{delivered: make(chan deliveredMsg, 1)}
	h := NewHandler(testConfig(), &fakeBuilder{}, deliverer, &fakeChat{}, nil, zerolog.Nop())

	rec := postCommand(t, h, commandForm("wrong", "T123"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	select {
	case msg := <-deliverer.delivered:
		t.Fatalf("unauthorized command must have no side effects, got %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPlayersRejectsWrongTeam(t *testing.T) {
	deliverer := &fakeDeliverer{delivered: make(chan deliveredMsg, 1)}
	h := NewHandler(testConfig(), &fakeBuilder{}, deliverer, &fakeChat{}, nil, zerolog.Nop())

	rec := postCommand(t, h, commandForm("shhh", "TEVIL"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
