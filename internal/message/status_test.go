package message

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lukec11/steve/internal/identity"
	"github.com/lukec11/steve/internal/mcstatus"
	"github.com/lukec11/steve/internal/serverlist"
)

type fakePinger struct {
	status *mcstatus.Status
	err    error
}

func (f *fakePinger) Ping(_ context.Context, _ string) (*mcstatus.Status, error) {
	return f.status, f.err
}

type fakeResolver struct {
	calls int
	nicks map[string]string
}

func (f *fakeResolver) Resolve(_ context.Context, rawName string) identity.Resolved {
	f.calls++
	if nick, ok := f.nicks[rawName]; ok {
		return identity.Resolved{RawName: rawName, Nickname: nick, HasNickname: true}
	}
	return identity.Resolved{RawName: rawName}
}

func newTestBuilder(t *testing.T, pinger StatusPinger, resolver IdentityResolver, servers []serverlist.ServerConfig) *Builder {
	t.Helper()
	loader := func() ([]serverlist.ServerConfig, error) {
		return servers, nil
	}
	return NewBuilder(pinger, resolver, loader, zerolog.Nop())
}

func TestStatusDown(t *testing.T) {
	resolver := &fakeResolver{}
	b := newTestBuilder(t, &fakePinger{err: mcstatus.ErrDown}, resolver, nil)

	got := b.Status(context.Background(), serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"})
	if want := "*Vanilla:* Server is down! :scream:"; got != want {
		t.Fatalf("down status: got %q, want %q", got, want)
	}
	if resolver.calls != 0 {
		t.Fatalf("down server must not trigger identity lookups, got %d", resolver.calls)
	}
}

func TestStatusEmpty(t *testing.T) {
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{Online: 0, Max: 20},
	}}, &fakeResolver{}, nil)

	got := b.Status(context.Background(), serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"})
	if want := "*Vanilla:* No players online :disappointed:"; got != want {
		t.Fatalf("empty status: got %q, want %q", got, want)
	}
}

func TestStatusPopulated(t *testing.T) {
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{
			Online: 2,
			Max:    20,
			Sample: []mcstatus.Player{{Name: "Alice"}, {Name: "Bob"}},
		},
	}}, &fakeResolver{}, nil)

	got := b.Status(context.Background(), serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"})
	want := "*Vanilla:* 2 out of 20 :bust_in_silhouette: online:\n" +
		"- A‌l‌i‌c‌e\n" +
		"- B‌o‌b\n"
	if got != want {
		t.Fatalf("populated status:\ngot  %q\nwant %q", got, want)
	}
}

func TestStatusSampleSubset(t *testing.T) {
	// Servers advertise a sample; it may be empty even with players online.
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{Online: 7, Max: 20},
	}}, &fakeResolver{}, nil)

	got := b.Status(context.Background(), serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"})
	if want := "*Vanilla:* 7 out of 20 :bust_in_silhouette: online:\n"; got != want {
		t.Fatalf("subset sample: got %q, want %q", got, want)
	}
}

func TestEasterEggDistribution(t *testing.T) {
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{Online: 4, Max: 20},
	}}, &fakeResolver{}, nil)

	rng := rand.New(rand.NewPCG(1, 2))
	b.randInt = rng.IntN

	const trials = 10000
	weed := 0
	server := serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"}
	for i := 0; i < trials; i++ {
		if strings.Contains(b.Status(context.Background(), server), ":weed:") {
			weed++
		}
	}

	// One uniform draw in [0,4]; expect roughly a fifth of trials.
	ratio := float64(weed) / trials
	if ratio < 0.17 || ratio > 0.23 {
		t.Fatalf("easter egg ratio %.3f outside [0.17, 0.23]", ratio)
	}
}

func TestEasterEggDisabled(t *testing.T) {
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{Online: 4, Max: 20},
	}}, &fakeResolver{}, nil)
	b.randInt = func(int) int { return 4 } // would always fire

	disabled := false
	server := serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565", WeedEasterEgg: &disabled}
	if got := b.Status(context.Background(), server); strings.Contains(got, ":weed:") {
		t.Fatalf("disabled easter egg still fired: %q", got)
	}
}

func TestEasterEggOnlyAtFourOnline(t *testing.T) {
	b := newTestBuilder(t, &fakePinger{status: &mcstatus.Status{
		Players: mcstatus.Players{Online: 5, Max: 20},
	}}, &fakeResolver{}, nil)
	b.randInt = func(int) int { return 4 }

	server := serverlist.ServerConfig{Name: "Vanilla", Address: "x:25565"}
	if got := b.Status(context.Background(), server); strings.Contains(got, ":weed:") {
		t.Fatalf("easter egg fired at online=5: %q", got)
	}
}
