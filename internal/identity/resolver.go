// Package identity maps raw in-game names to stable account UUIDs and
// display nicknames. Resolution is best-effort by design: a player whose
// lookups fail still renders under their raw name, and never blocks the
// rest of the roster.
package identity

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lukec11/steve/internal/metrics"
	"github.com/lukec11/steve/internal/nickstore"
)

// Resolved is a player identity after lookup. ID is uuid.Nil when the
// account could not be resolved; HasNickname is false when display should
// fall back to RawName.
type Resolved struct {
	ID          uuid.UUID
	RawName     string
	Nickname    string
	HasNickname bool
}

// DisplayName returns the name to show for the player.
func (r Resolved) DisplayName() string {
	if r.HasNickname {
		return r.Nickname
	}
	return r.RawName
}

// CensorRule is one ordered pattern substitution applied to names before
// display.
type CensorRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultCensorRules unwraps tokens a player has wrapped in inline
// formatting delimiters, so a name like "*xX_gamer_Xx*" cannot smuggle
// markup into the roster.
var DefaultCensorRules = []CensorRule{
	{regexp.MustCompile("[*_`!|](\\w+)[*_`!|]"), "$1"},
}

// Resolver resolves player identities through the Mojang API and the
// external nickname store.
type Resolver struct {
	mojang *MojangClient
	nicks  nickstore.Store
	cache  UUIDCache
	censor []CensorRule
	log    zerolog.Logger
}

// NewResolver creates a Resolver. cache may be nil to disable caching;
// censor may be nil to skip censorship.
func NewResolver(mojang *MojangClient, nicks nickstore.Store, cache UUIDCache, censor []CensorRule, log zerolog.Logger) *Resolver {
	return &Resolver{
		mojang: mojang,
		nicks:  nicks,
		cache:  cache,
		censor: censor,
		log:    log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve maps a raw in-game name to a Resolved identity. It never
// returns an error: every lookup failure degrades to the raw name.
func (r *Resolver) Resolve(ctx context.Context, rawName string) Resolved {
	resolved := Resolved{RawName: r.applyCensor(rawName)}

	id, err := r.lookupUUID(ctx, rawName)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			metrics.IdentityLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.IdentityLookups.WithLabelValues("error").Inc()
			r.log.Debug().Err(err).Str("player", rawName).Msg("uuid lookup failed")
		}
		return resolved
	}
	resolved.ID = id
	metrics.IdentityLookups.WithLabelValues("hit").Inc()

	nick, err := r.nicks.Nickname(ctx, id)
	if err != nil {
		// Not-found and found-but-null both mean "use the raw name";
		// real failures degrade the same way, logged for diagnosis.
		if !errors.Is(err, nickstore.ErrNotFound) {
			r.log.Debug().Err(err).Str("player", rawName).Msg("nickname lookup failed")
		}
		return resolved
	}

	resolved.Nickname = r.applyCensor(nick)
	resolved.HasNickname = true
	return resolved
}

// lookupUUID consults the cache before hitting the Mojang API.
func (r *Resolver) lookupUUID(ctx context.Context, rawName string) (uuid.UUID, error) {
	if r.cache != nil {
		if id, ok := r.cache.Get(ctx, rawName); ok {
			return id, nil
		}
	}

	id, err := r.mojang.UUID(ctx, rawName)
	if err != nil {
		return uuid.Nil, err
	}

	if r.cache != nil {
		r.cache.Put(ctx, rawName, id)
	}
	return id, nil
}

func (r *Resolver) applyCensor(name string) string {
	for _, rule := range r.censor {
		name = rule.Pattern.ReplaceAllString(name, rule.Replacement)
	}
	return name
}
