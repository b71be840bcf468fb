// Package nickstore reads player nicknames from the external per-identity
// store owned by the HCCore server plugin. Both backends serve the same
// one-JSON-document-per-player layout.
package nickstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound means the store has no nickname for the player. A record
// whose nickname field is null reports the same: both mean "use the raw
// account name".
var ErrNotFound = errors.New("nickname not found")

// Store defines the interface for nickname lookup.
// Both FileStore and HTTPStore implement this interface.
type Store interface {
	// Nickname returns the player's assigned nickname, or ErrNotFound
	// when none is set. Any other error is a lookup failure.
	Nickname(ctx context.Context, id uuid.UUID) (string, error)
}

// record is the stored document shape. A missing or null nickname field
// decodes to nil.
type record struct {
	Nickname *string `json:"nickname"`
}

func (r record) nickname() (string, error) {
	if r.Nickname == nil || *r.Nickname == "" {
		return "", ErrNotFound
	}
	return *r.Nickname, nil
}
