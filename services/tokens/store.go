package tokens

import (
	"context"
	"errors"
)

var ErrTokenNotFound = errors.New("token not found")

// Store persists token records keyed by (kind, hash). Every backend must
// produce identical observable results for the lifecycle manager's queries
// given the same sequence of operations; that contract is what allows
// swapping backends without touching calling code.
type Store interface {
	// Save persists a record. TTL-capable backends must evict the record at
	// ExpiresAt without an explicit sweep; the relational backend keeps
	// expired rows and relies on the lifecycle manager's lazy revocation.
	Save(ctx context.Context, rec Record) error

	// FindByHash returns the record for (kind, hash) or ErrTokenNotFound.
	FindByHash(ctx context.Context, kind Kind, hash string) (*Record, error)

	// SetRevoked advances the revoked flag false to true as an atomic
	// conditional update. It must preserve the record's original expiry
	// window; re-writing a record never resets or extends its TTL.
	// Returns ErrTokenNotFound when no record exists for (kind, hash).
	SetRevoked(ctx context.Context, kind Kind, hash string) error
}

func storeKey(kind Kind, hash string) string {
	return string(kind) + ":" + hash
}
