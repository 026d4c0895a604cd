// Package credentials manages the two client-held secrets: the short-lived
// session token and the user-held encryption key. The two are stored
// independently; nothing couples them structurally. The key may live in a
// durable tier (survives restarts) or a volatile tier (gone with the
// process), chosen per write by the "remember me" flag.
package credentials

import "context"

// Store keys used inside a tier.
const (
	tokenKey   = "auth_token"
	userKeyKey = "user_key"
)

// Store is the credential storage capability. Absent values are reported as
// empty strings; neither secret may legitimately be empty.
//
// Implementations do not serialize access across operations: each operation
// is atomic on its own, but a reader issuing two consecutive gets may observe
// a half-updated pair while a concurrent mutation is in progress.
type Store interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context) error

	GetUserKey(ctx context.Context) (string, error)
	// SetUserKey writes the key to the durable tier when persist is true and
	// to the volatile tier otherwise. The non-selected tier is purged on
	// every call, so at most one tier ever holds the current key.
	SetUserKey(ctx context.Context, key string, persist bool) error
	RemoveUserKey(ctx context.Context) error

	// Clear removes the token and the key from both tiers unconditionally.
	// It is idempotent and safe on an already-empty store.
	Clear(ctx context.Context) error
}

// Tier is the external key-value collaborator a Store routes secrets to.
// Get reports an absent key as ("", nil).
type Tier interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
