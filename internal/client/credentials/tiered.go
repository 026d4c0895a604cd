package credentials

import (
	"context"
	"fmt"
)

// tieredStore implements Store over a (durable, volatile) tier pair. The
// token lives in tokenTier; the user key is routed per write by the persist
// flag and looked up in both tiers.
type tieredStore struct {
	tokenTier Tier
	durable   Tier
	volatile  Tier
}

// NewDurableStore returns the production Store variant that keeps the session
// token in the durable tier.
func NewDurableStore(durable, volatile Tier) Store {
	return &tieredStore{tokenTier: durable, durable: durable, volatile: volatile}
}

// NewVolatileStore returns the production Store variant that keeps the
// session token in the volatile tier, for sessions that must not outlive the
// process.
func NewVolatileStore(durable, volatile Tier) Store {
	return &tieredStore{tokenTier: volatile, durable: durable, volatile: volatile}
}

// NewMemoryStore returns a Store backed entirely by process memory.
// Intended for tests.
func NewMemoryStore() Store {
	return NewDurableStore(NewMemoryTier(), NewMemoryTier())
}

func (s *tieredStore) GetToken(ctx context.Context) (string, error) {
	return s.tokenTier.Get(ctx, tokenKey)
}

func (s *tieredStore) SetToken(ctx context.Context, token string) error {
	if err := s.tokenTier.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

func (s *tieredStore) RemoveToken(ctx context.Context) error {
	if err := s.tokenTier.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *tieredStore) GetUserKey(ctx context.Context) (string, error) {
	key, err := s.durable.Get(ctx, userKeyKey)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	return s.volatile.Get(ctx, userKeyKey)
}

func (s *tieredStore) SetUserKey(ctx context.Context, key string, persist bool) error {
	selected, other := s.durable, s.volatile
	if !persist {
		selected, other = s.volatile, s.durable
	}

	if err := selected.Set(ctx, userKeyKey, key); err != nil {
		return fmt.Errorf("set user key: %w", err)
	}
	// Purge the other tier so a stale key cannot linger there after the user
	// changes the remember-me preference between sessions.
	if err := other.Delete(ctx, userKeyKey); err != nil {
		return fmt.Errorf("purge stale user key: %w", err)
	}
	return nil
}

func (s *tieredStore) RemoveUserKey(ctx context.Context) error {
	if err := s.durable.Delete(ctx, userKeyKey); err != nil {
		return fmt.Errorf("remove user key: %w", err)
	}
	if err := s.volatile.Delete(ctx, userKeyKey); err != nil {
		return fmt.Errorf("remove user key: %w", err)
	}
	return nil
}

// Clear assumes nothing about the current state: both secrets are deleted
// from both tiers regardless of which tier holds a value.
func (s *tieredStore) Clear(ctx context.Context) error {
	for _, tier := range []Tier{s.durable, s.volatile} {
		if err := tier.Delete(ctx, tokenKey); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		if err := tier.Delete(ctx, userKeyKey); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	return nil
}
