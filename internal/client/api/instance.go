package api

import (
	"sync"

	"github.com/clinivault/clinivault/internal/client/credentials"
)

var (
	instance    *HTTPClient
	once        sync.Once
	initialized bool
)

// Init builds the process-wide shared client. Safe to call multiple times —
// only the first call has any effect; every caller receives the same
// instance. Tests that need an alternate store should use New directly or
// Reset before re-initializing.
func Init(baseURL string, store credentials.Store, opts ...Option) *HTTPClient {
	once.Do(func() {
		instance = New(baseURL, store, opts...)
		initialized = true
	})
	return instance
}

// Default returns the shared client. Panics if Init has not been called yet.
func Default() *HTTPClient {
	if !initialized {
		panic("api: Default() called before Init()")
	}
	return instance
}

// Reset tears down the shared client so the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	instance = nil
	initialized = false
}
