// Package api implements the HTTP client that backs every network call of the
// CliniVault client. It owns the credential store, derives the authentication
// predicate, and attaches the bearer token to outbound requests. Failed
// responses are normalized through apierror before reaching callers.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/clinivault/clinivault/internal/client/credentials"
	"github.com/clinivault/clinivault/internal/logging"
)

// Client is the operation surface consumed by feature services. The concrete
// implementation is HTTPClient; tests provide lightweight fakes.
type Client interface {
	SetToken(ctx context.Context, token string) error
	SetUserKey(ctx context.Context, key string, persist bool) error
	SetAuth(ctx context.Context, token, key string, persist bool) error
	ClearAuth(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	Token(ctx context.Context) (string, error)
	UserKey(ctx context.Context) (string, error)

	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// HTTPClient talks JSON over HTTP to the CliniVault backend. A credential
// store is a required dependency; construction is not defensively guarded.
type HTTPClient struct {
	baseURL string
	store   credentials.Store
	http    *http.Client
	log     logging.Logger
}

// Option customizes an HTTPClient at construction time.
type Option func(*HTTPClient)

// WithHTTPClient substitutes the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithLogger substitutes the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// New constructs an HTTPClient over the given store. Alternate stores (e.g.
// the in-memory one) can be injected without touching call sites.
func New(baseURL string, store credentials.Store, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the session token. The token is opaque at this layer:
// no shape validation, no expiry inspection.
func (c *HTTPClient) SetToken(ctx context.Context, token string) error {
	return c.store.SetToken(ctx, token)
}

// SetUserKey stores the user-held encryption key under the chosen durability
// policy.
func (c *HTTPClient) SetUserKey(ctx context.Context, key string, persist bool) error {
	return c.store.SetUserKey(ctx, key, persist)
}

// SetAuth stores both secrets: the token first, then the key. The ordering is
// an observable contract that instrumentation built on this client may rely
// on, not an implementation detail.
func (c *HTTPClient) SetAuth(ctx context.Context, token, key string, persist bool) error {
	if err := c.SetToken(ctx, token); err != nil {
		return err
	}
	return c.SetUserKey(ctx, key, persist)
}

// ClearAuth destroys both secrets. Idempotent.
func (c *HTTPClient) ClearAuth(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsAuthenticated reports whether the user is fully usable: a session token
// alone is not sufficient, because protected content cannot be decrypted
// without the key. The value is computed fresh from the store on every call.
//
// The two reads are not atomic together; a concurrent mutation between them
// may be observed as a half-updated pair. The window is short and contention
// is low, so this is accepted.
func (c *HTTPClient) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := c.store.GetToken(ctx)
	if err != nil {
		return false, err
	}
	key, err := c.store.GetUserKey(ctx)
	if err != nil {
		return false, err
	}
	return token != "" && key != "", nil
}

// Token returns the current session token, or empty when absent.
func (c *HTTPClient) Token(ctx context.Context) (string, error) {
	return c.store.GetToken(ctx)
}

// UserKey returns the current encryption key, or empty when absent.
func (c *HTTPClient) UserKey(ctx context.Context) (string, error) {
	return c.store.GetUserKey(ctx)
}
