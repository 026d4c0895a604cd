package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clinivault/clinivault/internal/client/apierror"
)

// Get issues a GET request and decodes the JSON response into out.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into
// out. Either may be nil.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request, discarding any response body.
func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures are opaque to this layer and returned unmodified.
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.responseError(ctx, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// newRequest builds an outbound request. The bearer token is read from the
// store at dispatch time: an in-flight request keeps the header value it was
// given even if a refresh mutates the store afterwards. When no token is
// present the Authorization header is simply omitted; rejecting
// unauthenticated requests is the backend's job.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.store.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// responseError turns a non-2xx response into a StructuredError. Bodies
// carrying the backend failure payload are normalized through apierror; any
// other body becomes a StructuredError built from the HTTP status line, so
// callers always receive a single renderable message.
func (c *HTTPClient) responseError(ctx context.Context, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var p apierror.Payload
	if err := json.Unmarshal(data, &p); err == nil && p.StatusCode != 0 {
		se := apierror.FromPayload(p)
		c.log.Debug(ctx, "api error", "status", se.StatusCode, "kind", se.Kind, "path", se.Path)
		return se
	}

	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return apierror.New(resp.StatusCode, http.StatusText(resp.StatusCode), []string{msg}, "")
}
