// Package client contains typed HTTP wrappers for the three remote
// backend services the portal depends on: the auth/user service, the
// stall service and the reservation service.  Each exported method maps
// to exactly one HTTP request.  Wrappers read the session token through
// an injected session.Source and never write session state.
//
// Failed requests surface as *APIError carrying the human-readable
// message from the response body's "message" field; when the body has
// no parsable message the error falls back to "<operation> failed
// (<status>)".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/expohall/stall-reservation-portal/internal/session"
)

// ErrAuthRequired is returned before any request is issued when a
// protected operation is attempted without a session token.
var ErrAuthRequired = errors.New("authentication required, please log in")

// APIError is a non-2xx response from a remote service.
type APIError struct {
	Status  int    // HTTP status code
	Op      string // operation that failed, e.g. "fetch reservations"
	Message string // message extracted from the response body
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed (%d)", e.Op, e.Status)
}

// ValidationError is a local, pre-request input failure.  No network
// call has been made when one is returned.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// token attachment modes for base.do
const (
	authOptional = iota // attach the token when the session has one
	authRequired        // fail with ErrAuthRequired when it doesn't
)

// base carries the plumbing shared by the three resource clients.
type base struct {
	http    *http.Client
	baseURL string
	session session.Source
}

func newBase(baseURL string, sess session.Source, timeout time.Duration) base {
	return base{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
	}
}

// do issues one request against the service.  Non-2xx responses are
// converted to *APIError with the body's message field; the caller gets
// the open response body on success and must close it.
func (b *base) do(ctx context.Context, method, path string, query url.Values, body any, mode int, op string) (*http.Response, error) {
	return b.doHeaders(ctx, method, path, query, body, mode, op, nil)
}

// doHeaders is do with extra request headers, for the rare endpoint
// that expects more than the standard set.
func (b *base) doHeaders(ctx context.Context, method, path string, query url.Values, body any, mode int, op string, headers map[string]string) (*http.Response, error) {
	tok := b.session.Session(ctx).Token
	if mode == authRequired && tok == "" {
		return nil, ErrAuthRequired
	}

	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, apiError(resp, op)
	}
	return resp, nil
}

// getJSON runs a GET and decodes the 2xx body into out.
func (b *base) getJSON(ctx context.Context, path string, query url.Values, mode int, op string, out any) error {
	resp, err := b.do(ctx, http.MethodGet, path, query, nil, mode, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	return nil
}

// decodeBody decodes an already-open 2xx response body into out.
func decodeBody(resp *http.Response, out any, op string) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	return nil
}

// apiError builds the error for a non-2xx response.  The body is
// expected to be a JSON object with a "message" field; anything else
// falls back to the generic status-coded message.
func apiError(resp *http.Response, op string) error {
	e := &APIError{Status: resp.StatusCode, Op: op}
	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && json.Unmarshal(raw, &body) == nil && body.Message != "" {
		e.Message = body.Message
	}
	return e
}
