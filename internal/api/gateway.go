// Package api is the HTTP layer between the client and the tracker
// backend: one gateway that injects the bearer credential and folds
// every error response into a single message, and one thin client per
// server-owned resource collection.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsystem/trackdesk/internal/session"
)

// TokenSource supplies the current bearer token, "" when logged out.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// Error is the normalized server error: the one message page
// controllers show to the user. Status is kept for tests and logging,
// never for control flow in the UI.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// authEndpoint matches requests that must never carry a bearer token.
var authEndpoint = regexp.MustCompile(`/auth/(login|register|refresh)/?$`)

// bearerTransport attaches the token to outgoing requests when one is
// present and structurally valid. Auth endpoints are left untouched.
type bearerTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil || authEndpoint.MatchString(req.URL.Path) {
		return t.base.RoundTrip(req)
	}
	token := session.CleanToken(t.tokens.Token())
	if token == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}

// Gateway owns the shared HTTP client. It does not retry, cache or
// queue; one call is one round trip.
type Gateway struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewGateway(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{tokens: tokens, base: http.DefaultTransport},
		},
		log: log.With().Str("component", "api").Logger(),
	}
}

func (g *Gateway) get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

func (g *Gateway) put(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPut, path, body, out)
}

func (g *Gateway) delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	g.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeError turns an error response into a single message:
// a structured {"error"} or {"message"} field wins, then the raw body
// text, then a generic fallback.
func normalizeError(resp *http.Response) *Error {
	const fallback = "Unknown error"

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	text := strings.TrimSpace(string(raw))

	msg := fallback
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Error != "":
			msg = body.Error
		case body.Message != "":
			msg = body.Message
		case text != "":
			msg = text
		}
	} else if text != "" {
		msg = text
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}
