package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"moola/internal/domain"
	"moola/internal/store"
)

// DefaultTimeout bounds a single request, matching the mobile client.
const DefaultTimeout = 120 * time.Second

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error body is read for its message.
const maxErrorBody = 64 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// MessageOf returns the server message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// Gateway performs JSON requests against the API base URL.
type Gateway struct {
	base   string
	http   *http.Client
	tokens domain.TokenStore
	events domain.SessionEvents
	logger *slog.Logger

	// logoutMu serializes the check-and-clear on 401 so one expiry yields one LOGOUT.
	logoutMu sync.Mutex
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client (which has DefaultTimeout).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.http = c
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a Gateway for base (e.g. http://localhost:3000/v1).
func New(base string, tokens domain.TokenStore, events domain.SessionEvents, opts ...Option) *Gateway {
	g := &Gateway{
		base:   strings.TrimSuffix(base, "/"),
		http:   &http.Client{Timeout: DefaultTimeout},
		tokens: tokens,
		events: events,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get issues a GET and decodes the JSON response into out (if non-nil).
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with in as the JSON body and decodes into out (if non-nil).
func (g *Gateway) Post(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPost, path, in, out)
}

// Do performs one request.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	attached := g.authorize(ctx, req)

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Warn("api request failed",
			"method", method, "path", path, "request_id", reqID, "error", err)
		return err
	}
	defer resp.Body.Close()

	g.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"authenticated", attached,
		"duration", time.Since(start),
	)

	if resp.StatusCode/100 != 2 {
		se := &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: readMessage(resp.Body),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			g.expire(ctx)
		}
		return se
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// authorize attaches the stored access token, if any, and reports whether it did.
func (g *Gateway) authorize(ctx context.Context, req *http.Request) bool {
	pair, ok, err := g.tokens.Get(ctx)
	if err != nil {
		g.logger.Warn("token store read failed; sending unauthenticated", "error", err)
		return false
	}
	if !ok {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	return true
}

// expire clears the tokens and emits LOGOUT, once per stored session.
//
// A 401 for a request that carried an older token still clears whatever is
// stored now, including tokens saved by a login that raced the request.
func (g *Gateway) expire(ctx context.Context) {
	g.logoutMu.Lock()
	defer g.logoutMu.Unlock()

	pair, ok, err := g.tokens.Get(ctx)
	if err != nil {
		g.logger.Warn("token store read failed on 401", "error", err)
	}
	if err := g.tokens.Clear(ctx); err != nil {
		g.logger.Error("clearing tokens after 401 failed", "error", err)
	}
	if !ok && err == nil {
		return
	}
	g.logger.Info("session expired; logging out", "token_fp", store.Fingerprint(pair.AccessToken))
	g.events.Emit(domain.EventLogout)
}

// readMessage extracts {"message": "..."} from an error body, falling back to the
// trimmed text.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(b))
}
