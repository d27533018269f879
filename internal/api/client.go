// Package api provides HTTP communication with the fittrack server.
//
// All network traffic in the client goes through Client.Request, which
// normalizes transport and server failures into domain.ClientError so
// every caller sees one error shape.
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/fittrackhq/fittrack-go/internal/domain"
	"github.com/fittrackhq/fittrack-go/internal/infra/tlsroots"
)

// DefaultTimeout bounds a single request round-trip.
const DefaultTimeout = 30 * time.Second

var validMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// bodyMethods are the methods that carry a request body. GET and DELETE
// never send one, even when a body is supplied.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// Client issues HTTP requests against the fittrack API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient swaps the underlying http.Client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithCAFile adds a PEM CA bundle to the trusted roots, for servers
// fronted by a private CA. An unreadable bundle leaves the default
// roots in place.
func WithCAFile(path string) Option {
	return func(c *Client) {
		pool, err := tlsroots.Pool(path)
		if err != nil {
			return
		}
		c.client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool},
		}
	}
}

// NewClient creates a client for the given server address. A bare
// host:port gets an http:// prefix.
func NewClient(server string, opts ...Option) *Client {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request issues one HTTP call and returns the raw JSON payload.
//
// endpoint must be a non-empty path and method one of GET, POST, PUT,
// DELETE or PATCH (case-insensitive); anything else fails with a
// validation error before any network I/O. body is serialized as JSON
// and attached only for POST, PUT and PATCH.
//
// Failures are always *domain.ClientError: kind "api" for a non-2xx
// response (with status and decoded payload), "network" when no response
// was received, "setup" when the request could not be built.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any, headers map[string]string) (json.RawMessage, error) {
	if endpoint == "" {
		return nil, domain.NewValidationError("endpoint must be a non-empty path")
	}

	m := strings.ToUpper(method)
	if !validMethods[m] {
		return nil, domain.NewValidationError(
			fmt.Sprintf("invalid HTTP method: %s, must be one of GET, POST, PUT, DELETE or PATCH", method))
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.NewSetupError(err)
		}
	}

	var bodyReader io.Reader
	if body != nil && bodyMethods[m] {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewSetupError(fmt.Errorf("marshal body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, m, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, domain.NewSetupError(err)
	}

	req.Header.Set("User-Agent", "fittrack/1.0")
	req.Header.Set("X-Request-ID", ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, payload)
	}

	return json.RawMessage(payload), nil
}

// apiError builds a ClientError from a non-2xx response, keeping the
// decoded payload and surfacing the server's message when it has one.
func apiError(status int, payload []byte) *domain.ClientError {
	var data any
	serverMsg := ""
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data); err != nil {
			data = nil
		}
	}
	if m, ok := data.(map[string]any); ok {
		if s, ok := m["message"].(string); ok {
			serverMsg = s
		}
	}
	return domain.NewAPIError(status, data, serverMsg)
}

// Decode unmarshals a raw payload into target. A shape mismatch is a
// protocol violation, not a transport failure.
func Decode(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return domain.NewProtocolError(fmt.Sprintf("unexpected response payload: %v", err))
	}
	return nil
}
