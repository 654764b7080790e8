package gateway

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

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/logging"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Options configure a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/v1.
	BaseURL string
	// Timeout bounds every request; zero disables it.
	Timeout time.Duration
	// Transport is the underlying round tripper; nil means
	// http.DefaultTransport.
	Transport http.RoundTripper
	// OnUnauthorized is called after a rejected token has been cleared.
	OnUnauthorized func()
}

// Client is the request gateway.
type Client struct {
	base *url.URL
	root *url.URL
	http *http.Client
	log  logging.Logger
}

// New builds a Client. The base URL is parsed once and reused for every
// call.
func New(opts Options, store credstore.Store, logger logging.Logger) (*Client, error) {
	if store == nil {
		return nil, errors.New("gateway: credential store is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("gateway: base URL must be absolute http(s), got %q", opts.BaseURL)
	}

	next := opts.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	log := logger.With("component", "gateway")

	return &Client{
		base: base,
		root: &url.URL{Scheme: base.Scheme, Host: base.Host},
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &authTransport{
				next:           next,
				store:          store,
				onUnauthorized: opts.OnUnauthorized,
				log:            log,
			},
		},
		log: log,
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends body (if any) as JSON and decodes a 2xx response into result
// (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, target string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, b)
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
