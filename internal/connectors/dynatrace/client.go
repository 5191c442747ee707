package dynatrace

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

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages is the default page ceiling per endpoint.
	DefaultMaxPages = 1000
)

// Client fetches paginated collections from one environment.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	settings      domain.CollectSettings
	maxPages      int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimiter replaces the rate limiter derived from the settings.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// NewClient creates a client for baseURL. Settings.MaxPages of zero
// disables the page ceiling.
func NewClient(
	baseURL string,
	tokenProvider driven.TokenProvider,
	settings domain.CollectSettings,
	opts ...Option,
) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(settings.RequestsPerSecond),
		settings:      settings,
		maxPages:      settings.MaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint joins a relative API path onto the base URL.
func (c *Client) Endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// FetchV1 drains the legacy API for an entity type.
func (c *Client) FetchV1(
	ctx context.Context,
	t domain.EntityType,
	observe driven.PageObserver,
) ([]any, error) {
	path, ok := V1Path(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
	}
	label := domain.DataTypeName(t, domain.APIv1)
	return c.FetchHeaderPaged(ctx, c.Endpoint(path), V1Query(c.settings.PageSize), label, observe)
}

// FetchV2 drains the v2 entities API for an entity type.
func (c *Client) FetchV2(
	ctx context.Context,
	t domain.EntityType,
	observe driven.PageObserver,
) (*domain.EntityCollection, error) {
	selector, ok := V2Selector(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
	}
	label := domain.DataTypeName(t, domain.APIv2)
	query := V2Query(selector, c.settings.RelativeTime, c.settings.FieldsFor(t))
	return c.FetchBodyPaged(ctx, c.Endpoint(V2EntitiesPath), query, label, observe)
}

// getPage performs one GET and returns the raw body and headers.
// A 401 invalidates the credential and retries exactly once.
func (c *Client) getPage(ctx context.Context, endpoint string, query url.Values) ([]byte, http.Header, error) {
	status, header, body, err := c.do(ctx, endpoint, query)
	if err != nil {
		return nil, nil, err
	}

	if status == http.StatusUnauthorized {
		logger.Debug("%s rejected the credential, refreshing", endpoint)
		c.tokenProvider.Invalidate()

		status, header, body, err = c.do(ctx, endpoint, query)
		if err != nil {
			return nil, nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, nil, &domain.FetchError{
				URL:        endpoint,
				StatusCode: status,
				Body:       strings.TrimSpace(string(body)),
				Err:        domain.ErrAuthRejected,
			}
		}
	}

	if status < 200 || status >= 300 {
		return nil, nil, &domain.FetchError{
			URL:        endpoint,
			StatusCode: status,
			Body:       strings.TrimSpace(string(body)),
			Err:        fmt.Errorf("unexpected status %d", status),
		}
	}

	return body, header, nil
}

// do sends a single authenticated request.
func (c *Client) do(ctx context.Context, endpoint string, query url.Values) (int, http.Header, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, nil, nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	cred, err := c.tokenProvider.GetCredential(ctx)
	if err != nil {
		return 0, nil, nil, err
	}

	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return 0, nil, nil, &domain.FetchError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.tokenProvider.Scheme()+" "+cred.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, &domain.FetchError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, &domain.FetchError{URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	return resp.StatusCode, resp.Header, body, nil
}

// decodeJSON parses a response body keeping numbers as json.Number.
func decodeJSON(endpoint string, body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("parse JSON response: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &domain.FetchError{URL: endpoint, Err: errors.New("parse JSON response: trailing data after document")}
	}
	return v, nil
}
