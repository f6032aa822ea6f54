package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/popcorn/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Popcorn/1.0"

	// Upper bound for a response body; OMDb answers are a few KB
	maxBodySize = 1 << 20
)

// Client implements domain.MovieRepository for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter // nil = unlimited
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit caps outgoing requests at perSecond, allowing short bursts
// of a few keystrokes. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(int(perSecond), 1))
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the titles matching query in API order.
// A "Response":"False" answer yields domain.ErrMovieNotFound, a body without
// the marker domain.ErrTransport.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	var resp SearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if err := resp.check(); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	return MapSearchResults(resp.Search), nil
}

// GetDetail returns the full record for imdbID
func (c *Client) GetDetail(ctx context.Context, imdbID string) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("i", imdbID)

	var resp DetailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("detail %s: %w", imdbID, err)
	}
	if err := resp.check(); err != nil {
		return nil, fmt.Errorf("detail %s: %w", imdbID, err)
	}

	return MapDetail(&resp, imdbID), nil
}

// get performs a GET against the API root and decodes the JSON body into dest.
// Cancellation surfaces as domain.ErrCanceled, network and status failures
// as domain.ErrTransport.
func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if isCanceled(ctx, err) {
				return domain.ErrCanceled
			}
			return fmt.Errorf("%w: rate limit: %v", domain.ErrTransport, err)
		}
	}

	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "params", redact(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isCanceled(ctx, err) {
			return domain.ErrCanceled
		}
		c.logger.Error("omdb request failed", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isCanceled(ctx, err) {
			return domain.ErrCanceled
		}
		return fmt.Errorf("%w: failed to read response: %v", domain.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: unexpected status code: %d", domain.ErrTransport, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

// redact hides the api key in logged parameters
func redact(params url.Values) string {
	safe := url.Values{}
	for k, v := range params {
		if k == "apikey" {
			safe.Set(k, "***")
			continue
		}
		safe[k] = v
	}
	return safe.Encode()
}
