package clover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API host, used when no base URL is
	// configured.
	DefaultBaseURL = "https://api.clover.com"

	// DefaultTimeout bounds each API request.
	DefaultTimeout = 30 * time.Second

	// monthFetchLimit is the page size used for the bulk batch listing. The
	// API is queried once without server-side date filtering and the result
	// filtered locally, so the merchant's total batch count must stay below
	// this bound for month reports to be complete.
	monthFetchLimit = 901
)

// StatusError is returned when the API answers with a non-2xx status. It
// carries the raw response body so authentication and permission failures are
// diagnosable from the error message alone.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clover API returned status %d: %s", e.StatusCode, e.Body)
}

// Client performs authenticated requests against the Clover v3 merchant API.
type Client struct {
	baseURL    string
	merchantID string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request and degradation logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for one merchant. An empty baseURL falls back to
// the production host.
func NewClient(baseURL, merchantID, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		merchantID: merchantID,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request issues an authenticated GET against
// {base_url}/v3/merchants/{merchant_id}{endpoint} and returns the raw response
// body. Non-2xx responses become a *StatusError carrying the body. Requests
// are never retried.
func (c *Client) Request(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/v3/merchants/%s%s", c.baseURL, c.merchantID, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("clover API request completed",
		slog.String("endpoint", endpoint),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// MonthBatches fetches the merchant's most recent batches and filters them to
// those created within the given month, in local time. The December window
// ends one second before January 1 of the following year.
//
// A request failure is logged and yields an empty result rather than an
// error: a month that cannot be fetched reports as a month with no activity.
func (c *Client) MonthBatches(ctx context.Context, year int, month time.Month) []Batch {
	start, end := MonthWindow(year, month)

	c.logger.Info("fetching batches",
		slog.Int("year", year),
		slog.String("month", month.String()),
		slog.Time("window_start", start),
		slog.Time("window_end", end))

	params := url.Values{"limit": []string{strconv.Itoa(monthFetchLimit)}}
	body, err := c.Request(ctx, "/batches", params)
	if err != nil {
		c.logger.Error("failed to fetch batches, treating month as empty",
			slog.Int("year", year),
			slog.String("month", month.String()),
			slog.String("error", err.Error()))
		return nil
	}

	var list batchList
	if err := json.Unmarshal(body, &list); err != nil {
		c.logger.Error("failed to parse batch listing, treating month as empty",
			slog.String("error", err.Error()))
		return nil
	}

	var filtered []Batch
	for _, batch := range list.Elements {
		if batch.CreatedTime == 0 {
			continue
		}
		created := batch.CreatedAt()
		if created.Before(start) || created.After(end) {
			continue
		}
		filtered = append(filtered, batch)
	}

	c.logger.Info("filtered batches for month",
		slog.Int("fetched", len(list.Elements)),
		slog.Int("in_month", len(filtered)))

	return filtered
}

// BatchDetail fetches a single batch by id. A failure is logged and yields a
// zero-valued batch.
func (c *Client) BatchDetail(ctx context.Context, batchID string) Batch {
	body, err := c.Request(ctx, "/batches/"+batchID, nil)
	if err != nil {
		c.logger.Error("failed to fetch batch detail",
			slog.String("batch_id", batchID),
			slog.String("error", err.Error()))
		return Batch{}
	}

	var batch Batch
	if err := json.Unmarshal(body, &batch); err != nil {
		c.logger.Error("failed to parse batch detail",
			slog.String("batch_id", batchID),
			slog.String("error", err.Error()))
		return Batch{}
	}
	return batch
}

// MonthWindow returns the inclusive local-time bounds of a calendar month:
// the first instant of day one through one second before the first instant of
// the following month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	var end time.Time
	if month == time.December {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.Local).Add(-time.Second)
	} else {
		end = time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).Add(-time.Second)
	}
	return start, end
}
