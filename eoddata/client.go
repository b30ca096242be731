// Package eoddata is a client for the EODData end-of-day market data API.
// All endpoint groups route through a single GET helper that appends the
// ApiKey parameter and, when call accounting is attached, records the call
// and enforces quotas before anything goes on the wire.
package eoddata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eodhub/eoddata-go/accounting"
)

// DefaultBaseURL is the official EODData API endpoint.
const DefaultBaseURL = "https://api.eoddata.com/v1"

// DefaultTimeout bounds each request when no custom http.Client is given.
const DefaultTimeout = 30 * time.Second

// Client is the EODData API client. Construct it with New; the zero value
// is not usable.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	tracker    *accounting.Tracker

	Metadata     *MetadataService
	Exchanges    *ExchangesService
	Symbols      *SymbolsService
	Quotes       *QuotesService
	Corporate    *CorporateService
	Fundamentals *FundamentalsService
	Technicals   *TechnicalsService
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a logger; without it the client is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracker attaches a call accounting tracker. Every API call is then
// recorded against this client's key and checked against its quota before
// the request leaves the process.
func WithTracker(tracker *accounting.Tracker) Option {
	return func(c *Client) {
		c.tracker = tracker
	}
}

// New creates an EODData API client for the given key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("eoddata: API key is required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Metadata = &MetadataService{client: c}
	c.Exchanges = &ExchangesService{client: c}
	c.Symbols = &SymbolsService{client: c}
	c.Quotes = &QuotesService{client: c}
	c.Corporate = &CorporateService{client: c}
	c.Fundamentals = &FundamentalsService{client: c}
	c.Technicals = &TechnicalsService{client: c}

	return c, nil
}

// Tracker returns the attached accounting tracker, or nil.
func (c *Client) Tracker() *accounting.Tracker {
	return c.tracker
}

// get performs an authenticated GET and decodes the JSON response into out.
// operationID is the stable accounting partition name for the endpoint
// family; a quota denial aborts the call locally with no network round
// trip.
func (c *Client) get(ctx context.Context, operationID, path string, query url.Values, out interface{}) error {
	if c.tracker != nil {
		if err := c.tracker.BeforeRequest(c.apiKey, operationID); err != nil {
			c.logger.Warn("request blocked by quota",
				zap.String("operation", operationID),
				zap.Error(err))
			return err
		}
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("ApiKey", c.apiKey)

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("operation", operationID),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &APIError{StatusCode: resp.StatusCode, Message: "authentication failed, check your API key"}
	case resp.StatusCode == http.StatusNotFound:
		return &APIError{StatusCode: resp.StatusCode, Message: "resource not found: " + path}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &APIError{StatusCode: resp.StatusCode, Message: "rate limit exceeded, wait before making more requests"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}
