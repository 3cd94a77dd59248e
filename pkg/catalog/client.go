// Package catalog provides the HTTP client for the games catalog API and
// classifies every way a favorited-count lookup can fail.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Roblox games endpoint that reports favoritedCount.
	DefaultBaseURL = "https://games.roblox.com/v1/games"

	// DefaultTimeout bounds a single catalog call.
	DefaultTimeout = 5 * time.Second

	// maxBodyBytes caps how much of an upstream body is read.
	maxBodyBytes = 1 << 20
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the catalog endpoint; the id is sent as the universeIds query parameter.
	BaseURL string

	// Timeout for a single request, including reading the body.
	Timeout time.Duration

	// UserAgent header sent upstream (optional).
	UserAgent string
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client looks up favorited counts from the catalog API.
// Each lookup issues exactly one request; nothing is retried.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
	logger     zerolog.Logger
}

// gamesResponse is the subset of the catalog payload the proxy depends on.
type gamesResponse struct {
	Data []gameInfo `json:"data"`
}

type gameInfo struct {
	FavoritedCount *int64 `json:"favoritedCount"`
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0 (got %s)", cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		config:  cfg,
		logger:  log.With().Str("component", "catalog-client").Logger(),
	}, nil
}

// FavoritedCount fetches the favorited count of a universe.
// Failures are returned as *Error with the matching ErrorKind.
func (c *Client) FavoritedCount(ctx context.Context, universeID int64) (int64, error) {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	likes, err := c.fetch(ctx, universeID)
	if err != nil {
		var catErr *Error
		if errors.As(err, &catErr) {
			upstreamErrorsTotal.WithLabelValues(string(catErr.Kind)).Inc()
		}
		return 0, err
	}
	return likes, nil
}

func (c *Client) fetch(ctx context.Context, universeID int64) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(universeID), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Int64("universe_id", universeID).
		Str("url", req.URL.String()).
		Msg("Executing catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Int64("universe_id", universeID).Msg("Catalog request failed")
		upstreamRequestsTotal.WithLabelValues("network_error").Inc()
		return 0, &Error{
			Kind:    KindUnreachable,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

		c.logger.Warn().
			Int64("universe_id", universeID).
			Int("status_code", resp.StatusCode).
			Msg("Catalog returned non-success status")
		return 0, &Error{
			Kind:       KindHTTPError,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Error().Err(err).Int64("universe_id", universeID).Msg("Reading catalog body failed")
		return 0, &Error{
			Kind:       KindUnreachable,
			StatusCode: resp.StatusCode,
			Message:    "read body",
			Err:        err,
		}
	}

	return extractFavoritedCount(body, resp.StatusCode)
}

// extractFavoritedCount reads favoritedCount from the first record of a
// catalog payload.
func extractFavoritedCount(body []byte, statusCode int) (int64, error) {
	var payload gamesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, &Error{
			Kind:       KindMalformedPayload,
			StatusCode: statusCode,
			Message:    "decode payload",
			Err:        err,
		}
	}

	if len(payload.Data) == 0 {
		return 0, &Error{
			Kind:       KindGameNotFound,
			StatusCode: statusCode,
			Message:    "data array empty or missing",
			Payload:    json.RawMessage(body),
		}
	}

	count := payload.Data[0].FavoritedCount
	if count == nil {
		return 0, &Error{
			Kind:       KindFieldMissing,
			StatusCode: statusCode,
			Message:    "favoritedCount missing",
			Payload:    json.RawMessage(body),
		}
	}
	if *count < 0 {
		return 0, &Error{
			Kind:       KindMalformedPayload,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("negative favoritedCount %d", *count),
		}
	}

	return *count, nil
}

// requestURL builds <base>?universeIds=<id>, keeping any query the base already carries.
func (c *Client) requestURL(universeID int64) string {
	u := *c.baseURL
	query := u.Query()
	query.Set("universeIds", strconv.FormatInt(universeID, 10))
	u.RawQuery = query.Encode()
	return u.String()
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
