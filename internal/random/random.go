// Package random provides domain.RandomSource implementations.
package random

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
)

const (
	// DefaultURL is the random.org integer generator endpoint
	DefaultURL     = "https://www.random.org/integers/"
	DefaultTimeout = 5 * time.Second
	userAgent      = "Shelf/1.0"
)

// Client draws integers from random.org
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a random.org client. Empty baseURL and zero timeout use the defaults.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Next returns a random integer in [1, upper]
func (c *Client) Next(ctx context.Context, upper int) (int, error) {
	if upper < 1 {
		return 0, fmt.Errorf("%w: %d", domain.ErrRandomInvalidBound, upper)
	}

	query := url.Values{}
	query.Set("num", "1")
	query.Set("min", "1")
	query.Set("max", strconv.Itoa(upper))
	query.Set("col", "1")
	query.Set("base", "10")
	query.Set("format", "plain")
	query.Set("rnd", "new")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Info("fetching random number", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("random.org request timed out", "error", err)
			return 0, fmt.Errorf("%w: %w", domain.ErrRandomTimeout, err)
		}
		c.logger.Error("random.org request failed", "error", err)
		return 0, fmt.Errorf("%w: %w", domain.ErrRandomUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, fmt.Errorf("%w: %w", domain.ErrRandomTimeout, err)
		}
		return 0, fmt.Errorf("%w: failed to read response: %w", domain.ErrRandomUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("random.org request error", "status", resp.StatusCode, "body", string(body))
		return 0, fmt.Errorf("%w: unexpected status code: %d", domain.ErrRandomUnavailable, resp.StatusCode)
	}

	text := strings.TrimSpace(string(body))
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > upper {
		c.logger.Error("invalid response from random.org", "body", text)
		return 0, fmt.Errorf("%w: %q", domain.ErrRandomInvalidResponse, text)
	}

	c.logger.Info("received random number", "value", n)
	return n, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Local draws integers from the process-local generator, for offline use
type Local struct{}

// Next returns a random integer in [1, upper]
func (Local) Next(_ context.Context, upper int) (int, error) {
	if upper < 1 {
		return 0, fmt.Errorf("%w: %d", domain.ErrRandomInvalidBound, upper)
	}
	return rand.IntN(upper) + 1, nil
}
