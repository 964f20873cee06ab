package httpclient

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMinInterval = time.Second
	maxAttempts        = 3
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Client is a rate-limited HTTP client shared by all source adapters.
// Consecutive requests from one instance are spaced by at least the
// minimum interval plus random jitter, and transient 429/5xx responses
// are retried with backoff. Expected failures surface as errors to the
// caller; the adapters convert them to empty partial records.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	source    string
}

// New creates a client for one source adapter instance
func New(source string) *Client {
	return &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Every(defaultMinInterval), 1),
		userAgent: userAgents[rand.Intn(len(userAgents))],
		source:    source,
	}
}

// Get fetches url and returns the response body. Retries up to three
// attempts on 429 and 5xx with increasing backoff.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable {
			return nil, err
		}

		logger.Debug("retrying request",
			zap.String("source", c.source),
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

// wait blocks until the inter-request spacing allows the next call,
// then adds 100-500ms of jitter to avoid a fixed cadence
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	jitter := 100*time.Millisecond + time.Duration(rand.Int63n(int64(400*time.Millisecond)))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(jitter):
		return nil
	}
}

func (c *Client) do(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("HTTP error %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("HTTP error %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	return body, false, nil
}
