package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// httpFeed is the transport shared by the feed clients: rate limiting,
// status mapping and JSON decoding.
type httpFeed struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
	headers map[string]string
	log     zerolog.Logger
}

func newHTTPFeed(name string, timeout time.Duration, requestsPerSecond float64, log zerolog.Logger) httpFeed {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return httpFeed{
		name:    name,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		headers: map[string]string{},
		log:     log,
	}
}

func (f *httpFeed) getJSON(ctx context.Context, u string, out any) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", f.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		f.log.Warn().Err(err).Dur("duration", duration).Str("url", req.URL.Path).Msg("request failed")
		return &FeedError{Code: "UPSTREAM_UNAVAILABLE", Message: fmt.Sprintf("%s request failed: %v", f.name, err)}
	}
	defer resp.Body.Close()

	f.log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Str("url", req.URL.Path).
		Msg("response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusNotFound:
		return &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("%s has no such resource", f.name),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		f.log.Warn().Str("retry_after", retryAfter).Msg("rate limit exceeded")
		return &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		f.log.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("upstream error")
		return &FeedError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("%s returned status %d", f.name, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FeedError{StatusCode: resp.StatusCode, Code: "DECODE_ERROR", Message: fmt.Sprintf("failed to decode %s response: %v", f.name, err)}
	}
	return nil
}
