package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Version is the transport version reported in the User-Agent header.
// Overridden at build time.
var Version = "dev"

var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Request describes one remote API call.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Body   any
}

// Response carries the status code and raw body of a completed call.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned when the remote answered with a non-success
// status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Body)
}

// Transport issues rate limited, retried and optionally signed HTTP requests
// against the remote API.
type Transport struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
	gate   *slidingWindow
}

// New creates a transport from the configuration.
func New(cfg Config, logger *zap.Logger) *Transport {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return &Transport{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		gate:   newSlidingWindow(cfg.RequestLimit, window),
	}
}

// Do executes the request, waiting for a rate limit slot before each attempt
// and retrying retryable failures with the configured backoff. Client errors
// other than 429 are returned immediately without retry.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	attempt := 0
	operation := func() (*Response, error) {
		attempt++
		if err := t.gate.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := t.send(ctx, req, attempt)
		if err != nil {
			// Connection level failures are retryable.
			return nil, err
		}
		if resp.StatusCode >= 400 {
			statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
			if retryableStatuses[resp.StatusCode] {
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}
		return resp, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(newBackOff(t.cfg)),
		backoff.WithMaxTries(uint(t.cfg.MaxRetries)+1),
	)
}

func (t *Transport) send(ctx context.Context, req *Request, attempt int) (*Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to encode request body: %w", err))
		}
	}

	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "catalog-sync/"+Version)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.cfg.SigningSecret != "" {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		httpReq.Header.Set("X-Timestamp", timestamp)
		httpReq.Header.Set("X-Signature", signature(t.cfg.SigningSecret, req.Method, target, timestamp, body))
	}

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status", httpResp.StatusCode),
		zap.Int("attempt", attempt),
		zap.Duration("duration", time.Since(start)))

	return &Response{StatusCode: httpResp.StatusCode, Body: data}, nil
}
