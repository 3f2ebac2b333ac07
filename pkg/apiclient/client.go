// Package apiclient -- общий HTTP-клиент партнёрских API маркетплейсов:
// одна сессия на запуск, лимит частоты запросов, ограниченные повторы.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Leeroy133/seller-apis/metrics"
	"github.com/Leeroy133/seller-apis/pkg/logger"
)

// AuthEngine подписывает исходящий запрос учётными данными маркетплейса.
type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

type Config struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerMinute int
}

type Client struct {
	apiURL      string
	marketplace string
	client      *http.Client
	limiter     *rate.Limiter
	auth        AuthEngine
	maxRetries  int
	retryDelay  time.Duration
	log         logger.Logger
}

func NewClient(apiURL, marketplace string, auth AuthEngine, cfg Config, writer io.Writer) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}
	return &Client{
		apiURL:      apiURL,
		marketplace: marketplace,
		client:      &http.Client{Timeout: cfg.Timeout},
		limiter:     limiter,
		auth:        auth,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		log:         logger.NewLogger(writer, fmt.Sprintf("[%s client]", marketplace)),
	}
}

// DoJSON выполняет запрос с повторами. RateLimitError и TransientError
// повторяются не более maxRetries раз, остальные ошибки возвращаются сразу.
func (c *Client) DoJSON(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		err := c.doRequest(ctx, method, endpoint, requestBody, response)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		delay := c.retryDelay
		if rateErr, ok := err.(*RateLimitError); ok && rateErr.RetryAfter > 0 {
			delay = rateErr.RetryAfter
		}
		c.log.Log("Retrying %s %s after error: %s. Attempt: %d", method, endpoint, err, attempt+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	var bodyBytes []byte
	if requestBody != nil {
		var err error
		bodyBytes, err = json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.auth.SetApiKey(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordRequest(c.marketplace, endpoint, 0, time.Since(start))
		select {
		case <-ctx.Done():
			return fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return &TransientError{Err: err}
		}
	}
	defer resp.Body.Close()
	metrics.RecordRequest(c.marketplace, endpoint, resp.StatusCode, time.Since(start))

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if response == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &AuthError{Status: resp.StatusCode, Body: string(body)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return &TransientError{Status: resp.StatusCode}
	default:
		return fmt.Errorf("unexpected status code: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
