package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type testAuth struct{}

func (testAuth) GetApiKey() string           { return "test-key" }
func (testAuth) SetApiKey(req *http.Request) { req.Header.Set("Api-Key", "test-key") }

func testClient(url string, maxRetries int, retryDelay time.Duration) *Client {
	return NewClient(url, "test", testAuth{}, Config{
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}, nil)
}

func TestRateLimitRetriedOnceThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 1, 10*time.Millisecond)
	var out struct {
		OK bool `json:"ok"`
	}
	start := time.Now()
	if err := client.DoJSON(context.Background(), http.MethodGet, "/ping", nil, &out); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d calls", got)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("retry happened before configured delay: %s", elapsed)
	}
	if !out.OK {
		t.Error("response body was not decoded")
	}
}

func TestRateLimitExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(server.URL, 1, time.Millisecond)
	err := client.DoJSON(context.Background(), http.MethodGet, "/ping", nil, nil)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %T: %s", err, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls for max_retries=1, got %d", got)
	}
}

func TestAuthErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(server.URL, 3, time.Millisecond)
	err := client.DoJSON(context.Background(), http.MethodPost, "/update", map[string]string{"a": "b"}, nil)

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %s", err, err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("auth failure must not be retried, got %d calls", got)
	}
}

func TestServerErrorRetriedThenTransient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL, 2, time.Millisecond)
	err := client.DoJSON(context.Background(), http.MethodGet, "/list", nil, nil)

	var transientErr *TransientError
	if !errors.As(err, &transientErr) {
		t.Fatalf("expected TransientError, got %T: %s", err, err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls for max_retries=2, got %d", got)
	}
}

func TestBadRequestIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient(server.URL, 3, time.Millisecond)
	err := client.DoJSON(context.Background(), http.MethodGet, "/list", nil, nil)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if IsRetryable(err) {
		t.Error("400 must not be classified retryable")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected single call, got %d", got)
	}
}

func TestAuthHeaderIsSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Api-Key") != "test-key" {
			t.Errorf("auth header missing on request")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 0, time.Millisecond)
	if err := client.DoJSON(context.Background(), http.MethodGet, "/ping", nil, nil); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestRetryAfterHeaderOverridesDelay(t *testing.T) {
	if got := parseRetryAfter("2"); got != 2*time.Second {
		t.Errorf("expected 2s, got %s", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("expected 0 for empty header, got %s", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Errorf("expected 0 for malformed header, got %s", got)
	}
}
