package apisports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
	"github.com/gridironhq/gridiron-feed/internal/platform/resilience"
	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key-123",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
	return client, server
}

func TestClient_GamesDecodesEnvelope(t *testing.T) {
	t.Parallel()

	var gotKey atomic.Value
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get("x-apisports-key"))
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("league") != "1" {
			t.Errorf("unexpected league filter %q", r.URL.Query().Get("league"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"get": "games",
			"errors": [],
			"results": 2,
			"response": [
				{"game": {"id": 101}},
				{"game": {"id": 102}}
			]
		}`))
	})

	client, _ := newTestClient(t, handler, 0)
	items, err := client.Games(context.Background(), usecase.GamesFilter{League: 1, Season: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 raw objects, got %d", len(items))
	}
	if key := gotKey.Load(); key != "test-key-123" {
		t.Fatalf("expected auth header, got %v", key)
	}
}

func TestClient_EnvelopeErrorsSurface(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"get": "standings",
			"errors": {"token": "Error/Missing application key."},
			"results": 0,
			"response": []
		}`))
	})

	client, _ := newTestClient(t, handler, 0)
	_, err := client.Standings(context.Background(), 1, 2025)
	if err == nil {
		t.Fatalf("expected envelope error")
	}
	if !strings.Contains(err.Error(), "Missing application key") {
		t.Fatalf("expected provider error text, got %v", err)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get":"teams","errors":[],"results":1,"response":[{"id":7,"name":"Chiefs"}]}`))
	})

	client, _ := newTestClient(t, handler, 2)
	items, err := client.Teams(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 raw object, got %d", len(items))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, handler, 3)
	_, err := client.Odds(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected status error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected single attempt for non-retryable status, got %d", got)
	}
}

func TestClient_RejectsInvalidFilters(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{APIKey: "k", Logger: logging.NewNop()})
	if _, err := client.Standings(context.Background(), 0, 2025); err == nil {
		t.Fatalf("expected league validation error")
	}
	if _, err := client.Players(context.Background(), 12, 0); err == nil {
		t.Fatalf("expected season validation error")
	}
	if _, err := client.Injuries(context.Background(), 0); err == nil {
		t.Fatalf("expected team validation error")
	}
}

func TestClient_RedactsAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{APIKey: "secret-key", Logger: logging.NewNop()})
	redacted := client.redact("dial failed for request with x-apisports-key=secret-key appended")
	if strings.Contains(redacted, "secret-key") {
		t.Fatalf("expected key to be redacted, got %q", redacted)
	}
	if !strings.Contains(redacted, "REDACTED") {
		t.Fatalf("expected redaction marker, got %q", redacted)
	}
}
