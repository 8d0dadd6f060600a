package health

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/eleven-am/stt-sidecar/internal/engine/enginetest"
	"github.com/eleven-am/stt-sidecar/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	stub := enginetest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coord := session.NewCoordinator(stub, session.NewRegistry(stub), nil, nil, logger)
	return NewHandler(coord, nil, nil, "test")
}

func TestLiveness(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf(`expected {"status":"ok"}, got %v`, body)
	}
}

func TestReadiness_HealthyWithoutOptionalStores(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ReadinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Components["engine"].Status != StatusHealthy {
		t.Errorf("expected healthy engine, got %+v", resp.Components["engine"])
	}
	if resp.Stats.Runtime.Goroutines <= 0 {
		t.Error("expected goroutine count in stats")
	}
}

func TestReadiness_DegradedOnRedisFailure(t *testing.T) {
	stub := enginetest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coord := session.NewCoordinator(stub, session.NewRegistry(stub), nil, nil, logger)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close() // simulate an outage

	h := NewHandler(coord, client, nil, "test")
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Metrics loss degrades but does not fail readiness.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ReadinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
}
