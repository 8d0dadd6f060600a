package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestMetricsStore(t *testing.T) *MetricsStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMetricsStore(client)
}

func TestMetricsStore_IncrementSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestMetricsStore(t)

	for i := 0; i < 3; i++ {
		if err := s.IncrementSessions(ctx); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}

	metrics, err := s.GetMetrics(ctx, 1)
	if err != nil {
		t.Fatalf("get metrics failed: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(metrics))
	}
	if metrics[0].Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", metrics[0].Sessions)
	}
}

func TestMetricsStore_RecordUtterance(t *testing.T) {
	ctx := context.Background()
	s := newTestMetricsStore(t)

	if err := s.RecordUtterance(ctx, 100); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := s.RecordUtterance(ctx, 200); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	metrics, err := s.GetMetrics(ctx, 1)
	if err != nil {
		t.Fatalf("get metrics failed: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(metrics))
	}
	if metrics[0].Utterances != 2 {
		t.Errorf("expected 2 utterances, got %d", metrics[0].Utterances)
	}
	if metrics[0].AvgLatencyMs != 150 {
		t.Errorf("expected avg latency 150, got %d", metrics[0].AvgLatencyMs)
	}
}

func TestMetricsStore_IncrementErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestMetricsStore(t)

	if err := s.IncrementErrors(ctx); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	metrics, err := s.GetMetrics(ctx, 1)
	if err != nil {
		t.Fatalf("get metrics failed: %v", err)
	}
	if len(metrics) != 1 || metrics[0].ErrorCount != 1 {
		t.Errorf("expected 1 error in 1 bucket, got %+v", metrics)
	}
}

func TestMetricsStore_EmptyWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestMetricsStore(t)

	metrics, err := s.GetMetrics(ctx, 24)
	if err != nil {
		t.Fatalf("get metrics failed: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no buckets, got %d", len(metrics))
	}
}
