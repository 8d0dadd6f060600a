package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const metricsTTL = 7 * 24 * time.Hour

// Metrics is one hour's worth of sidecar usage counters.
type Metrics struct {
	Date         string
	Hour         int
	Sessions     int64
	Utterances   int64
	AvgLatencyMs int64
	ErrorCount   int64
}

// MetricsStore keeps per-hour usage counters in Redis hashes. All writes are
// best-effort observers of the request path; a Redis outage never fails a
// transcription call.
type MetricsStore struct {
	redis *redis.Client
}

func NewMetricsStore(redisClient *redis.Client) *MetricsStore {
	return &MetricsStore{redis: redisClient}
}

// MetricsRedisKey names the hash bucket for one hour.
func MetricsRedisKey(date string, hour int) string {
	return fmt.Sprintf("asr:metrics:%s:%d", date, hour)
}

func (s *MetricsStore) IncrementSessions(ctx context.Context) error {
	return s.increment(ctx, "sessions", 1)
}

func (s *MetricsStore) IncrementErrors(ctx context.Context) error {
	return s.increment(ctx, "error_count", 1)
}

// RecordUtterance counts one successful push and folds its latency into the
// hour's running average.
func (s *MetricsStore) RecordUtterance(ctx context.Context, latencyMs int64) error {
	now := time.Now().UTC()
	key := MetricsRedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, "utterances", 1)
	pipe.HIncrBy(ctx, key, "total_latency_ms", latencyMs)
	pipe.HIncrBy(ctx, key, "latency_count", 1)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *MetricsStore) increment(ctx context.Context, field string, value int64) error {
	now := time.Now().UTC()
	key := MetricsRedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, field, value)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetMetrics returns the last `hours` hourly buckets, newest first, skipping
// empty hours.
func (s *MetricsStore) GetMetrics(ctx context.Context, hours int) ([]*Metrics, error) {
	now := time.Now().UTC()
	var metrics []*Metrics

	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(i) * time.Hour)
		key := MetricsRedisKey(t.Format("2006-01-02"), t.Hour())

		data, err := s.redis.HGetAll(ctx, key).Result()
		if err != nil || len(data) == 0 {
			continue
		}

		m := &Metrics{
			Date: t.Format("2006-01-02"),
			Hour: t.Hour(),
		}

		if v, ok := data["sessions"]; ok {
			m.Sessions, _ = strconv.ParseInt(v, 10, 64)
		}
		if v, ok := data["utterances"]; ok {
			m.Utterances, _ = strconv.ParseInt(v, 10, 64)
		}
		if v, ok := data["error_count"]; ok {
			m.ErrorCount, _ = strconv.ParseInt(v, 10, 64)
		}

		totalLatency, _ := strconv.ParseInt(data["total_latency_ms"], 10, 64)
		latencyCount, _ := strconv.ParseInt(data["latency_count"], 10, 64)
		if latencyCount > 0 {
			m.AvgLatencyMs = totalLatency / latencyCount
		}

		metrics = append(metrics, m)
	}

	return metrics, nil
}
