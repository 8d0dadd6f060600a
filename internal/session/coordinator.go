package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/stt-sidecar/internal/audio"
	"github.com/eleven-am/stt-sidecar/internal/engine"
	"github.com/eleven-am/stt-sidecar/internal/shared"
)

// TranscriptArchiver persists final transcripts when a session ends.
type TranscriptArchiver interface {
	Archive(ctx context.Context, sessionID, text string) error
}

// PushResult is one partial hypothesis plus the client-observed latency.
// Latency spans from just before the decode lock is requested until it is
// released, so time spent waiting behind other sessions is included.
type PushResult struct {
	Text    string
	Latency time.Duration
}

// Coordinator orchestrates start/push/end between concurrent callers and a
// single non-reentrant recognizer. decodeMu is the process-wide decode lock:
// at most one engine decode pass runs at any instant, across all sessions.
type Coordinator struct {
	rec      engine.Recognizer
	reg      *Registry
	metrics  *MetricsStore
	archiver TranscriptArchiver
	logger   *slog.Logger

	decodeMu sync.Mutex
}

// NewCoordinator wires the coordinator. metrics and archiver may be nil;
// both are best-effort observers, never load-bearing.
func NewCoordinator(rec engine.Recognizer, reg *Registry, metrics *MetricsStore, archiver TranscriptArchiver, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		rec:      rec,
		reg:      reg,
		metrics:  metrics,
		archiver: archiver,
		logger:   logger,
	}
}

// Start opens a session and returns its identifier. No decode work happens.
func (c *Coordinator) Start(ctx context.Context) (string, error) {
	id, err := c.reg.Create()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrEngineFailure, err)
	}

	if c.metrics != nil {
		if err := c.metrics.IncrementSessions(ctx); err != nil {
			c.logger.Debug("metrics write failed", "error", err)
		}
	}

	c.logger.Info("session started", "session_id", id, "active", c.reg.Count())
	return id, nil
}

// Push feeds one chunk into the session's stream, drains every decodable
// step, and returns the current hypothesis. samplesB64 is base64-encoded
// little-endian float32 mono PCM. The lookup runs before the payload is
// decoded, so an unknown session reports NotFound even when the payload is
// also corrupt.
func (c *Coordinator) Push(ctx context.Context, id string, samplesB64 string, sampleRate int) (PushResult, error) {
	stream, err := c.reg.Lookup(id)
	if err != nil {
		return PushResult{}, err
	}

	// Keep-alive pushes must not contend for the decode lock.
	if samplesB64 == "" {
		return PushResult{}, nil
	}

	// One bad chunk does not poison the session.
	payload, err := base64.StdEncoding.DecodeString(samplesB64)
	if err != nil {
		return PushResult{}, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	samples, err := audio.DecodeFloat32LE(payload)
	if err != nil {
		return PushResult{}, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	if len(samples) == 0 {
		return PushResult{}, nil
	}

	if sampleRate <= 0 {
		sampleRate = c.rec.SampleRate()
	}

	start := time.Now()
	c.decodeMu.Lock()
	// An end or eviction may have disposed the stream while we waited for
	// the lock; touching it now would hand the engine a freed handle.
	if _, lookupErr := c.reg.Lookup(id); lookupErr != nil {
		c.decodeMu.Unlock()
		return PushResult{}, lookupErr
	}
	text, err := c.feedAndDrain(stream, sampleRate, samples)
	if err != nil {
		// The stream's decode state is undefined after an engine failure,
		// so the session is evicted; the id becomes permanently invalid.
		// Disposal happens before the lock is released so no waiter can
		// reach the dead stream.
		if s, remErr := c.reg.Remove(id); remErr == nil {
			s.Close()
		}
		c.decodeMu.Unlock()
		c.recordError(ctx)
		c.logger.Error("session evicted after engine failure", "session_id", id, "error", err)
		return PushResult{}, fmt.Errorf("%w: %v", shared.ErrEngineFailure, err)
	}
	c.decodeMu.Unlock()
	latency := time.Since(start)

	if c.metrics != nil {
		if err := c.metrics.RecordUtterance(ctx, latency.Milliseconds()); err != nil {
			c.logger.Debug("metrics write failed", "error", err)
		}
	}

	return PushResult{Text: text, Latency: latency}, nil
}

// End removes the session, finalizes its stream and returns the final
// transcript. The removal happens before any decode work, so a push racing
// an end sees ErrNotFound rather than a half-finalized session. The stream
// is closed while the decode lock is still held: a push already waiting on
// the lock re-checks the registry and must never find a disposed stream.
func (c *Coordinator) End(ctx context.Context, id string) (string, error) {
	stream, err := c.reg.Remove(id)
	if err != nil {
		return "", err
	}

	c.decodeMu.Lock()
	stream.InputFinished()
	text, err := c.drain(stream)
	stream.Close()
	c.decodeMu.Unlock()

	if err != nil {
		c.recordError(ctx)
		return "", fmt.Errorf("%w: %v", shared.ErrEngineFailure, err)
	}

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, id, text); err != nil {
			c.logger.Warn("transcript archive failed", "session_id", id, "error", err)
		}
	}

	c.logger.Info("session ended", "session_id", id, "active", c.reg.Count())
	return text, nil
}

// WarmUp pays the engine's cold-start cost by running one second of silence
// through a throwaway stream. Errors are swallowed: nothing depends on the
// warm-up having happened.
func (c *Coordinator) WarmUp(ctx context.Context) {
	start := time.Now()

	stream, err := c.rec.NewStream()
	if err != nil {
		c.logger.Debug("warm-up skipped", "error", err)
		return
	}
	defer stream.Close()

	rate := c.rec.SampleRate()
	samples := audio.Silence(1.0, rate)

	c.decodeMu.Lock()
	err = stream.AcceptWaveform(rate, samples)
	if err == nil {
		stream.InputFinished()
		err = c.drainSteps(stream)
	}
	c.decodeMu.Unlock()

	if err != nil {
		c.logger.Debug("warm-up decode failed", "error", err)
		return
	}
	c.logger.Info("engine warm-up complete", "duration_ms", time.Since(start).Milliseconds())
}

// ActiveSessions reports the current registry size.
func (c *Coordinator) ActiveSessions() int {
	return c.reg.Count()
}

// feedAndDrain runs under decodeMu: buffer the chunk, decode to exhaustion,
// read the hypothesis.
func (c *Coordinator) feedAndDrain(stream engine.Stream, sampleRate int, samples []float32) (string, error) {
	if err := stream.AcceptWaveform(sampleRate, samples); err != nil {
		return "", err
	}
	return c.drain(stream)
}

// drain runs decode steps while the engine reports buffered audio is ready,
// then extracts the normalized hypothesis text.
func (c *Coordinator) drain(stream engine.Stream) (string, error) {
	if err := c.drainSteps(stream); err != nil {
		return "", err
	}
	res, err := c.rec.Result(stream)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

func (c *Coordinator) drainSteps(stream engine.Stream) error {
	for c.rec.IsReady(stream) {
		if err := c.rec.Decode(stream); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) recordError(ctx context.Context) {
	if c.metrics == nil {
		return
	}
	if err := c.metrics.IncrementErrors(ctx); err != nil {
		c.logger.Debug("metrics write failed", "error", err)
	}
}
