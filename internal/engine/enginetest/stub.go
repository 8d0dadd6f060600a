// Package enginetest provides a deterministic, scriptable Recognizer for
// tests. It mimics the real engine's buffering contract: audio accumulates
// per stream, each decode step consumes a fixed window, and InputFinished
// makes the remainder decodable.
package enginetest

import (
	"sync"
	"time"

	"github.com/eleven-am/stt-sidecar/internal/engine"
)

const (
	// StubSampleRate matches the default engine rate used across tests.
	StubSampleRate = 16000

	// samplesPerStep is the window one decode step consumes (100ms at 16k).
	samplesPerStep = 1600
)

// Interval records the wall-clock span of one decode step. Tests use these
// to assert that decode steps never overlap across sessions.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Stub is a deterministic in-memory Recognizer.
type Stub struct {
	// DecodeDelay is slept inside every decode step, simulating model
	// latency while the decode lock is held.
	DecodeDelay time.Duration

	// Script holds the hypothesis text after the n-th decode step of a
	// stream; past the end the last entry sticks. Empty script means the
	// hypothesis is always "" (silence).
	Script []string

	// PlainResults makes Result return the bare-text shape instead of the
	// structured one.
	PlainResults bool

	// FailDecode, when set, is returned by every Decode call.
	FailDecode error

	// FailAccept, when set, is returned by every AcceptWaveform call.
	FailAccept error

	mu            sync.Mutex
	calls         int
	decodeSpans   []Interval
	closedTouches int
}

type stubStream struct {
	stub     *Stub
	buffered int
	finished bool
	steps    int
	closed   bool
}

func New() *Stub {
	return &Stub{}
}

func (f *Stub) NewStream() (engine.Stream, error) {
	f.count()
	return &stubStream{stub: f}, nil
}

func (f *Stub) IsReady(s engine.Stream) bool {
	st := s.(*stubStream)
	f.observe(st)
	if st.finished {
		return st.buffered > 0
	}
	return st.buffered >= samplesPerStep
}

func (f *Stub) Decode(s engine.Stream) error {
	start := time.Now()
	if f.DecodeDelay > 0 {
		time.Sleep(f.DecodeDelay)
	}

	st := s.(*stubStream)
	f.mu.Lock()
	f.calls++
	if st.closed {
		f.closedTouches++
	}
	f.decodeSpans = append(f.decodeSpans, Interval{Start: start, End: time.Now()})
	err := f.FailDecode
	f.mu.Unlock()
	if err != nil {
		return err
	}
	st.buffered -= samplesPerStep
	if st.buffered < 0 {
		st.buffered = 0
	}
	st.steps++
	return nil
}

func (f *Stub) Result(s engine.Stream) (engine.Result, error) {
	st := s.(*stubStream)
	f.observe(st)

	text := ""
	if st.steps > 0 && len(f.Script) > 0 {
		idx := st.steps - 1
		if idx >= len(f.Script) {
			idx = len(f.Script) - 1
		}
		text = f.Script[idx]
	}

	if f.PlainResults {
		return engine.PlainResult(text), nil
	}
	return engine.HypothesisResult(&engine.Hypothesis{Text: text}), nil
}

func (f *Stub) SampleRate() int {
	return StubSampleRate
}

func (f *Stub) Close() {}

// Calls returns how many engine entry points have been invoked. A zero
// count proves a code path never touched the engine.
func (f *Stub) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// DecodeIntervals returns the recorded span of every decode step, in call
// order.
func (f *Stub) DecodeIntervals() []Interval {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Interval, len(f.decodeSpans))
	copy(out, f.decodeSpans)
	return out
}

// ClosedStreamTouches counts engine entries that arrived after the stream's
// Close. With a native backend each such entry is a freed-handle access, so
// anything above zero is a disposal race.
func (f *Stub) ClosedStreamTouches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closedTouches
}

func (f *Stub) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

// observe is count() for entry points carrying a stream; it also flags
// entries on disposed streams.
func (f *Stub) observe(st *stubStream) {
	f.mu.Lock()
	f.calls++
	if st.closed {
		f.closedTouches++
	}
	f.mu.Unlock()
}

func (st *stubStream) AcceptWaveform(sampleRate int, samples []float32) error {
	st.stub.observe(st)
	st.stub.mu.Lock()
	err := st.stub.FailAccept
	st.stub.mu.Unlock()
	if err != nil {
		return err
	}
	st.buffered += len(samples)
	return nil
}

func (st *stubStream) InputFinished() {
	st.stub.observe(st)
	st.finished = true
}

func (st *stubStream) Close() {
	st.stub.mu.Lock()
	st.closed = true
	st.stub.mu.Unlock()
}
