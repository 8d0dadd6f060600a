// Package engine defines the boundary to the incremental speech recognizer.
//
// The recognizer is stateful and not reentrant: its decode routines must not
// run concurrently, not even on distinct streams. Callers own that exclusion;
// nothing in this package locks.
package engine

// Stream holds the per-session decode state of the recognizer: buffered,
// not-yet-decoded audio plus the running hypothesis. A Stream belongs to
// exactly one session and is never shared.
type Stream interface {
	// AcceptWaveform buffers mono float32 samples captured at sampleRate.
	AcceptWaveform(sampleRate int, samples []float32) error

	// InputFinished signals end-of-input so remaining buffered audio
	// becomes decodable. No further AcceptWaveform calls are allowed.
	InputFinished()

	// Close releases the stream's native resources.
	Close()
}

// Recognizer is the incremental speech-to-text engine.
type Recognizer interface {
	// NewStream creates an independent decode stream.
	NewStream() (Stream, error)

	// IsReady reports whether the stream has enough buffered audio for
	// another decode step.
	IsReady(s Stream) bool

	// Decode advances the stream's hypothesis by one step.
	Decode(s Stream) error

	// Result returns the stream's current hypothesis.
	Result(s Stream) (Result, error)

	// SampleRate is the rate the engine's feature extractor expects.
	SampleRate() int

	// Close releases the recognizer and its loaded model.
	Close()
}

// Config carries the model artifacts and decode parameters for a
// transducer-based online recognizer.
type Config struct {
	Encoder      string
	Decoder      string
	Joiner       string
	Tokens       string
	NumThreads   int
	SampleRate   int
	FeatureDim   int
	ModelingUnit string
	BpeVocab     string
}
