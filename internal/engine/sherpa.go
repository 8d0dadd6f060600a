package engine

import (
	"fmt"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
)

// SherpaRecognizer runs a sherpa-onnx online transducer model in process.
// All methods assume the caller holds the process-wide decode lock; the
// native library is not safe for concurrent decode calls.
type SherpaRecognizer struct {
	rec        *sherpa.OnlineRecognizer
	sampleRate int
}

type sherpaStream struct {
	s      *sherpa.OnlineStream
	closed bool
}

// NewSherpaRecognizer loads the model artifacts named by cfg. Loading is
// expensive (hundreds of MB of ONNX weights); call once per process.
func NewSherpaRecognizer(cfg Config) (*SherpaRecognizer, error) {
	if cfg.Encoder == "" || cfg.Decoder == "" || cfg.Joiner == "" || cfg.Tokens == "" {
		return nil, fmt.Errorf("engine: encoder, decoder, joiner and tokens paths are all required")
	}

	c := sherpa.OnlineRecognizerConfig{}
	c.FeatConfig = sherpa.FeatureConfig{
		SampleRate: cfg.SampleRate,
		FeatureDim: cfg.FeatureDim,
	}
	c.ModelConfig = sherpa.OnlineModelConfig{
		Transducer: sherpa.OnlineTransducerModelConfig{
			Encoder: cfg.Encoder,
			Decoder: cfg.Decoder,
			Joiner:  cfg.Joiner,
		},
		Tokens:       cfg.Tokens,
		NumThreads:   cfg.NumThreads,
		Provider:     "cpu",
		ModelingUnit: cfg.ModelingUnit,
		BpeVocab:     cfg.BpeVocab,
	}
	c.DecodingMethod = "greedy_search"

	rec := sherpa.NewOnlineRecognizer(&c)
	if rec == nil {
		return nil, fmt.Errorf("engine: failed to create recognizer from %q", cfg.Encoder)
	}

	return &SherpaRecognizer{rec: rec, sampleRate: cfg.SampleRate}, nil
}

func (r *SherpaRecognizer) NewStream() (Stream, error) {
	s := sherpa.NewOnlineStream(r.rec)
	if s == nil {
		return nil, fmt.Errorf("engine: failed to create stream")
	}
	return &sherpaStream{s: s}, nil
}

func (r *SherpaRecognizer) IsReady(s Stream) bool {
	return r.rec.IsReady(s.(*sherpaStream).s)
}

func (r *SherpaRecognizer) Decode(s Stream) error {
	r.rec.Decode(s.(*sherpaStream).s)
	return nil
}

func (r *SherpaRecognizer) Result(s Stream) (Result, error) {
	res := r.rec.GetResult(s.(*sherpaStream).s)
	if res == nil {
		return PlainResult(""), nil
	}
	return HypothesisResult(&Hypothesis{
		Text:       res.Text,
		Tokens:     res.Tokens,
		Timestamps: res.Timestamps,
	}), nil
}

func (r *SherpaRecognizer) SampleRate() int {
	return r.sampleRate
}

func (r *SherpaRecognizer) Close() {
	sherpa.DeleteOnlineRecognizer(r.rec)
}

func (st *sherpaStream) AcceptWaveform(sampleRate int, samples []float32) error {
	st.s.AcceptWaveform(sampleRate, samples)
	return nil
}

func (st *sherpaStream) InputFinished() {
	st.s.InputFinished()
}

func (st *sherpaStream) Close() {
	if st.closed {
		return
	}
	st.closed = true
	sherpa.DeleteOnlineStream(st.s)
}
