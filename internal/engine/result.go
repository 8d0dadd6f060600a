package engine

type resultKind int

const (
	resultPlain resultKind = iota
	resultHypothesis
)

// Hypothesis is the structured result shape some recognizer backends
// produce: the text plus token-level detail.
type Hypothesis struct {
	Text       string
	Tokens     []string
	Timestamps []float32
}

// Result is the recognizer's hypothesis in either of its two shapes: a bare
// text value or a structured Hypothesis. The shape is resolved here, once,
// so callers never type-switch on engine output.
type Result struct {
	kind resultKind
	text string
	hyp  *Hypothesis
}

// PlainResult wraps a bare text hypothesis.
func PlainResult(text string) Result {
	return Result{kind: resultPlain, text: text}
}

// HypothesisResult wraps a structured hypothesis.
func HypothesisResult(h *Hypothesis) Result {
	return Result{kind: resultHypothesis, hyp: h}
}

// Text normalizes either shape to its text value, empty if neither shape
// carries one.
func (r Result) Text() string {
	switch r.kind {
	case resultHypothesis:
		if r.hyp == nil {
			return ""
		}
		return r.hyp.Text
	default:
		return r.text
	}
}

// Hypothesis returns the structured detail when present, nil for plain
// results.
func (r Result) Hypothesis() *Hypothesis {
	if r.kind != resultHypothesis {
		return nil
	}
	return r.hyp
}
