package engine

import "testing"

func TestPlainResult_Text(t *testing.T) {
	r := PlainResult("hello")
	if r.Text() != "hello" {
		t.Errorf("expected 'hello', got '%s'", r.Text())
	}
	if r.Hypothesis() != nil {
		t.Error("plain result should have no hypothesis")
	}
}

func TestHypothesisResult_Text(t *testing.T) {
	r := HypothesisResult(&Hypothesis{Text: "hello world", Tokens: []string{"hel", "lo", " world"}})
	if r.Text() != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", r.Text())
	}
	if r.Hypothesis() == nil {
		t.Fatal("expected hypothesis detail")
	}
	if len(r.Hypothesis().Tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d", len(r.Hypothesis().Tokens))
	}
}

func TestHypothesisResult_NilNormalizesToEmpty(t *testing.T) {
	r := HypothesisResult(nil)
	if r.Text() != "" {
		t.Errorf("expected empty text, got '%s'", r.Text())
	}
}

func TestZeroResult_Text(t *testing.T) {
	var r Result
	if r.Text() != "" {
		t.Errorf("expected empty text, got '%s'", r.Text())
	}
}
