package extractor

import (
	"testing"

	"ghana-translator/internal/types"
)

// surfaces collects the surface strings of spans for membership checks.
func surfaces(spans []types.CandidateSpan) map[string]bool {
	out := make(map[string]bool, len(spans))
	for _, s := range spans {
		out[s.Surface] = true
	}
	return out
}

// checkSpanIntegrity verifies every span's surface equals the exact
// byte slice of the text it points into.
func checkSpanIntegrity(t *testing.T, text string, spans []types.CandidateSpan) {
	t.Helper()
	for _, s := range spans {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			t.Errorf("span out of bounds: %+v", s)
			continue
		}
		if text[s.Start:s.End] != s.Surface {
			t.Errorf("span surface mismatch: %+v, slice = %q", s, text[s.Start:s.End])
		}
	}
}

func TestNGramExtractor_SingleWords(t *testing.T) {
	ex := NewNGramExtractor(1)
	text := "I want to buy a house"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	checkSpanIntegrity(t, text, spans)

	got := surfaces(spans)
	for _, want := range []string{"want", "buy", "house"} {
		if !got[want] {
			t.Errorf("expected candidate %q", want)
		}
	}
	// Pure stopwords never become single-word candidates
	for _, stop := range []string{"I", "to", "a"} {
		if got[stop] {
			t.Errorf("stopword %q should not be a candidate", stop)
		}
	}
}

func TestNGramExtractor_MultiWord(t *testing.T) {
	ex := NewNGramExtractor(3)
	text := "the real estate market"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	checkSpanIntegrity(t, text, spans)

	got := surfaces(spans)
	for _, want := range []string{"real estate", "real estate market", "estate market", "the real estate"} {
		if !got[want] {
			t.Errorf("expected candidate %q", want)
		}
	}
}

func TestNGramExtractor_MaxTokensBound(t *testing.T) {
	ex := NewNGramExtractor(2)
	text := "one two three four"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	got := surfaces(spans)
	if got["one two three"] {
		t.Error("3-gram should not appear with maxTokens=2")
	}
	if !got["one two"] || !got["two three"] || !got["three four"] {
		t.Errorf("expected all 2-grams, got %v", got)
	}
}

func TestNGramExtractor_StopwordOnlySpansSkipped(t *testing.T) {
	ex := NewNGramExtractor(3)
	text := "in the house"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	got := surfaces(spans)
	if got["in the"] {
		t.Error("all-stopword span 'in the' should be skipped")
	}
	// Spans reaching a content word are kept
	if !got["in the house"] || !got["the house"] || !got["house"] {
		t.Errorf("spans ending in a content word should be kept, got %v", got)
	}
}

func TestNGramExtractor_ByteOffsetsWithMultibyteText(t *testing.T) {
	ex := NewNGramExtractor(2)
	text := "café prices rose"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	checkSpanIntegrity(t, text, spans)

	got := surfaces(spans)
	if !got["café"] || !got["café prices"] {
		t.Errorf("multibyte word candidates missing, got %v", got)
	}
}

func TestNGramExtractor_Apostrophes(t *testing.T) {
	ex := NewNGramExtractor(2)
	text := "the driver's license"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	checkSpanIntegrity(t, text, spans)

	got := surfaces(spans)
	if !got["driver's"] {
		t.Error("contraction should stay one word")
	}
	if !got["driver's license"] {
		t.Error("expected 2-gram across the contraction")
	}
}

func TestNGramExtractor_PunctuationBoundaries(t *testing.T) {
	ex := NewNGramExtractor(2)
	text := "house, car. market!"

	spans, err := ex.Extract(text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	checkSpanIntegrity(t, text, spans)

	got := surfaces(spans)
	for _, want := range []string{"house", "car", "market"} {
		if !got[want] {
			t.Errorf("expected candidate %q", want)
		}
	}
	if got["house,"] || got["car."] {
		t.Error("punctuation must not be part of a candidate")
	}
}

func TestNGramExtractor_EmptyAndBlank(t *testing.T) {
	ex := NewNGramExtractor(3)

	for _, text := range []string{"", "   ", "...!?"} {
		spans, err := ex.Extract(text)
		if err != nil {
			t.Fatalf("Extract(%q) failed: %v", text, err)
		}
		if len(spans) != 0 {
			t.Errorf("Extract(%q) = %v, want no candidates", text, spans)
		}
	}
}

func TestNewNGramExtractor_Defaults(t *testing.T) {
	ex := NewNGramExtractor(0)
	if ex.maxTokens != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want default %d", ex.maxTokens, DefaultMaxTokens)
	}

	ex = NewNGramExtractor(-3)
	if ex.maxTokens != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want default %d", ex.maxTokens, DefaultMaxTokens)
	}
}

func TestForLanguage(t *testing.T) {
	if _, ok := ForLanguage("en", 2).(*NGramExtractor); !ok {
		t.Error("English should use the n-gram extractor")
	}
	if _, ok := ForLanguage("ak", 2).(*NGramExtractor); !ok {
		t.Error("Akan should use the n-gram extractor")
	}
	if _, ok := ForLanguage("ja", 2).(*KagomeExtractor); !ok {
		t.Error("Japanese should use the morphological extractor")
	}
}
