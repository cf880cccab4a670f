package extractor

import (
	"strings"
	"unicode"

	"ghana-translator/internal/types"
)

// DefaultMaxTokens bounds multi-word candidates when no terminology
// table is available to derive a tighter bound from.
const DefaultMaxTokens = 4

// NGramExtractor proposes every contiguous word n-gram of the input,
// up to maxTokens words, as a candidate span. Candidates made up
// entirely of stopwords are dropped; content words keep their
// surrounding n-grams so multi-word terms survive.
type NGramExtractor struct {
	maxTokens int
}

// NewNGramExtractor creates an n-gram extractor. maxTokens values
// below 1 fall back to DefaultMaxTokens.
func NewNGramExtractor(maxTokens int) *NGramExtractor {
	if maxTokens < 1 {
		maxTokens = DefaultMaxTokens
	}
	return &NGramExtractor{maxTokens: maxTokens}
}

// wordSpan is a single word with its byte offsets.
type wordSpan struct {
	start, end int
	stopword   bool
}

// isWordRune reports whether r belongs inside a word. Apostrophes are
// included so contractions stay single words.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// splitWords finds all words in text with their byte offsets.
func splitWords(text string) []wordSpan {
	var words []wordSpan
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, makeWord(text, start, i))
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, makeWord(text, start, len(text)))
	}
	return words
}

func makeWord(text string, start, end int) wordSpan {
	return wordSpan{
		start:    start,
		end:      end,
		stopword: isStopword(strings.ToLower(text[start:end])),
	}
}

// Extract proposes every word n-gram up to the configured length.
// Spans that consist solely of stopwords are skipped.
func (e *NGramExtractor) Extract(text string) ([]types.CandidateSpan, error) {
	words := splitWords(text)
	if len(words) == 0 {
		return nil, nil
	}

	var spans []types.CandidateSpan
	for i := range words {
		allStop := true
		for n := 1; n <= e.maxTokens && i+n <= len(words); n++ {
			if !words[i+n-1].stopword {
				allStop = false
			}
			if allStop {
				continue
			}
			start, end := words[i].start, words[i+n-1].end
			spans = append(spans, types.CandidateSpan{
				Start:   start,
				End:     end,
				Surface: text[start:end],
			})
		}
	}
	return spans, nil
}
