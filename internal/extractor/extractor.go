// Package extractor provides candidate phrase extraction for the
// translation pipeline. An extractor proposes spans of the input text
// that may correspond to terminology entries; the span matcher decides
// which of them actually do.
package extractor

import (
	"ghana-translator/internal/logger"
	"ghana-translator/internal/types"
)

// Extractor proposes candidate spans for a text. Implementations must
// return spans whose Surface equals the exact text slice
// text[Start:End], with byte offsets.
type Extractor interface {
	Extract(text string) ([]types.CandidateSpan, error)
}

// ForLanguage returns the extractor suited to the given source
// language: the morphological extractor for Japanese, the n-gram
// extractor for everything else. maxTokens bounds multi-word
// candidates for the n-gram extractor.
func ForLanguage(srcLang string, maxTokens int) Extractor {
	if srcLang == "ja" {
		ex, err := NewKagomeExtractor()
		if err != nil {
			logger.Warn("morphological extractor unavailable, falling back to n-gram",
				logger.Err(err))
			return NewNGramExtractor(maxTokens)
		}
		return ex
	}
	return NewNGramExtractor(maxTokens)
}
