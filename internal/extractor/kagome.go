package extractor

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"ghana-translator/internal/types"
)

// KagomeExtractor proposes candidates for Japanese text using
// morphological analysis, since word n-grams are meaningless without
// whitespace word boundaries. It emits content tokens (nouns, verbs,
// adjectives) and runs of adjacent nouns as compound candidates.
type KagomeExtractor struct {
	tok *tokenizer.Tokenizer
}

// NewKagomeExtractor creates a morphological extractor backed by the
// IPA dictionary.
func NewKagomeExtractor() (*KagomeExtractor, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, types.NewAppError(types.ErrInternal,
			"failed to initialize morphological tokenizer", err)
	}
	return &KagomeExtractor{tok: t}, nil
}

// morpheme is a tokenized unit with byte offsets into the input.
type morpheme struct {
	start, end int
	class      string
}

// contentClasses are the part-of-speech classes kept as candidates.
var contentClasses = map[string]bool{
	"名詞":  true, // noun
	"動詞":  true, // verb
	"形容詞": true, // adjective
}

// Extract tokenizes the text and emits content morphemes plus
// adjacent-noun compounds as candidate spans.
func (e *KagomeExtractor) Extract(text string) ([]types.CandidateSpan, error) {
	if text == "" {
		return nil, nil
	}

	tokens := e.tok.Tokenize(text)

	// Resolve byte offsets by scanning for each surface in order;
	// kagome reports rune positions, the pipeline works in bytes.
	morphemes := make([]morpheme, 0, len(tokens))
	cursor := 0
	for _, kt := range tokens {
		if kt.Surface == "" {
			continue
		}
		idx := strings.Index(text[cursor:], kt.Surface)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		end := start + len(kt.Surface)
		cursor = end

		class := ""
		if pos := kt.POS(); len(pos) > 0 {
			class = pos[0]
		}
		morphemes = append(morphemes, morpheme{start: start, end: end, class: class})
	}

	var spans []types.CandidateSpan
	for i, m := range morphemes {
		if !contentClasses[m.class] {
			continue
		}
		spans = append(spans, types.CandidateSpan{
			Start:   m.start,
			End:     m.end,
			Surface: text[m.start:m.end],
		})

		// Extend noun runs into compound candidates
		if m.class != "名詞" {
			continue
		}
		end := m.end
		for j := i + 1; j < len(morphemes); j++ {
			if morphemes[j].class != "名詞" || morphemes[j].start != end {
				break
			}
			end = morphemes[j].end
			spans = append(spans, types.CandidateSpan{
				Start:   m.start,
				End:     end,
				Surface: text[m.start:end],
			})
		}
	}
	return spans, nil
}
