package extractor

// englishStopwords is a compact stopword set used to drop candidate
// spans that carry no content words. It deliberately stays small; a
// false negative only means one extra candidate for the matcher to
// reject.
var englishStopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "or": true, "but": true, "nor": true, "so": true,
	"of": true, "to": true, "in": true, "on": true, "at": true,
	"by": true, "for": true, "with": true, "from": true, "into": true,
	"about": true, "as": true, "up": true, "down": true, "off": true,
	"over": true, "under": true, "again": true, "out": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "he": true, "him": true, "his": true,
	"she": true, "her": true, "it": true, "its": true, "they": true,
	"them": true, "their": true, "this": true, "that": true,
	"these": true, "those": true, "who": true, "whom": true,
	"which": true, "what": true, "where": true, "when": true,
	"is": true, "am": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "shall": true, "should": true, "can": true,
	"could": true, "may": true, "might": true, "must": true,
	"not": true, "no": true, "if": true, "then": true, "than": true,
	"too": true, "very": true, "just": true, "there": true, "here": true,
}

// isStopword reports whether a lowercased word is a stopword.
func isStopword(word string) bool {
	return englishStopwords[word]
}
