package translator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// applySurfaceCase carries the casing of the matched source surface
// over to the replacement: ALL-CAPS stays all-caps, Title Case stays
// title case, a capitalized first letter stays capitalized, and a
// lowercase surface lowercases the replacement.
func applySurfaceCase(surface, replacement string) string {
	if surface == "" || replacement == "" {
		return replacement
	}

	switch {
	case isUpperCase(surface):
		return strings.ToUpper(replacement)
	case isTitleCase(surface):
		return titleCaser.String(replacement)
	case startsUpper(surface):
		r, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToUpper(r)) + strings.ToLower(replacement[size:])
	default:
		return strings.ToLower(replacement)
	}
}

// isUpperCase reports whether s contains letters and all of them are
// upper case.
func isUpperCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isTitleCase reports whether every word of s starts with an upper
// case letter. Single capitalized words count only when the rest of
// the word is lower case, so ALL-CAPS input is handled above.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return len(words) > 1 || s == titleCaser.String(strings.ToLower(s))
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

var sentenceStartPattern = regexp.MustCompile(`([.!?]\s+)(\p{Ll})`)

// capitalizeSentences uppercases the first letter of the text and the
// first letter after sentence-ending punctuation.
func capitalizeSentences(text string) string {
	if text == "" {
		return text
	}

	r, size := utf8.DecodeRuneInString(text)
	result := string(unicode.ToUpper(r)) + text[size:]

	return sentenceStartPattern.ReplaceAllStringFunc(result, func(s string) string {
		groups := sentenceStartPattern.FindStringSubmatch(s)
		return groups[1] + strings.ToUpper(groups[2])
	})
}
