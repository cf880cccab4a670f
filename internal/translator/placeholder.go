package translator

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern recognizes the structural shape of a placeholder
// token in service output. The translation service is an uncontrolled
// text transform: it may insert whitespace inside the token, convert
// the delimiters to fullwidth forms, HTML-escape them, or change the
// escape's case. The pattern therefore accepts ASCII, fullwidth, and
// entity-escaped delimiters with optional internal whitespace
// (including the ideographic space), and ASCII or fullwidth digits
// for the numeral.
var placeholderPattern = regexp.MustCompile(`(?i)(?:<|＜|&lt;)[\s\p{Zs}]*([0-9０-９]+)[\s\p{Zs}]*(?:>|＞|&gt;)`)

// placeholderToken returns the canonical token injected for an id.
func placeholderToken(id int) string {
	return fmt.Sprintf("<%d>", id)
}

// injectPlaceholders replaces each match's exact byte range with its
// placeholder token. Matches must be sorted by ascending start offset;
// replacement runs from the highest offset down so earlier offsets
// stay valid while later ones are rewritten. All non-matched text is
// left untouched.
func injectPlaceholders(text string, matches []Match) string {
	result := text
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		result = result[:m.Span.Start] + placeholderToken(m.ID) + result[m.Span.End:]
	}
	return result
}

// restorePlaceholders scans service output once, left to right, and
// replaces every recognized token whose id maps to a known match with
// that match's replacement. Tokens with unknown ids and duplicated
// tokens for an already-restored id are left as raw text. Returns the
// restored text and the ids restored, in scan order. Matches whose
// token never reappears are simply absent from the returned ids; this
// never raises an error.
func restorePlaceholders(output string, matches []Match) (string, []int) {
	restored := make([]int, 0, len(matches))
	if len(matches) == 0 {
		return output, restored
	}

	byID := make(map[int]Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	var sb strings.Builder
	sb.Grow(len(output))
	done := make(map[int]bool, len(matches))
	last := 0

	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(output, -1) {
		start, end := loc[0], loc[1]
		id, ok := parsePlaceholderID(output[loc[2]:loc[3]])
		if !ok {
			continue
		}
		m, known := byID[id]
		if !known || done[id] {
			continue
		}

		sb.WriteString(output[last:start])
		sb.WriteString(m.Replacement)
		last = end
		done[id] = true
		restored = append(restored, id)
	}
	sb.WriteString(output[last:])
	return sb.String(), restored
}

// parsePlaceholderID decodes the embedded numeral of a token,
// accepting fullwidth digits.
func parsePlaceholderID(s string) (int, bool) {
	n := 0
	seen := false
	for _, r := range s {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= '０' && r <= '９':
			d = int(r - '０')
		default:
			return 0, false
		}
		n = n*10 + d
		seen = true
		if n > 1<<30 {
			return 0, false
		}
	}
	return n, seen
}
