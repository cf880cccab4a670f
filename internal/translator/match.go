package translator

import (
	"sort"

	"ghana-translator/internal/terminology"
	"ghana-translator/internal/types"
)

// Match ties an accepted candidate span to its terminology entry and
// its placeholder id. Matches are owned by a single pipeline
// invocation and never shared across calls.
type Match struct {
	Span        types.CandidateSpan
	Key         string
	Replacement string
	ID          int
}

// resolveMatches selects the non-overlapping set of terminology
// matches for a text from the extractor's candidate spans.
//
// Candidates are kept only when their normalized surface has a table
// entry. Overlaps resolve deterministically: the span covering more
// bytes wins, exact length ties go to the earliest start offset, and
// any candidate overlapping an accepted span by even one byte is
// discarded entirely. Accepted matches are returned in ascending start
// order with ids 0..n-1 assigned in that order, independent of the
// order candidates arrive in.
func resolveMatches(text string, candidates []types.CandidateSpan, table *terminology.Table) []Match {
	if table.Len() == 0 || len(candidates) == 0 {
		return nil
	}

	hits := make([]Match, 0, len(candidates))
	seen := make(map[[2]int]bool, len(candidates))
	for _, span := range candidates {
		if span.Start < 0 || span.End > len(text) || span.Start >= span.End {
			continue
		}
		if text[span.Start:span.End] != span.Surface {
			continue
		}
		pos := [2]int{span.Start, span.End}
		if seen[pos] {
			continue
		}
		entry, ok := table.Lookup(span.Surface)
		if !ok {
			continue
		}
		seen[pos] = true
		hits = append(hits, Match{Span: span, Key: entry.Key, Replacement: entry.Replacement})
	}

	// Longest span first, then earliest start. After deduplication the
	// (length, start) pair is unique, so the order is total.
	sort.Slice(hits, func(i, j int) bool {
		li, lj := hits[i].Span.Len(), hits[j].Span.Len()
		if li != lj {
			return li > lj
		}
		return hits[i].Span.Start < hits[j].Span.Start
	})

	var accepted []Match
	for _, h := range hits {
		overlaps := false
		for _, a := range accepted {
			if h.Span.Overlaps(a.Span) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, h)
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Span.Start < accepted[j].Span.Start
	})
	for i := range accepted {
		accepted[i].ID = i
	}
	return accepted
}
