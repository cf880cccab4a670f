// Package terminology provides loading and lookup of user terminology
// tables. A table maps normalized source-language terms, including
// multi-word terms, to caller-supplied target-language replacements.
package terminology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"ghana-translator/internal/logger"
	"ghana-translator/internal/types"
)

// Header synonyms accepted for column auto-detection, matched
// case-insensitively. If either column cannot be identified, the first
// two columns are used instead.
var (
	sourceColumnNames      = []string{"text", "english", "source", "term", "word"}
	replacementColumnNames = []string{"text_translated", "translation", "target", "translated"}
)

// Entry is a single terminology mapping.
type Entry struct {
	Key         string `json:"term"`
	Replacement string `json:"translation"`
}

// Table is an immutable mapping from normalized source terms to their
// replacements. It is built once at load time and safe for concurrent
// read access.
type Table struct {
	entries map[string]Entry
	keys    []string // first-appearance order, for listing and export
	maxToks int
	source  string
}

// Normalize converts a phrase to its table key form: lowercased,
// trimmed, internal whitespace collapsed to single spaces.
func Normalize(phrase string) string {
	fields := strings.Fields(strings.ToLower(phrase))
	return strings.Join(fields, " ")
}

// Load reads a terminology table from a CSV file. The delimiter is
// sniffed from the file contents and columns are identified by header
// synonyms. Returns a CONFIG_ERROR AppError when the file is missing,
// unreadable, or fewer than two usable columns can be identified.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrConfig,
			"cannot open terminology source", path, err)
	}
	defer f.Close()

	table, err := LoadReader(f, path)
	if err != nil {
		return nil, err
	}

	logger.Info("terminology loaded",
		logger.String("source", path),
		logger.Int("terms", table.Len()),
		logger.Int("maxTokens", table.MaxTokens()))
	return table, nil
}

// LoadReader reads a terminology table from r. The name is used in
// error messages and logs only.
func LoadReader(r io.Reader, name string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrConfig,
			"cannot read terminology source", name, err)
	}

	delimiter := sniffDelimiter(data)

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, types.NewAppErrorWithDetails(types.ErrConfig,
				"terminology source is empty", name, nil)
		}
		return nil, types.NewAppErrorWithDetails(types.ErrConfig,
			"cannot parse terminology header", name, err)
	}

	srcCol, dstCol, err := resolveColumns(header)
	if err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrConfig,
			err.Error(), name, nil)
	}

	table := &Table{
		entries: make(map[string]Entry),
		source:  name,
	}

	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, skip it rather than reject the whole file
			skipped++
			continue
		}
		if len(row) <= srcCol || len(row) <= dstCol {
			skipped++
			continue
		}

		key := Normalize(row[srcCol])
		replacement := strings.TrimSpace(row[dstCol])
		if key == "" || replacement == "" {
			skipped++
			continue
		}

		// Later duplicates overwrite earlier entries, keeping the
		// original listing position
		if _, seen := table.entries[key]; !seen {
			table.keys = append(table.keys, key)
		}
		table.entries[key] = Entry{Key: key, Replacement: replacement}

		if n := len(strings.Fields(key)); n > table.maxToks {
			table.maxToks = n
		}
	}

	if skipped > 0 {
		logger.Debug("terminology rows skipped",
			logger.String("source", name), logger.Int("skipped", skipped))
	}

	return table, nil
}

// sniffDelimiter picks the delimiter from the first chunk of the file:
// comma, then semicolon, then tab, defaulting to comma.
func sniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	s := string(sample)
	switch {
	case strings.ContainsRune(s, ','):
		return ','
	case strings.ContainsRune(s, ';'):
		return ';'
	case strings.ContainsRune(s, '\t'):
		return '\t'
	default:
		return ','
	}
}

// resolveColumns identifies the source-term and replacement column
// indexes from the header row.
func resolveColumns(header []string) (srcCol, dstCol int, err error) {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	srcCol, dstCol = -1, -1
	for _, name := range sourceColumnNames {
		for i, h := range lowered {
			if h == name {
				srcCol = i
				break
			}
		}
		if srcCol >= 0 {
			break
		}
	}
	for _, name := range replacementColumnNames {
		for i, h := range lowered {
			if h == name {
				dstCol = i
				break
			}
		}
		if dstCol >= 0 {
			break
		}
	}

	// Fall back to the first two columns when either is unidentified
	if srcCol < 0 || dstCol < 0 {
		if len(lowered) < 2 {
			return 0, 0, fmt.Errorf("terminology source needs at least two columns")
		}
		srcCol, dstCol = 0, 1
	}
	return srcCol, dstCol, nil
}

// Lookup returns the entry for a phrase, normalizing it first.
func (t *Table) Lookup(phrase string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	entry, ok := t.entries[Normalize(phrase)]
	return entry, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// MaxTokens returns the word count of the longest key, 0 for an empty
// table. Candidate span generation uses this as its n-gram ceiling.
func (t *Table) MaxTokens() int {
	if t == nil {
		return 0
	}
	return t.maxToks
}

// Entries returns all entries in first-appearance order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.entries[k])
	}
	return out
}

// Source returns the name of the source the table was loaded from.
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}
