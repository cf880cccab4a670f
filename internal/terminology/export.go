package terminology

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ghana-translator/internal/types"
)

// ExportJSON writes the table's entries as an indented JSON array in
// first-appearance order.
func (t *Table) ExportJSON(w io.Writer) error {
	entries := t.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrInternal, "failed to marshal terminology", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return types.NewAppError(types.ErrFileIO, "failed to write terminology export", err)
	}
	return nil
}

// ExportCSV writes the table's entries as CSV with a term,translation
// header in first-appearance order.
func (t *Table) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"term", "translation"}); err != nil {
		return types.NewAppError(types.ErrFileIO, "failed to write terminology export", err)
	}
	for _, e := range t.Entries() {
		if err := cw.Write([]string{e.Key, e.Replacement}); err != nil {
			return types.NewAppError(types.ErrFileIO, "failed to write terminology export", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return types.NewAppError(types.ErrFileIO, "failed to write terminology export", err)
	}
	return nil
}

// sampleEntries is the built-in example terminology (English to Twi).
var sampleEntries = []Entry{
	{Key: "house", Replacement: "efie"},
	{Key: "car", Replacement: "kaa"},
	{Key: "school", Replacement: "sukuu"},
	{Key: "water", Replacement: "nsu"},
	{Key: "market", Replacement: "dwabea"},
}

// WriteSample writes the built-in sample terminology CSV to path.
func WriteSample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return types.NewAppErrorWithDetails(types.ErrFileIO,
			"cannot create sample terminology file", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"term", "translation"}); err != nil {
		return types.NewAppError(types.ErrFileIO, "failed to write sample terminology", err)
	}
	for _, e := range sampleEntries {
		if err := cw.Write([]string{e.Key, e.Replacement}); err != nil {
			return types.NewAppError(types.ErrFileIO, "failed to write sample terminology", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Validate loads a terminology file and returns a short human-readable
// verdict. The error is non-nil when the file is invalid.
func Validate(path string) (string, error) {
	table, err := Load(path)
	if err != nil {
		return fmt.Sprintf("%s is invalid: %v", path, err), err
	}
	if table.Len() == 0 {
		return fmt.Sprintf("%s is valid but contains no usable terms", path), nil
	}
	return fmt.Sprintf("%s is valid: %d terms", path, table.Len()), nil
}
