package summary

import "strings"

// HeaderIndex maps normalized column names to their position in a row.
// Built once per fetch from the sheet's header row, so field extraction
// survives columns being reordered or inserted by sheet editors.
type HeaderIndex map[string]int

// NewHeaderIndex builds the index from the header row. Names are trimmed
// and case-folded; on duplicate names the first occurrence wins.
func NewHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// Column returns the position of a column by name.
func (h HeaderIndex) Column(name string) (int, bool) {
	i, ok := h[normalize(name)]
	return i, ok
}

// Field extracts the named column's cell from a row. Missing columns and
// short rows degrade to "" rather than an error.
func (h HeaderIndex) Field(row []string, name string) string {
	i, ok := h.Column(name)
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
