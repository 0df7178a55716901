package core

type (
	// TypeSelection is the multi-select type filter. Empty means unfiltered.
	TypeSelection []string

	// YearSelection is the single-select year filter. Valid unset means
	// unfiltered.
	YearSelection struct {
		Year  int
		Valid bool
	}
)

// TypeFilter recomputes the books-by-type table for a type selection.
// The base rows are fixed at construction and never mutated; every Apply
// rebuilds the full output from them, so applying the same selection twice
// yields identical rows and clearing the selection restores the base set.
type TypeFilter struct {
	base []BookRow
}

func NewTypeFilter(base []BookRow) *TypeFilter {
	return &TypeFilter{base: base}
}

// Apply returns the base rows whose type is in the selection, preserving
// original row order. An empty selection returns every row.
func (f *TypeFilter) Apply(sel TypeSelection) []BookRow {
	if len(sel) == 0 {
		return append([]BookRow(nil), f.base...)
	}
	selected := make(map[string]struct{}, len(sel))
	for _, t := range sel {
		selected[t] = struct{}{}
	}
	out := make([]BookRow, 0, len(f.base))
	for _, r := range f.base {
		if _, ok := selected[r.Type]; ok {
			out = append(out, r)
		}
	}
	return out
}

// YearFilter recomputes the readings table for a year selection. Same
// contract as TypeFilter, with an equality test instead of membership.
type YearFilter struct {
	base []ReadingRow
}

func NewYearFilter(base []ReadingRow) *YearFilter {
	return &YearFilter{base: base}
}

// Apply returns the base rows matching the selected year, preserving
// original row order. An unset selection returns every row.
func (f *YearFilter) Apply(sel YearSelection) []ReadingRow {
	if !sel.Valid {
		return append([]ReadingRow(nil), f.base...)
	}
	out := make([]ReadingRow, 0, len(f.base))
	for _, r := range f.base {
		if r.Year == sel.Year {
			out = append(out, r)
		}
	}
	return out
}
