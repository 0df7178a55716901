package core

import "sort"

type (
	// AuthorCount is one entry of the per-author book count.
	AuthorCount struct {
		Author string
		Count  int64
	}

	// TypeCount is one entry of the per-type book count.
	TypeCount struct {
		Type  string
		Count int64
	}

	// AvailabilityCount is one slice of the availability breakdown.
	AvailabilityCount struct {
		Label string
		Count int64
	}
)

// YearField selects which of a book's optional year attributes a per-year
// grouping runs over.
type YearField int

const (
	AcquisitionYearField YearField = iota
	FirstReadYearField
)

func (f YearField) of(b Book) Year {
	if f == AcquisitionYearField {
		return b.AcquisitionYear
	}
	return b.FirstReadYear
}

// CountByAuthor groups books by author, entries in ascending alphabetical
// order. An empty input yields an empty result, not an error.
func CountByAuthor(books []Book) []AuthorCount {
	counts := make(map[string]int64, len(books))
	for _, b := range books {
		counts[b.Author]++
	}
	authors := make([]string, 0, len(counts))
	for a := range counts {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	out := make([]AuthorCount, len(authors))
	for i, a := range authors {
		out[i] = AuthorCount{Author: a, Count: counts[a]}
	}
	return out
}

// SumPrice totals the paid prices. Books without a known price are excluded;
// a present zero price still participates as zero.
func SumPrice(books []Book) Money {
	var total Money
	for _, b := range books {
		if b.PricePaid.Valid {
			total.Cents += b.PricePaid.Cents
		}
	}
	return total
}

// AvgPrice averages the price over books with a known, positive paid price.
// With no qualifying book the result is undefined, never zero.
func AvgPrice(books []Book) Average {
	return averagePrice(books, func(Book) bool { return true })
}

// AvgPriceByType is AvgPrice restricted to one book type.
func AvgPriceByType(books []Book, bookType string) Average {
	return averagePrice(books, func(b Book) bool { return b.Type == bookType })
}

func averagePrice(books []Book, qualifies func(Book) bool) Average {
	var sum, n int64
	for _, b := range books {
		if !qualifies(b) || !b.PricePaid.Valid || b.PricePaid.Cents <= 0 {
			continue
		}
		sum += b.PricePaid.Cents
		n++
	}
	if n == 0 {
		return Average{}
	}
	// half-up rounding to whole cents
	return Average{Cents: (sum + n/2) / n, Valid: true}
}

// CountByYear counts books per year of the given field. Books with an
// unknown year are left out entirely.
func CountByYear(books []Book, field YearField) map[int]int64 {
	counts := make(map[int]int64)
	for _, b := range books {
		if y := field.of(b); y.Valid {
			counts[y.Value]++
		}
	}
	return counts
}

// SumPriceByYear totals paid prices per year of the given field. Books with
// an unknown year are left out; a known year with no known prices still
// appears, with a zero total.
func SumPriceByYear(books []Book, field YearField) map[int]Money {
	sums := make(map[int]Money)
	for _, b := range books {
		y := field.of(b)
		if !y.Valid {
			continue
		}
		m := sums[y.Value]
		if b.PricePaid.Valid {
			m.Cents += b.PricePaid.Cents
		}
		sums[y.Value] = m
	}
	return sums
}

// CountByType groups books by type, entries in first-seen order.
func CountByType(books []Book) []TypeCount {
	index := make(map[string]int)
	var out []TypeCount
	for _, b := range books {
		i, ok := index[b.Type]
		if !ok {
			i = len(out)
			index[b.Type] = i
			out = append(out, TypeCount{Type: b.Type})
		}
		out[i].Count++
	}
	return out
}

// CountByAvailability splits books into the two availability labels.
// An empty input yields an empty result; otherwise both labels are present
// so the breakdown always renders the same pair of slices.
func CountByAvailability(books []Book) []AvailabilityCount {
	if len(books) == 0 {
		return nil
	}
	out := []AvailabilityCount{
		{Label: AvailableLabel},
		{Label: UnavailableLabel},
	}
	for _, b := range books {
		if b.InCollection {
			out[0].Count++
		} else {
			out[1].Count++
		}
	}
	return out
}
