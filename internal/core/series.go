package core

type (
	// YearCount is one point of a per-year count series.
	YearCount struct {
		Year  int
		Count int64
	}

	// YearAmount is one point of a per-year money series.
	YearAmount struct {
		Year   int
		Amount Money
	}
)

// Order controls the year direction of a completed series. Direction is a
// presentation preference; completeness of the range is the contract.
type Order int

const (
	Ascending Order = iota
	Descending
)

// CompleteCounts expands a sparse year-to-count mapping into a series with
// one point for every year between the smallest and largest observed,
// zero-filled where the mapping has no entry. An empty mapping produces an
// empty series; no range is fabricated.
func CompleteCounts(sparse map[int]int64, order Order) []YearCount {
	if len(sparse) == 0 {
		return nil
	}
	min, max := yearBounds(sparse)
	out := make([]YearCount, 0, max-min+1)
	for y := min; y <= max; y++ {
		out = append(out, YearCount{Year: y, Count: sparse[y]})
	}
	if order == Descending {
		reverse(out)
	}
	return out
}

// CompleteAmounts is CompleteCounts for money-valued series.
func CompleteAmounts(sparse map[int]Money, order Order) []YearAmount {
	if len(sparse) == 0 {
		return nil
	}
	min, max := moneyYearBounds(sparse)
	out := make([]YearAmount, 0, max-min+1)
	for y := min; y <= max; y++ {
		out = append(out, YearAmount{Year: y, Amount: sparse[y]})
	}
	if order == Descending {
		reverse(out)
	}
	return out
}

func yearBounds(sparse map[int]int64) (min, max int) {
	first := true
	for y := range sparse {
		if first || y < min {
			min = y
		}
		if first || y > max {
			max = y
		}
		first = false
	}
	return min, max
}

func moneyYearBounds(sparse map[int]Money) (min, max int) {
	first := true
	for y := range sparse {
		if first || y < min {
			min = y
		}
		if first || y > max {
			max = y
		}
		first = false
	}
	return min, max
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
