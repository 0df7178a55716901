package core

type (
	// SpendPoint pairs one year's spending with the running total up to and
	// including that year.
	SpendPoint struct {
		Year       int
		Spent      Money
		Cumulative Money
	}

	// SpendingHistory is the ascending, gap-filled yearly expenditure series
	// with its cumulative line and the grand-total caption shown next to it.
	SpendingHistory struct {
		Points     []SpendPoint
		Total      Money
		TotalLabel string
	}
)

// BuildSpendingHistory completes the sparse per-year spending and folds in
// the prefix sums. The cumulative value of the last point equals the sum of
// all sparse values, and must match the independently computed price total
// passed in for the caption.
func BuildSpendingHistory(sparse map[int]Money, total Money) SpendingHistory {
	series := CompleteAmounts(sparse, Ascending)
	points := make([]SpendPoint, len(series))
	var run Money
	for i, p := range series {
		run = run.Add(p.Amount)
		points[i] = SpendPoint{Year: p.Year, Spent: p.Amount, Cumulative: run}
	}
	return SpendingHistory{
		Points:     points,
		Total:      total,
		TotalLabel: "Total gasto: " + total.BRL(),
	}
}
