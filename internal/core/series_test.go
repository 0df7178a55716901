package core

import (
	"reflect"
	"testing"
)

func TestCompleteCounts(t *testing.T) {
	cases := []struct {
		name   string
		sparse map[int]int64
		order  Order
		want   []YearCount
	}{
		{
			name:   "fills gaps ascending",
			sparse: map[int]int64{2018: 3, 2021: 1},
			order:  Ascending,
			want:   []YearCount{{2018, 3}, {2019, 0}, {2020, 0}, {2021, 1}},
		},
		{
			name:   "fills gaps descending",
			sparse: map[int]int64{2018: 3, 2021: 1},
			order:  Descending,
			want:   []YearCount{{2021, 1}, {2020, 0}, {2019, 0}, {2018, 3}},
		},
		{
			name:   "single year",
			sparse: map[int]int64{2020: 7},
			order:  Ascending,
			want:   []YearCount{{2020, 7}},
		},
		{
			name:   "empty stays empty",
			sparse: map[int]int64{},
			order:  Ascending,
			want:   nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompleteCounts(tc.sparse, tc.order)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("CompleteCounts = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompleteCountsRangeInvariant(t *testing.T) {
	sparse := map[int]int64{1999: 2, 2004: 1, 2001: 5}
	got := CompleteCounts(sparse, Ascending)
	if len(got) != 2004-1999+1 {
		t.Fatalf("length = %d, want %d", len(got), 2004-1999+1)
	}
	for i, p := range got {
		if p.Year != 1999+i {
			t.Fatalf("year at %d = %d, want %d", i, p.Year, 1999+i)
		}
		if want := sparse[p.Year]; p.Count != want {
			t.Fatalf("count at %d = %d, want %d", p.Year, p.Count, want)
		}
	}
}

func TestCompleteAmounts(t *testing.T) {
	sparse := map[int]Money{2020: {Cents: 1500}, 2022: {Cents: 500}}
	got := CompleteAmounts(sparse, Ascending)
	want := []YearAmount{
		{2020, Money{Cents: 1500}},
		{2021, Money{}},
		{2022, Money{Cents: 500}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CompleteAmounts = %v, want %v", got, want)
	}
	if got := CompleteAmounts(nil, Ascending); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
