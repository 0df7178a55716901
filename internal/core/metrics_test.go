package core

import (
	"reflect"
	"testing"
)

func sampleBooks() []Book {
	return []Book{
		{Title: "Dom Casmurro", Author: "Machado de Assis", Type: TypePhysical,
			PricePaid: KnownPrice(1000), AcquisitionYear: KnownYear(2019),
			FirstReadYear: KnownYear(2020), InCollection: true},
		{Title: "Memórias Póstumas", Author: "Machado de Assis", Type: TypeDigital,
			PricePaid: KnownPrice(0), AcquisitionYear: KnownYear(2021),
			FirstReadYear: KnownYear(2022), InCollection: true},
		{Title: "Grande Sertão", Author: "Guimarães Rosa", Type: TypePhysical,
			AcquisitionYear: Year{}, FirstReadYear: Year{}, InCollection: false},
	}
}

func TestCountByAuthor(t *testing.T) {
	got := CountByAuthor(sampleBooks())
	want := []AuthorCount{
		{Author: "Guimarães Rosa", Count: 1},
		{Author: "Machado de Assis", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByAuthor = %v, want %v", got, want)
	}
}

func TestCountByAuthorEmpty(t *testing.T) {
	if got := CountByAuthor(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSumPrice(t *testing.T) {
	// The zero-price book has a present price and counts as zero; the book
	// with an unknown price is excluded rather than treated as zero.
	if got := SumPrice(sampleBooks()); got.Cents != 1000 {
		t.Fatalf("SumPrice = %d cents, want 1000", got.Cents)
	}
}

func TestAvgPrice(t *testing.T) {
	cases := []struct {
		name  string
		books []Book
		want  Average
	}{
		{
			name:  "one qualifying row",
			books: sampleBooks(),
			want:  Average{Cents: 1000, Valid: true},
		},
		{
			name: "rounds half up",
			books: []Book{
				{Title: "a", Author: "x", Type: TypePhysical, PricePaid: KnownPrice(100)},
				{Title: "b", Author: "x", Type: TypePhysical, PricePaid: KnownPrice(101)},
			},
			want: Average{Cents: 101, Valid: true},
		},
		{
			name: "no qualifying rows is undefined",
			books: []Book{
				{Title: "a", Author: "x", Type: TypePhysical, PricePaid: KnownPrice(0)},
				{Title: "b", Author: "x", Type: TypePhysical},
			},
			want: Average{},
		},
		{
			name: "empty input is undefined",
			want: Average{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AvgPrice(tc.books)
			if got != tc.want {
				t.Fatalf("AvgPrice = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAvgPriceByType(t *testing.T) {
	books := sampleBooks()
	if got := AvgPriceByType(books, TypePhysical); !got.Valid || got.Cents != 1000 {
		t.Fatalf("AvgPriceByType(Físico) = %+v, want 1000 cents", got)
	}
	// The only digital book is free, so its average is undefined.
	if got := AvgPriceByType(books, TypeDigital); got.Valid {
		t.Fatalf("AvgPriceByType(Digital) = %+v, want undefined", got)
	}
}

func TestCountByYear(t *testing.T) {
	got := CountByYear(sampleBooks(), FirstReadYearField)
	want := map[int]int64{2020: 1, 2022: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByYear = %v, want %v", got, want)
	}
}

func TestSumPriceByYear(t *testing.T) {
	books := append(sampleBooks(), Book{
		Title: "Vidas Secas", Author: "Graciliano Ramos", Type: TypePhysical,
		AcquisitionYear: KnownYear(2023), InCollection: true,
	})
	got := SumPriceByYear(books, AcquisitionYearField)
	want := map[int]Money{
		2019: {Cents: 1000},
		2021: {Cents: 0},
		// known year, unknown price: the year still shows up with zero
		2023: {Cents: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SumPriceByYear = %v, want %v", got, want)
	}
}

func TestCountByType(t *testing.T) {
	got := CountByType(sampleBooks())
	want := []TypeCount{
		{Type: TypePhysical, Count: 2},
		{Type: TypeDigital, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByType = %v, want %v", got, want)
	}
}

func TestCountByAvailability(t *testing.T) {
	got := CountByAvailability(sampleBooks())
	want := []AvailabilityCount{
		{Label: AvailableLabel, Count: 2},
		{Label: UnavailableLabel, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByAvailability = %v, want %v", got, want)
	}
	if got := CountByAvailability(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestScenarioFromTwoRows(t *testing.T) {
	rows := []Book{
		{Title: "one", Author: "A", Type: TypePhysical,
			PricePaid: KnownPrice(1000), FirstReadYear: KnownYear(2020)},
		{Title: "two", Author: "B", Type: TypePhysical,
			PricePaid: KnownPrice(0), FirstReadYear: KnownYear(2022)},
	}

	authors := CountByAuthor(rows)
	wantAuthors := []AuthorCount{{Author: "A", Count: 1}, {Author: "B", Count: 1}}
	if !reflect.DeepEqual(authors, wantAuthors) {
		t.Fatalf("CountByAuthor = %v, want %v", authors, wantAuthors)
	}

	if sum := SumPrice(rows); sum.Cents != 1000 {
		t.Fatalf("SumPrice = %d, want 1000", sum.Cents)
	}
	if avg := AvgPrice(rows); !avg.Valid || avg.Cents != 1000 {
		t.Fatalf("AvgPrice = %+v, want defined 1000", avg)
	}

	series := CompleteCounts(CountByYear(rows, FirstReadYearField), Ascending)
	wantSeries := []YearCount{{2020, 1}, {2021, 0}, {2022, 1}}
	if !reflect.DeepEqual(series, wantSeries) {
		t.Fatalf("completed series = %v, want %v", series, wantSeries)
	}
}
