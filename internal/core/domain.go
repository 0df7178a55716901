package core

import (
	"errors"
	"strings"
)

const (
	TypePhysical = "Físico"
	TypeDigital  = "Digital"

	AvailableLabel   = "Disponível"
	UnavailableLabel = "Não disponível"
)

type (
	// Year is an optional year attribute. Valid reports whether the year is
	// known; an unacquired or unread book carries an invalid Year.
	Year struct {
		Value int
		Valid bool
	}

	// Price is an optional amount in cents. Zero with Valid set means the
	// book was a gift or free; Valid unset means the price is unknown. The
	// two states aggregate differently and must not be conflated.
	Price struct {
		Cents int64
		Valid bool
	}

	// Book is one record of the collection, immutable once read.
	Book struct {
		Title           string
		Author          string
		Type            string
		PricePaid       Price
		AcquisitionYear Year
		FirstReadYear   Year
		InCollection    bool
	}

	// BookRow is one row of the books-by-type table view.
	BookRow struct {
		Type   string
		Title  string
		Author string
	}

	// ReadingRow is one row of the readings-per-year table view.
	ReadingRow struct {
		Title string
		Year  int
	}

	// PriceRow is one row of the book prices table view.
	PriceRow struct {
		Title string
		Price Price
	}

	// BookRef identifies a book by title and author.
	BookRef struct {
		Title  string
		Author string
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyAuthor   = errors.New("empty author")
	ErrEmptyType     = errors.New("empty type")
	ErrNegativePrice = errors.New("negative price")
)

func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrEmptyAuthor
	}
	if strings.TrimSpace(b.Type) == "" {
		return ErrEmptyType
	}
	if b.PricePaid.Valid && b.PricePaid.Cents < 0 {
		return ErrNegativePrice
	}
	return nil
}

// KnownYear builds a valid Year.
func KnownYear(v int) Year {
	return Year{Value: v, Valid: true}
}

// KnownPrice builds a valid Price from cents.
func KnownPrice(cents int64) Price {
	return Price{Cents: cents, Valid: true}
}
