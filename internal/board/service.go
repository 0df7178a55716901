// Package board assembles the dashboard datasets. It composes the storage
// reads with the pure aggregation functions in core and is the only layer
// the HTTP handlers talk to.
package board

import (
	"context"

	"golang.org/x/sync/errgroup"

	"acervo/internal/core"
)

// Store is the read surface the board needs from storage. Every call is a
// fresh read of the backing dataset; the board adds no caching on top.
type Store interface {
	BookRows(ctx context.Context) ([]core.BookRow, error)
	ReadingRows(ctx context.Context) ([]core.ReadingRow, error)
	PriceRows(ctx context.Context) ([]core.PriceRow, error)
	UnavailableBooks(ctx context.Context) ([]core.BookRef, error)
	AuthorCounts(ctx context.Context) ([]core.AuthorCount, error)
	ReadingsPerYear(ctx context.Context) (map[int]int64, error)
	SpendPerYear(ctx context.Context) (map[int]core.Money, error)
	TypeCounts(ctx context.Context) ([]core.TypeCount, error)
	AvailabilityCounts(ctx context.Context) ([]core.AvailabilityCount, error)
	TotalPricePaid(ctx context.Context) (core.Money, error)
	AvgPrice(ctx context.Context) (core.Average, error)
	AvgPriceByType(ctx context.Context, bookType string) (core.Average, error)
	TypeOptions(ctx context.Context) ([]string, error)
	YearOptions(ctx context.Context) ([]int, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

type (
	// TypeAverage pairs a book type with its average paid price.
	TypeAverage struct {
		Type    string
		Average core.Average
	}

	// PriceStats carries the overall average and the per-type averages.
	PriceStats struct {
		Overall core.Average
		ByType  []TypeAverage
	}

	// Overview bundles every chart dataset of the dashboard.
	Overview struct {
		Authors      []core.AuthorCount
		Readings     []core.YearCount
		Spending     core.SpendingHistory
		Types        []core.TypeCount
		Availability []core.AvailabilityCount
		Prices       PriceStats
	}
)

// AuthorCounts returns the per-author book count, alphabetical.
func (s *Service) AuthorCounts(ctx context.Context) ([]core.AuthorCount, error) {
	return s.store.AuthorCounts(ctx)
}

// ReadingsByYear returns the gap-filled readings series, newest year first.
func (s *Service) ReadingsByYear(ctx context.Context) ([]core.YearCount, error) {
	sparse, err := s.store.ReadingsPerYear(ctx)
	if err != nil {
		return nil, err
	}
	return core.CompleteCounts(sparse, core.Descending), nil
}

// SpendingHistory returns the ascending gap-filled expenditure series with
// its cumulative line and grand-total caption.
func (s *Service) SpendingHistory(ctx context.Context) (core.SpendingHistory, error) {
	sparse, err := s.store.SpendPerYear(ctx)
	if err != nil {
		return core.SpendingHistory{}, err
	}
	total, err := s.store.TotalPricePaid(ctx)
	if err != nil {
		return core.SpendingHistory{}, err
	}
	return core.BuildSpendingHistory(sparse, total), nil
}

// TypeBreakdown returns the per-type count for the pie chart.
func (s *Service) TypeBreakdown(ctx context.Context) ([]core.TypeCount, error) {
	return s.store.TypeCounts(ctx)
}

// AvailabilityBreakdown returns the availability split for the pie chart.
func (s *Service) AvailabilityBreakdown(ctx context.Context) ([]core.AvailabilityCount, error) {
	return s.store.AvailabilityCounts(ctx)
}

// AveragePrices returns the overall average paid price and one average per
// book type. Undefined averages stay undefined; the caller renders them as
// a "no data" state.
func (s *Service) AveragePrices(ctx context.Context) (PriceStats, error) {
	overall, err := s.store.AvgPrice(ctx)
	if err != nil {
		return PriceStats{}, err
	}
	types, err := s.store.TypeOptions(ctx)
	if err != nil {
		return PriceStats{}, err
	}
	stats := PriceStats{Overall: overall}
	for _, t := range types {
		avg, err := s.store.AvgPriceByType(ctx, t)
		if err != nil {
			return PriceStats{}, err
		}
		stats.ByType = append(stats.ByType, TypeAverage{Type: t, Average: avg})
	}
	return stats, nil
}

// BooksByType reads the current table rows and applies the type selection.
// Rows are re-read on every call so the view never serves stale data.
func (s *Service) BooksByType(ctx context.Context, sel core.TypeSelection) ([]core.BookRow, error) {
	rows, err := s.store.BookRows(ctx)
	if err != nil {
		return nil, err
	}
	return core.NewTypeFilter(rows).Apply(sel), nil
}

// ReadingsList reads the current readings rows and applies the year
// selection.
func (s *Service) ReadingsList(ctx context.Context, sel core.YearSelection) ([]core.ReadingRow, error) {
	rows, err := s.store.ReadingRows(ctx)
	if err != nil {
		return nil, err
	}
	return core.NewYearFilter(rows).Apply(sel), nil
}

// PriceList returns the book-price table rows, most expensive first.
func (s *Service) PriceList(ctx context.Context) ([]core.PriceRow, error) {
	return s.store.PriceRows(ctx)
}

// UnavailableBooks returns the books without a copy in the collection.
func (s *Service) UnavailableBooks(ctx context.Context) ([]core.BookRef, error) {
	return s.store.UnavailableBooks(ctx)
}

// TypeOptions returns the values of the type filter dropdown.
func (s *Service) TypeOptions(ctx context.Context) ([]string, error) {
	return s.store.TypeOptions(ctx)
}

// YearOptions returns the values of the year filter dropdown.
func (s *Service) YearOptions(ctx context.Context) ([]int, error) {
	return s.store.YearOptions(ctx)
}

// Overview computes all chart datasets for one dashboard render. The
// datasets are independent of each other, so they fan out on an errgroup;
// each goroutine reads its own rows and writes only its own field.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov.Authors, err = s.AuthorCounts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Readings, err = s.ReadingsByYear(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Spending, err = s.SpendingHistory(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Types, err = s.TypeBreakdown(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Availability, err = s.AvailabilityBreakdown(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Prices, err = s.AveragePrices(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return ov, nil
}
