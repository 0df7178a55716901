// Package storage is the read-only access boundary to the livros dataset.
// Every accessor performs a fresh read; the repository keeps no cache, so
// each dashboard recomputation sees the current state of the database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"acervo/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %v", ErrDataUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// run compiles the descriptor and executes it. Compile errors pass through
// as ErrMalformedQuery; execution errors wrap ErrDataUnavailable.
func (r *SQLiteRepository) run(ctx context.Context, q Query) (*sql.Rows, error) {
	stmt, args, err := q.Compile()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query livros: %w: %v", ErrDataUnavailable, err)
	}
	return rows, nil
}

// Books returns every record of the collection.
func (r *SQLiteRepository) Books(ctx context.Context) ([]core.Book, error) {
	rows, err := r.run(ctx, Query{
		Select: []Expr{
			{Column: "titulo"}, {Column: "autor"}, {Column: "tipo"},
			{Column: "preco_pago_cents"}, {Column: "ano_aquisicao"},
			{Column: "ano_primeira_leitura"}, {Column: "copia_no_acervo"},
		},
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []core.Book
	for rows.Next() {
		var (
			b     core.Book
			price sql.NullInt64
			acq   sql.NullInt64
			read  sql.NullInt64
		)
		if err := rows.Scan(&b.Title, &b.Author, &b.Type, &price, &acq, &read, &b.InCollection); err != nil {
			return nil, fmt.Errorf("scan book: %w: %v", ErrDataUnavailable, err)
		}
		if price.Valid {
			b.PricePaid = core.KnownPrice(price.Int64)
		}
		if acq.Valid {
			b.AcquisitionYear = core.KnownYear(int(acq.Int64))
		}
		if read.Valid {
			b.FirstReadYear = core.KnownYear(int(read.Int64))
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// BookRows returns the type/title/author rows backing the filterable
// books-by-type table, in natural order.
func (r *SQLiteRepository) BookRows(ctx context.Context) ([]core.BookRow, error) {
	rows, err := r.run(ctx, Query{
		Select: []Expr{{Column: "tipo"}, {Column: "titulo"}, {Column: "autor"}},
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.BookRow
	for rows.Next() {
		var row core.BookRow
		if err := rows.Scan(&row.Type, &row.Title, &row.Author); err != nil {
			return nil, fmt.Errorf("scan book row: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ReadingRows returns title and first-read year for every read book,
// newest year first.
func (r *SQLiteRepository) ReadingRows(ctx context.Context) ([]core.ReadingRow, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "titulo"}, {Column: "ano_primeira_leitura"}},
		Where:   []Predicate{{Column: "ano_primeira_leitura", Op: OpNotNull}},
		OrderBy: "ano_primeira_leitura",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.ReadingRow
	for rows.Next() {
		var row core.ReadingRow
		if err := rows.Scan(&row.Title, &row.Year); err != nil {
			return nil, fmt.Errorf("scan reading row: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PriceRows returns title and paid price for every book, most expensive
// first. Books with an unknown price sort last with an invalid Price.
func (r *SQLiteRepository) PriceRows(ctx context.Context) ([]core.PriceRow, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "titulo"}, {Column: "preco_pago_cents"}},
		OrderBy: "preco_pago_cents",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.PriceRow
	for rows.Next() {
		var (
			row   core.PriceRow
			price sql.NullInt64
		)
		if err := rows.Scan(&row.Title, &price); err != nil {
			return nil, fmt.Errorf("scan price row: %w: %v", ErrDataUnavailable, err)
		}
		if price.Valid {
			row.Price = core.KnownPrice(price.Int64)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UnavailableBooks returns title and author of books not in the collection.
func (r *SQLiteRepository) UnavailableBooks(ctx context.Context) ([]core.BookRef, error) {
	rows, err := r.run(ctx, Query{
		Select: []Expr{{Column: "titulo"}, {Column: "autor"}},
		Where:  []Predicate{{Column: "copia_no_acervo", Op: OpIsFalse}},
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.BookRef
	for rows.Next() {
		var ref core.BookRef
		if err := rows.Scan(&ref.Title, &ref.Author); err != nil {
			return nil, fmt.Errorf("scan unavailable book: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// AuthorCounts returns the per-author book count in ascending author order.
func (r *SQLiteRepository) AuthorCounts(ctx context.Context) ([]core.AuthorCount, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "autor"}, {Agg: AggCount}},
		GroupBy: "autor",
		OrderBy: "autor",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.AuthorCount
	for rows.Next() {
		var ac core.AuthorCount
		if err := rows.Scan(&ac.Author, &ac.Count); err != nil {
			return nil, fmt.Errorf("scan author count: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}

// ReadingsPerYear returns the sparse readings-per-year mapping. Years come
// back unordered; the series completer owns ordering and gap filling.
func (r *SQLiteRepository) ReadingsPerYear(ctx context.Context) (map[int]int64, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "ano_primeira_leitura"}, {Agg: AggCount}},
		Where:   []Predicate{{Column: "ano_primeira_leitura", Op: OpNotNull}},
		GroupBy: "ano_primeira_leitura",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int64)
	for rows.Next() {
		var (
			year  int
			count int64
		)
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("scan readings per year: %w: %v", ErrDataUnavailable, err)
		}
		out[year] = count
	}
	return out, rows.Err()
}

// SpendPerYear returns the sparse per-acquisition-year spending mapping.
func (r *SQLiteRepository) SpendPerYear(ctx context.Context) (map[int]core.Money, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "ano_aquisicao"}, {Column: "preco_pago_cents", Agg: AggSum}},
		Where:   []Predicate{{Column: "ano_aquisicao", Op: OpNotNull}},
		GroupBy: "ano_aquisicao",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]core.Money)
	for rows.Next() {
		var (
			year int
			sum  sql.NullInt64
		)
		if err := rows.Scan(&year, &sum); err != nil {
			return nil, fmt.Errorf("scan spend per year: %w: %v", ErrDataUnavailable, err)
		}
		// sum() over a group of NULL prices is NULL; that year still spent 0
		out[year] = core.Money{Cents: sum.Int64}
	}
	return out, rows.Err()
}

// TypeCounts returns the per-type book count in query order.
func (r *SQLiteRepository) TypeCounts(ctx context.Context) ([]core.TypeCount, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "tipo"}, {Column: "tipo", Agg: AggCount}},
		GroupBy: "tipo",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.TypeCount
	for rows.Next() {
		var tc core.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// AvailabilityCounts returns the availability breakdown with the boolean
// flag mapped to its two display labels.
func (r *SQLiteRepository) AvailabilityCounts(ctx context.Context) ([]core.AvailabilityCount, error) {
	rows, err := r.run(ctx, Query{
		Select:  []Expr{{Column: "copia_no_acervo"}, {Agg: AggCount}},
		GroupBy: "copia_no_acervo",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.AvailabilityCount
	for rows.Next() {
		var (
			available bool
			count     int64
		)
		if err := rows.Scan(&available, &count); err != nil {
			return nil, fmt.Errorf("scan availability count: %w: %v", ErrDataUnavailable, err)
		}
		label := core.UnavailableLabel
		if available {
			label = core.AvailableLabel
		}
		out = append(out, core.AvailabilityCount{Label: label, Count: count})
	}
	return out, rows.Err()
}

// TotalPricePaid sums the paid price over the whole collection. Unknown
// prices are skipped by sum(), matching the metric semantics.
func (r *SQLiteRepository) TotalPricePaid(ctx context.Context) (core.Money, error) {
	rows, err := r.run(ctx, Query{
		Select: []Expr{{Column: "preco_pago_cents", Agg: AggSum}},
	})
	if err != nil {
		return core.Money{}, err
	}
	defer rows.Close()

	var total sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return core.Money{}, fmt.Errorf("scan price total: %w: %v", ErrDataUnavailable, err)
		}
	}
	return core.Money{Cents: total.Int64}, rows.Err()
}

// AvgPrice averages the price over books that cost something. A NULL
// average (no qualifying rows) is reported as an undefined Average.
func (r *SQLiteRepository) AvgPrice(ctx context.Context) (core.Average, error) {
	return r.scanAverage(ctx, Query{
		Select: []Expr{{Column: "preco_pago_cents", Agg: AggAvg}},
		Where:  []Predicate{{Column: "preco_pago_cents", Op: OpGtZero}},
	})
}

// AvgPriceByType is AvgPrice restricted to one book type. The type value is
// bound as a parameter, never spliced into the statement.
func (r *SQLiteRepository) AvgPriceByType(ctx context.Context, bookType string) (core.Average, error) {
	return r.scanAverage(ctx, Query{
		Select: []Expr{{Column: "preco_pago_cents", Agg: AggAvg}},
		Where: []Predicate{
			{Column: "tipo", Op: OpEq, Arg: bookType},
			{Column: "preco_pago_cents", Op: OpGtZero},
		},
	})
}

func (r *SQLiteRepository) scanAverage(ctx context.Context, q Query) (core.Average, error) {
	rows, err := r.run(ctx, q)
	if err != nil {
		return core.Average{}, err
	}
	defer rows.Close()

	var avg sql.NullFloat64
	if rows.Next() {
		if err := rows.Scan(&avg); err != nil {
			return core.Average{}, fmt.Errorf("scan average: %w: %v", ErrDataUnavailable, err)
		}
	}
	if err := rows.Err(); err != nil {
		return core.Average{}, fmt.Errorf("read average: %w: %v", ErrDataUnavailable, err)
	}
	if !avg.Valid {
		return core.Average{}, nil
	}
	return core.Average{Cents: int64(avg.Float64 + 0.5), Valid: true}, nil
}

// TypeOptions returns the distinct book types for the filter dropdown.
func (r *SQLiteRepository) TypeOptions(ctx context.Context) ([]string, error) {
	rows, err := r.run(ctx, Query{
		Select:   []Expr{{Column: "tipo"}},
		Distinct: true,
		OrderBy:  "tipo",
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan type option: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// YearOptions returns the distinct first-read years, newest first, for the
// filter dropdown.
func (r *SQLiteRepository) YearOptions(ctx context.Context) ([]int, error) {
	rows, err := r.run(ctx, Query{
		Select:   []Expr{{Column: "ano_primeira_leitura"}},
		Where:    []Predicate{{Column: "ano_primeira_leitura", Op: OpNotNull}},
		Distinct: true,
		OrderBy:  "ano_primeira_leitura",
		Desc:     true,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year option: %w: %v", ErrDataUnavailable, err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}
