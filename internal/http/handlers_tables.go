package http

import (
	"context"
	"net/http"

	"acervo/internal/core"
)

type (
	bookRowPayload struct {
		Type   string `json:"tipo"`
		Title  string `json:"titulo"`
		Author string `json:"autor"`
	}

	readingRowPayload struct {
		Title string `json:"titulo"`
		Year  int    `json:"anoLeitura"`
	}

	priceRowPayload struct {
		Title string         `json:"titulo"`
		Price averagePayload `json:"precoPago"`
	}

	bookRefPayload struct {
		Title  string `json:"titulo"`
		Author string `json:"autor"`
	}
)

// handleBooksTable serves the filterable books-by-type table. The repeated
// "tipo" parameter narrows the rows; without it the full table comes back,
// together with the dropdown options.
func (s *Server) handleBooksTable(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	sel := parseTypeSelection(r)
	rows, err := s.board.BooksByType(ctx, sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	options, err := s.board.TypeOptions(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := struct {
		Rows    []bookRowPayload `json:"linhas"`
		Options []string         `json:"opcoes"`
	}{
		Rows:    make([]bookRowPayload, len(rows)),
		Options: options,
	}
	for i, row := range rows {
		out.Rows[i] = bookRowPayload{Type: row.Type, Title: row.Title, Author: row.Author}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleReadingsTable serves the filterable readings table. The optional
// "ano" parameter narrows the rows to a single first-read year.
func (s *Server) handleReadingsTable(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	sel, err := parseYearSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rows, err := s.board.ReadingsList(ctx, sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	options, err := s.board.YearOptions(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := struct {
		Rows    []readingRowPayload `json:"linhas"`
		Options []int               `json:"opcoes"`
	}{
		Rows:    make([]readingRowPayload, len(rows)),
		Options: options,
	}
	for i, row := range rows {
		out.Rows[i] = readingRowPayload{Title: row.Title, Year: row.Year}
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePricesTable serves the book prices table, most expensive first.
// Unknown prices serialize as undefined, not as zero.
func (s *Server) handlePricesTable(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	rows, err := s.board.PriceList(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]priceRowPayload, len(rows))
	for i, row := range rows {
		p := averagePayload{Defined: row.Price.Valid, Label: "—"}
		if row.Price.Valid {
			m := core.Money{Cents: row.Price.Cents}
			p.Reais = m.Reais()
			p.Label = m.BRL()
		}
		out[i] = priceRowPayload{Title: row.Title, Price: p}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUnavailableTable serves the books without a copy in the collection.
func (s *Server) handleUnavailableTable(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	refs, err := s.board.UnavailableBooks(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]bookRefPayload, len(refs))
	for i, ref := range refs {
		out[i] = bookRefPayload{Title: ref.Title, Author: ref.Author}
	}
	writeJSON(w, http.StatusOK, out)
}
