package http

import (
	"context"
	"net/http"

	"acervo/internal/board"
	"acervo/internal/core"
)

type (
	authorCountPayload struct {
		Author string `json:"autor"`
		Count  int64  `json:"quantidade"`
	}

	yearCountPayload struct {
		Year  int   `json:"ano"`
		Count int64 `json:"leituras"`
	}

	spendPointPayload struct {
		Year       int          `json:"ano"`
		Spent      moneyPayload `json:"valorGasto"`
		Cumulative moneyPayload `json:"valorAcumulado"`
	}

	spendingPayload struct {
		Points     []spendPointPayload `json:"pontos"`
		Total      moneyPayload        `json:"total"`
		TotalLabel string              `json:"totalLabel"`
	}

	sliceCountPayload struct {
		Label string `json:"label"`
		Count int64  `json:"quantidade"`
	}

	typeAveragePayload struct {
		Type    string         `json:"tipo"`
		Average averagePayload `json:"precoMedio"`
	}

	priceStatsPayload struct {
		Overall averagePayload       `json:"precoMedio"`
		ByType  []typeAveragePayload `json:"porTipo"`
	}

	overviewPayload struct {
		Authors      []authorCountPayload `json:"autores"`
		Readings     []yearCountPayload   `json:"leituras"`
		Spending     spendingPayload      `json:"gastos"`
		Types        []sliceCountPayload  `json:"tipos"`
		Availability []sliceCountPayload  `json:"disponibilidade"`
		Prices       priceStatsPayload    `json:"precos"`
	}
)

func toSpendingPayload(h core.SpendingHistory) spendingPayload {
	out := spendingPayload{
		Points:     make([]spendPointPayload, len(h.Points)),
		Total:      toMoneyPayload(h.Total),
		TotalLabel: h.TotalLabel,
	}
	for i, p := range h.Points {
		out.Points[i] = spendPointPayload{
			Year:       p.Year,
			Spent:      toMoneyPayload(p.Spent),
			Cumulative: toMoneyPayload(p.Cumulative),
		}
	}
	return out
}

func toPriceStatsPayload(stats board.PriceStats) priceStatsPayload {
	out := priceStatsPayload{Overall: toAveragePayload(stats.Overall)}
	for _, ta := range stats.ByType {
		out.ByType = append(out.ByType, typeAveragePayload{
			Type:    ta.Type,
			Average: toAveragePayload(ta.Average),
		})
	}
	return out
}

// handleOverview returns every chart dataset in one response; the dashboard
// page fetches it once per render.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	ov, err := s.board.Overview(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := overviewPayload{
		Authors:      make([]authorCountPayload, len(ov.Authors)),
		Readings:     make([]yearCountPayload, len(ov.Readings)),
		Spending:     toSpendingPayload(ov.Spending),
		Prices:       toPriceStatsPayload(ov.Prices),
		Types:        make([]sliceCountPayload, len(ov.Types)),
		Availability: make([]sliceCountPayload, len(ov.Availability)),
	}
	for i, a := range ov.Authors {
		out.Authors[i] = authorCountPayload{Author: a.Author, Count: a.Count}
	}
	for i, p := range ov.Readings {
		out.Readings[i] = yearCountPayload{Year: p.Year, Count: p.Count}
	}
	for i, tc := range ov.Types {
		out.Types[i] = sliceCountPayload{Label: tc.Type, Count: tc.Count}
	}
	for i, ac := range ov.Availability {
		out.Availability[i] = sliceCountPayload{Label: ac.Label, Count: ac.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAuthorsChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	counts, err := s.board.AuthorCounts(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]authorCountPayload, len(counts))
	for i, a := range counts {
		out[i] = authorCountPayload{Author: a.Author, Count: a.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReadingsChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	series, err := s.board.ReadingsByYear(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]yearCountPayload, len(series))
	for i, p := range series {
		out[i] = yearCountPayload{Year: p.Year, Count: p.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSpendingChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	history, err := s.board.SpendingHistory(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpendingPayload(history))
}

func (s *Server) handleTypesChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	counts, err := s.board.TypeBreakdown(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]sliceCountPayload, len(counts))
	for i, tc := range counts {
		out[i] = sliceCountPayload{Label: tc.Type, Count: tc.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAvailabilityChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	counts, err := s.board.AvailabilityBreakdown(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]sliceCountPayload, len(counts))
	for i, ac := range counts {
		out[i] = sliceCountPayload{Label: ac.Label, Count: ac.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePriceStats(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	stats, err := s.board.AveragePrices(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPriceStatsPayload(stats))
}
