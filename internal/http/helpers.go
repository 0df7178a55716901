package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"acervo/internal/core"
	"acervo/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps core/storage failures onto HTTP statuses. A broken
// descriptor is a server defect; an unreachable database a dependency
// outage.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, storage.ErrDataUnavailable):
		status = http.StatusServiceUnavailable
		msg = "data unavailable"
	case errors.Is(err, storage.ErrMalformedQuery):
		msg = "malformed query"
	}
	s.logger.ErrorContext(r.Context(), "Request failed",
		"path", r.URL.Path, "error", err)
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireGet guards a read-only endpoint.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// parseTypeSelection reads the repeated "tipo" query parameter. No
// parameter means no filter.
func parseTypeSelection(r *http.Request) core.TypeSelection {
	var sel core.TypeSelection
	for _, t := range r.URL.Query()["tipo"] {
		if t = strings.TrimSpace(t); t != "" {
			sel = append(sel, t)
		}
	}
	return sel
}

// parseYearSelection reads the optional "ano" query parameter. An absent or
// empty parameter means no filter; a non-numeric one is a client error.
func parseYearSelection(r *http.Request) (core.YearSelection, error) {
	v := strings.TrimSpace(r.URL.Query().Get("ano"))
	if v == "" {
		return core.YearSelection{}, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return core.YearSelection{}, errors.New("ano must be an integer")
	}
	return core.YearSelection{Year: year, Valid: true}, nil
}

// moneyPayload is the wire form of an amount.
type moneyPayload struct {
	Reais float64 `json:"reais"`
	Label string  `json:"label"`
}

func toMoneyPayload(m core.Money) moneyPayload {
	return moneyPayload{Reais: m.Reais(), Label: m.BRL()}
}

// averagePayload is the wire form of an Average. An undefined average keeps
// Defined false and a placeholder label so it never reads as zero.
type averagePayload struct {
	Defined bool    `json:"defined"`
	Reais   float64 `json:"reais"`
	Label   string  `json:"label"`
}

func toAveragePayload(a core.Average) averagePayload {
	p := averagePayload{Defined: a.Valid, Label: a.BRL()}
	if m, ok := a.Money(); ok {
		p.Reais = m.Reais()
	}
	return p
}
