// Package http hosts the dashboard: the server-rendered page, the JSON
// chart endpoints and the two filterable table endpoints. It owns no
// aggregation logic; everything comes from the board service.
package http

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"acervo/internal/board"
	applog "acervo/internal/log"
	appweb "acervo/web"
)

type Server struct {
	http.Server

	board     *board.Service
	logger    *applog.Logger
	templates *template.Template
	timeout   time.Duration
}

func NewServer(addr string, b *board.Service, logger *applog.Logger, timeout time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		board:   b,
		logger:  logger.WithComponent("http"),
		timeout: timeout,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/api/overview", s.handleOverview)
	mux.HandleFunc("/api/charts/authors", s.handleAuthorsChart)
	mux.HandleFunc("/api/charts/readings", s.handleReadingsChart)
	mux.HandleFunc("/api/charts/spending", s.handleSpendingChart)
	mux.HandleFunc("/api/charts/types", s.handleTypesChart)
	mux.HandleFunc("/api/charts/availability", s.handleAvailabilityChart)
	mux.HandleFunc("/api/stats/prices", s.handlePriceStats)

	mux.HandleFunc("/api/books", s.handleBooksTable)
	mux.HandleFunc("/api/readings", s.handleReadingsTable)
	mux.HandleFunc("/api/tables/prices", s.handlePricesTable)
	mux.HandleFunc("/api/tables/unavailable", s.handleUnavailableTable)

	handler := http.Handler(mux)
	handler = securityHeaders(handler)
	handler = applog.RequestLogger(s.logger)(handler)
	s.Handler = handler

	return s
}

// securityHeaders sets the response headers every page and API reply gets.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' https://cdn.plot.ly; "+
				"style-src 'self' 'unsafe-inline'; img-src 'self' data:; "+
				"connect-src 'self'; object-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
