// Package http serves the planner's three views and the JSON API they
// are built on. All business rules live in core, analytics, snapshot
// and storage; handlers only translate between HTTP and those packages.
package http

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"aarshjul/internal/metrics"
	"aarshjul/internal/middleware/security"
	"aarshjul/internal/middleware/trace"
	"aarshjul/internal/storage"
	appweb "aarshjul/web"
)

type Server struct {
	http.Server
	templates *template.Template
	store     *storage.Store
	metrics   *metrics.Set
	baseURL   string

	// now is injectable so tests can pin the calendar position.
	now func() time.Time
}

// NewServer wires routes, templates and middleware. The caller owns the
// store's lifecycle.
func NewServer(addr string, store *storage.Store, m *metrics.Set, baseURL string) (*Server, error) {
	templates, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: templates,
		store:     store,
		metrics:   m,
		baseURL:   baseURL,
		now:       time.Now,
	}

	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.handlePlanner)
	mux.HandleFunc("GET /kunde", s.handleCustomer)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.Handle("GET /static/", http.FileServerFS(appweb.StaticFS))

	// JSON API
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("POST /api/items", s.handleSaveItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /api/items/{id}/move", s.handleMoveItem)
	mux.HandleFunc("GET /api/notes", s.handleGetNotes)
	mux.HandleFunc("PUT /api/notes", s.handlePutNotes)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handlePutSettings)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/share", s.handleShare)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)

	// Operational endpoints
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", m.Handler())

	traceMW := trace.NewMiddleware()
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:    addr,
		Handler: headersMW.Middleware(traceMW.Middleware(s.countRequests(mux))),

		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s, nil
}

// countRequests feeds the request counter after the handler ran, so the
// final status code and matched route are known. The label is the route
// pattern, not the raw path, to keep the label set bounded.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := trace.WrapResponseWriter(w)
		next.ServeHTTP(rw, r)
		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(pattern, statusClass(rw.StatusCode())).Inc()
	})
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
