package http

import (
	"errors"
	"log/slog"
	"net/http"

	"aarshjul/internal/analytics"
	"aarshjul/internal/core"
	applog "aarshjul/internal/log"
	"aarshjul/internal/snapshot"
)

type plannerData struct {
	Months     []core.Month
	Categories []core.Category
	Statuses   []core.Status
	Items      []core.Item
	Notes      core.Notes
}

// handlePlanner renders the editable planner view.
func (s *Server) handlePlanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := plannerData{
		Months:     core.Months,
		Categories: core.Categories,
		Statuses:   core.Statuses,
		Items:      core.SortItems(s.store.ReadItems(ctx)),
		Notes:      s.store.ReadNotes(ctx),
	}

	if err := s.templates.ExecuteTemplate(w, "planner_page", data); err != nil {
		slog.ErrorContext(ctx, "Planner template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type customerData struct {
	Months    []core.Month
	Items     []core.Item
	Notes     core.Notes
	Print     bool
	FromToken bool
}

// handleCustomer renders the read-only customer view. A snapshot token
// in the query takes precedence over the store; a broken token falls
// back to the store silently, never to an error page.
func (s *Server) handleCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	data := customerData{
		Months: core.Months,
		Print:  query.Get("print") == "1",
	}

	if token := query.Get("data"); token != "" {
		state, err := snapshot.Decode(token)
		if err == nil {
			data.Items = core.SortItems(state.Items)
			data.Notes = state.Notes
			data.FromToken = true
		} else if errors.Is(err, snapshot.ErrInvalidToken) {
			s.metrics.DecodeFailures.Inc()
			slog.WarnContext(ctx, "Snapshot token rejected, falling back to store", applog.FieldError, err)
		}
	}

	if !data.FromToken {
		data.Items = core.SortItems(s.store.ReadItems(ctx))
		data.Notes = s.store.ReadNotes(ctx)
	}
	data.Notes = presentableNotes(data.Notes)

	if err := s.templates.ExecuteTemplate(w, "customer_page", data); err != nil {
		slog.ErrorContext(ctx, "Customer template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// presentableNotes drops blank or whitespace-only notes so the
// read-only view never renders empty annotation blocks.
func presentableNotes(notes core.Notes) core.Notes {
	out := core.Notes{}
	for _, m := range core.Months {
		if text, ok := notes.NoteFor(m); ok {
			out[m] = text
		}
	}
	return out
}

type dashboardData struct {
	Report     analytics.Report
	Items      []core.Item
	Filter     string
	FilterName string
}

// dashboardFilters maps the KPI tile keys onto their Danish captions.
var dashboardFilters = map[string]string{
	"thisMonth": "Aktiviteter denne måned",
	"upcoming":  "Kommende releases",
	"noOwner":   "Aktiviteter uden ansvarlig",
	"done":      "Afsluttede aktiviteter i år",
}

// handleDashboard renders the KPI dashboard, optionally narrowing the
// activity list to one KPI's subset (tile click-through).
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	items := s.store.ReadItems(ctx)
	notes := s.store.ReadNotes(ctx)

	data := dashboardData{
		Report: analytics.Compute(items, notes, now),
		Filter: r.URL.Query().Get("filter"),
	}

	listed := items
	switch data.Filter {
	case "thisMonth":
		listed = analytics.ThisMonth(items, now)
	case "upcoming":
		listed = analytics.Upcoming(items, now)
	case "noOwner":
		listed = analytics.NoOwner(items)
	case "done":
		listed = analytics.Done(items)
	default:
		data.Filter = ""
	}
	data.FilterName = dashboardFilters[data.Filter]
	data.Items = core.SortItems(listed)

	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		slog.ErrorContext(ctx, "Dashboard template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
