package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"aarshjul/internal/analytics"
	"aarshjul/internal/core"
	applog "aarshjul/internal/log"
	"aarshjul/internal/snapshot"
)

// handleAnalytics returns the full derived report for the stored state.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report := analytics.Compute(s.store.ReadItems(ctx), s.store.ReadNotes(ctx), s.now())
	writeJSON(ctx, w, http.StatusOK, report)
}

// handleShare builds the self-contained customer-view link for the
// current store state.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state := snapshot.State{
		Items: core.SortItems(s.store.ReadItems(ctx)),
		Notes: s.store.ReadNotes(ctx),
	}
	print := r.URL.Query().Get("print") == "1"

	link, err := snapshot.BuildShareURL(s.baseURL, state, print)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build share link", applog.FieldError, err)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke oprette delingslink")
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"url": link})
}

// handleExport serves the item collection as a downloadable JSON file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items := s.store.ReadItems(ctx)

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal export", applog.FieldError, err)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke eksportere")
		return
	}

	slog.InfoContext(ctx, "Items exported", applog.FieldOperation, applog.OpExport, "count", len(items))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="aarshjul.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handleImport replaces the item collection from an uploaded JSON
// document. Anything but a top-level array is rejected and the stored
// collection is left untouched. Records that fail validation are
// dropped with a warning before persisting, so the reported count only
// covers items a later read will actually return.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var raw json.RawMessage
	if err := readJSONBody(r, &raw); err != nil {
		s.metrics.ImportRejected.Inc()
		writeError(ctx, w, http.StatusBadRequest, "Kunne ikke læse JSON")
		return
	}

	var items []core.Item
	if err := json.Unmarshal(raw, &items); err != nil || string(raw) == "null" {
		s.metrics.ImportRejected.Inc()
		slog.WarnContext(ctx, "Import rejected, payload is not an array", applog.FieldOperation, applog.OpImport)
		writeError(ctx, w, http.StatusBadRequest, "Ugyldig JSON-fil")
		return
	}

	kept := make([]core.Item, 0, len(items))
	for _, it := range items {
		it = it.Normalize()
		if err := it.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid imported item",
				applog.FieldOperation, applog.OpImport,
				applog.FieldItemTitle, it.Title,
				applog.FieldError, err)
			continue
		}
		if it.ID == "" {
			it.ID = s.store.GenerateID()
		}
		kept = append(kept, it)
	}

	if err := s.store.WriteItems(ctx, kept); err != nil {
		slog.ErrorContext(ctx, "Failed to persist imported items", applog.FieldError, err)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke gemme de importerede aktiviteter")
		return
	}
	s.metrics.ItemWrites.Inc()

	slog.InfoContext(ctx, "Items imported", applog.FieldOperation, applog.OpImport,
		"count", len(kept), "dropped", len(items)-len(kept))
	writeJSON(ctx, w, http.StatusOK, map[string]int{"imported": len(kept)})
}
