package http

import (
	"log/slog"
	"net/http"

	"aarshjul/internal/core"
	applog "aarshjul/internal/log"
)

// handleListItems returns all items in canonical display order.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.store.ReadItems(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, core.SortItems(items))
}

// handleSaveItem creates an item (no id) or replaces one in full (id
// present). Validation failures abort before anything is persisted.
func (s *Server) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var incoming core.Item
	if err := readJSONBody(r, &incoming); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	incoming = incoming.Normalize()
	if err := incoming.Validate(); err != nil {
		writeError(ctx, w, http.StatusBadRequest, validationMessage(err))
		return
	}

	items := s.store.ReadItems(ctx)
	op := applog.OpCreate

	if incoming.ID == "" {
		incoming.ID = s.store.GenerateID()
		items = append(items, incoming)
	} else {
		op = applog.OpUpdate
		idx := indexByID(items, incoming.ID)
		if idx < 0 {
			writeError(ctx, w, http.StatusNotFound, "Aktiviteten findes ikke")
			return
		}
		items[idx] = incoming
	}

	if err := s.store.WriteItems(ctx, items); err != nil {
		slog.ErrorContext(ctx, "Failed to persist items", applog.FieldError, err, applog.FieldOperation, op)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke gemme aktiviteten")
		return
	}
	s.metrics.ItemWrites.Inc()

	slog.InfoContext(ctx, "Item saved",
		applog.FieldOperation, op,
		applog.FieldItemID, incoming.ID,
		applog.FieldItemTitle, incoming.Title,
		applog.FieldMonth, string(incoming.Month),
		applog.FieldWeek, incoming.Week)

	status := http.StatusOK
	if op == applog.OpCreate {
		status = http.StatusCreated
	}
	writeJSON(ctx, w, status, incoming)
}

// handleDeleteItem removes an item by id. Deleting an unknown id is a
// no-op success, matching how the planner UI behaves.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	items := s.store.ReadItems(ctx)
	kept := make([]core.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	if len(kept) != len(items) {
		if err := s.store.WriteItems(ctx, kept); err != nil {
			slog.ErrorContext(ctx, "Failed to persist items", applog.FieldError, err, applog.FieldOperation, applog.OpDelete)
			writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke slette aktiviteten")
			return
		}
		s.metrics.ItemWrites.Inc()
		slog.InfoContext(ctx, "Item deleted", applog.FieldItemID, id)
	}

	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	Month core.Month `json:"month"`
	Week  *int       `json:"week,omitempty"`
}

// handleMoveItem relocates an item to another month, optionally to a
// specific week slot. This is the drag-and-drop operation of the wheel.
func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var req moveRequest
	if err := readJSONBody(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if !core.ValidMonth(req.Month) {
		writeError(ctx, w, http.StatusBadRequest, "Ukendt måned")
		return
	}

	items := s.store.ReadItems(ctx)
	idx := indexByID(items, id)
	if idx < 0 {
		writeError(ctx, w, http.StatusNotFound, "Aktiviteten findes ikke")
		return
	}

	items[idx].Month = req.Month
	if req.Week != nil {
		items[idx].Week = *req.Week
	}
	items[idx].Week = core.ClampWeek(items[idx].Week)
	// A manual move overrides a date-derived position.
	items[idx].Date = ""

	if err := s.store.WriteItems(ctx, items); err != nil {
		slog.ErrorContext(ctx, "Failed to persist items", applog.FieldError, err, applog.FieldOperation, applog.OpMove)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke flytte aktiviteten")
		return
	}
	s.metrics.ItemWrites.Inc()

	slog.InfoContext(ctx, "Item moved",
		applog.FieldItemID, id,
		applog.FieldMonth, string(items[idx].Month),
		applog.FieldWeek, items[idx].Week)

	writeJSON(ctx, w, http.StatusOK, items[idx])
}

func indexByID(items []core.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
