package http

import (
	"log/slog"
	"net/http"

	"aarshjul/internal/core"
	applog "aarshjul/internal/log"
)

func (s *Server) handleGetNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.store.ReadNotes(r.Context()))
}

// handlePutNotes replaces the notes map wholesale. Unknown month keys
// are rejected so typos cannot create orphan notes.
func (s *Server) handlePutNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var notes core.Notes
	if err := readJSONBody(r, &notes); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	for month := range notes {
		if !core.ValidMonth(month) {
			writeError(ctx, w, http.StatusBadRequest, "Ukendt måned: "+string(month))
			return
		}
	}

	if err := s.store.WriteNotes(ctx, notes); err != nil {
		slog.ErrorContext(ctx, "Failed to persist notes", applog.FieldError, err)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke gemme noter")
		return
	}

	writeJSON(ctx, w, http.StatusOK, notes)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, s.store.ReadSettings(r.Context()))
}

// handlePutSettings replaces the UI settings blob. Settings carry no
// business rules, so any JSON object is accepted as-is.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var settings core.Settings
	if err := readJSONBody(r, &settings); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.WriteSettings(ctx, settings); err != nil {
		slog.ErrorContext(ctx, "Failed to persist settings", applog.FieldError, err)
		writeError(ctx, w, http.StatusInternalServerError, "Kunne ikke gemme indstillinger")
		return
	}

	writeJSON(ctx, w, http.StatusOK, settings)
}
