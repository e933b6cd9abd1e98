package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"aarshjul/internal/core"
)

// maxBodyBytes bounds API request bodies. Attachments are inline
// metadata, not real file storage, so 4 MiB is generous.
const maxBodyBytes = 4 << 20

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode JSON response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, apiError{Error: msg})
}

// readJSONBody decodes the request body into v, rejecting unknown
// payload shapes with a client error rather than a crash.
func readJSONBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// validationMessage maps core validation errors onto the Danish
// messages the planner UI shows.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyTitle):
		return "Skriv en aktivitetstitel"
	case errors.Is(err, core.ErrUnknownMonth):
		return "Ukendt måned"
	case errors.Is(err, core.ErrUnknownCategory):
		return "Ukendt kategori"
	case errors.Is(err, core.ErrUnknownStatus):
		return "Ukendt status"
	default:
		return "Ugyldige aktivitetsdata"
	}
}
