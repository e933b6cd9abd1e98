// Package storage persists the planner's three collections (items,
// month notes, settings) as JSON values in a SQLite key/value table.
// The table mirrors the original browser-storage layout, including the
// legacy key names kept readable for migration continuity.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"aarshjul/internal/core"
)

// Current and legacy storage keys. The legacy names predate the move to
// the accented key scheme; they are read as a fallback and removed on
// the first write under the new scheme.
const (
	itemsKey    = "årshjul.admin.items"
	itemsKeyOld = "aarshjul.admin.items"
	notesKey    = "årshjul.admin.notes"
	notesKeyOld = "aarshjul.admin.notes"
	settingsKey = "årshjul.admin.settings"
)

// Store owns the persistence medium. It is stateless between calls; all
// state lives in the database.
type Store struct {
	db *sql.DB
}

// Open creates the database file if needed, runs migrations and returns
// a ready store.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadItems returns the persisted items in stored order. The current
// key wins; the legacy key is read as a fallback. Missing or malformed
// data degrades to an empty slice with a warning, never an error.
func (s *Store) ReadItems(ctx context.Context) []core.Item {
	raw, ok := s.get(ctx, itemsKey)
	if !ok {
		raw, ok = s.get(ctx, itemsKeyOld)
	}
	if !ok {
		return []core.Item{}
	}

	var items []core.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Stored items are not valid JSON, starting empty", "error", err)
		return []core.Item{}
	}

	return s.normalize(ctx, items)
}

// normalize enforces the item invariants at the read boundary: records
// are typed and valid from here on, nothing downstream re-checks them.
func (s *Store) normalize(ctx context.Context, items []core.Item) []core.Item {
	out := make([]core.Item, 0, len(items))
	for _, it := range items {
		if !core.ValidMonth(it.Month) {
			slog.WarnContext(ctx, "Dropping stored item with unknown month",
				"id", it.ID, "title", it.Title, "month", it.Month)
			continue
		}
		if it.ID == "" {
			it.ID = s.GenerateID()
		}
		out = append(out, it.Normalize())
	}
	return out
}

// WriteItems persists the collection under the current key and removes
// the legacy key in the same transaction, so the old entry can never
// shadow the new one again.
func (s *Store) WriteItems(ctx context.Context, items []core.Item) error {
	return s.putAndDropLegacy(ctx, itemsKey, itemsKeyOld, items)
}

// ReadNotes returns the per-month notes, empty when absent or malformed.
func (s *Store) ReadNotes(ctx context.Context) core.Notes {
	raw, ok := s.get(ctx, notesKey)
	if !ok {
		raw, ok = s.get(ctx, notesKeyOld)
	}
	if !ok {
		return core.Notes{}
	}

	var notes core.Notes
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		slog.WarnContext(ctx, "Stored notes are not valid JSON, starting empty", "error", err)
		return core.Notes{}
	}
	if notes == nil {
		notes = core.Notes{}
	}
	return notes
}

// WriteNotes persists the notes map and drops its legacy key.
func (s *Store) WriteNotes(ctx context.Context, notes core.Notes) error {
	return s.putAndDropLegacy(ctx, notesKey, notesKeyOld, notes)
}

// ReadSettings returns the UI settings blob, `{}` when absent or
// malformed. Settings never had a legacy key.
func (s *Store) ReadSettings(ctx context.Context) core.Settings {
	raw, ok := s.get(ctx, settingsKey)
	if !ok {
		return core.Settings{}
	}

	var settings core.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		slog.WarnContext(ctx, "Stored settings are not valid JSON, using defaults", "error", err)
		return core.Settings{}
	}
	if settings == nil {
		settings = core.Settings{}
	}
	return settings
}

// WriteSettings persists the UI settings blob.
func (s *Store) WriteSettings(ctx context.Context, settings core.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.put(ctx, s.db, settingsKey, string(raw)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// GenerateID returns a new unique item id. UUIDv4 under normal
// operation; if the random source fails, a nanosecond timestamp stands
// in. The fallback can collide under pathological clocks, which the
// product accepts for a single-user tool.
func (s *Store) GenerateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return id.String()
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		slog.WarnContext(ctx, "Storage read failed, treating key as absent", "key", key, "error", err)
		return "", false
	}
	return value, true
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) put(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value)
	return err
}

func (s *Store) putAndDropLegacy(ctx context.Context, key, legacyKey string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback()

	if err := s.put(ctx, tx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, legacyKey); err != nil {
		return fmt.Errorf("drop legacy %s: %w", legacyKey, err)
	}

	return tx.Commit()
}
