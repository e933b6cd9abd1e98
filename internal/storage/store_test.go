package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aarshjul/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "aarshjul.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testItems() []core.Item {
	return []core.Item{
		{
			ID:     "1",
			Title:  "Releasemøde",
			Month:  "Marts",
			Week:   2,
			Cat:    core.CatRelease,
			Status: core.StatusPlanned,
			Owner:  "Søren",
			Note:   "husk slides",
		},
		{
			ID:     "2",
			Title:  "KTU-måling",
			Month:  "Juni",
			Week:   1,
			Cat:    core.CatKTU,
			Status: core.StatusDone,
			Attachments: []core.Attachment{
				{Name: "resultater.xlsx"},
			},
		},
	}
}

func TestItemsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := testItems()
	if err := s.WriteItems(ctx, want); err != nil {
		t.Fatalf("WriteItems() failed: %v", err)
	}

	got := s.ReadItems(ctx)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadItems_Empty(t *testing.T) {
	s := newTestStore(t)

	got := s.ReadItems(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("ReadItems() on empty store = %v, want empty slice", got)
	}
}

func TestReadItems_LegacyFallback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	raw, err := json.Marshal(testItems())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.put(ctx, s.db, itemsKeyOld, string(raw)); err != nil {
		t.Fatalf("seed legacy key: %v", err)
	}

	got := s.ReadItems(ctx)
	if len(got) != 2 {
		t.Fatalf("ReadItems() from legacy key returned %d items, want 2", len(got))
	}

	// One write under the new scheme retires the legacy key for good.
	if err := s.WriteItems(ctx, got); err != nil {
		t.Fatalf("WriteItems() failed: %v", err)
	}
	if _, ok := s.get(ctx, itemsKeyOld); ok {
		t.Error("legacy key still present after WriteItems")
	}
	if _, ok := s.get(ctx, itemsKey); !ok {
		t.Error("current key missing after WriteItems")
	}
}

func TestReadItems_CurrentKeyWinsOverLegacy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	legacy := `[{"id":"old","title":"Gammel","month":"Januar","week":1,"cat":"Andet"}]`
	current := `[{"id":"new","title":"Ny","month":"Februar","week":1,"cat":"Andet"}]`
	if err := s.put(ctx, s.db, itemsKeyOld, legacy); err != nil {
		t.Fatal(err)
	}
	if err := s.put(ctx, s.db, itemsKey, current); err != nil {
		t.Fatal(err)
	}

	got := s.ReadItems(ctx)
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("ReadItems() = %v, want the current-key record", got)
	}
}

func TestReadItems_MalformedJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.put(ctx, s.db, itemsKey, `{not json`); err != nil {
		t.Fatal(err)
	}

	got := s.ReadItems(ctx)
	if len(got) != 0 {
		t.Errorf("ReadItems() with corrupt value = %v, want empty", got)
	}
}

func TestReadItems_NormalizesAtBoundary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored := `[
		{"id":"a","title":"Uge for høj","month":"Maj","week":9,"cat":"Andet"},
		{"id":"","title":"Uden id","month":"Maj","week":1,"cat":"Andet"},
		{"id":"c","title":"Ukendt måned","month":"Smarch","week":1,"cat":"Andet"}
	]`
	if err := s.put(ctx, s.db, itemsKey, stored); err != nil {
		t.Fatal(err)
	}

	got := s.ReadItems(ctx)
	if len(got) != 2 {
		t.Fatalf("ReadItems() kept %d items, want 2 (unknown month dropped)", len(got))
	}
	if got[0].Week != 5 {
		t.Errorf("week not clamped: %d", got[0].Week)
	}
	if got[0].Status != core.StatusPlanned {
		t.Errorf("status not defaulted: %s", got[0].Status)
	}
	if got[1].ID == "" {
		t.Error("blank id not assigned")
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := core.Notes{"Januar": "nytårskur", "Juni": "sommerfest"}
	if err := s.WriteNotes(ctx, want); err != nil {
		t.Fatalf("WriteNotes() failed: %v", err)
	}

	got := s.ReadNotes(ctx)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestNotes_LegacyFallbackAndCleanup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.put(ctx, s.db, notesKeyOld, `{"Marts":"gammel note"}`); err != nil {
		t.Fatal(err)
	}

	got := s.ReadNotes(ctx)
	if got["Marts"] != "gammel note" {
		t.Fatalf("ReadNotes() from legacy = %v", got)
	}

	if err := s.WriteNotes(ctx, got); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.get(ctx, notesKeyOld); ok {
		t.Error("legacy notes key still present after WriteNotes")
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if got := s.ReadSettings(ctx); len(got) != 0 {
		t.Errorf("ReadSettings() on empty store = %v, want {}", got)
	}

	want := core.Settings{"activeCat": "KTU", "zoom": 1.25, "collapsed": false}
	if err := s.WriteSettings(ctx, want); err != nil {
		t.Fatalf("WriteSettings() failed: %v", err)
	}

	got := s.ReadSettings(ctx)
	if got["activeCat"] != "KTU" || got["zoom"] != 1.25 || got["collapsed"] != false {
		t.Errorf("ReadSettings() = %v, want %v", got, want)
	}

	// Corrupt settings degrade to defaults.
	if err := s.put(ctx, s.db, settingsKey, `not json`); err != nil {
		t.Fatal(err)
	}
	if got := s.ReadSettings(ctx); len(got) != 0 {
		t.Errorf("ReadSettings() with corrupt value = %v, want {}", got)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	s := newTestStore(t)

	seen := map[string]bool{}
	for range 100 {
		id := s.GenerateID()
		if id == "" {
			t.Fatal("GenerateID() returned empty string")
		}
		if seen[id] {
			t.Fatalf("GenerateID() produced duplicate %s", id)
		}
		seen[id] = true
	}
}
