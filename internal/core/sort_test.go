package core

import (
	"testing"
	"time"
)

func TestSortItems(t *testing.T) {
	items := []Item{
		{Title: "B", Month: "Marts", Week: 2},
		{Title: "A", Month: "Januar", Week: 1},
		{Title: "C", Month: "Marts", Week: 1},
	}

	sorted := SortItems(items)

	want := []string{"A", "C", "B"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, sorted[i].Title, title)
		}
	}

	// Input order untouched.
	if items[0].Title != "B" {
		t.Error("SortItems must not mutate its input")
	}
}

func TestSortItems_TitleTieBreak(t *testing.T) {
	items := []Item{
		{Title: "Ølsmagning", Month: "Juni", Week: 2},
		{Title: "Audit", Month: "Juni", Week: 2},
		{Title: "Økonomimøde", Month: "Juni", Week: 2},
	}

	sorted := SortItems(items)

	if sorted[0].Title != "Audit" {
		t.Errorf("first item = %q, want Audit", sorted[0].Title)
	}
	// Ø sorts at the end of the Danish alphabet, after every Latin letter.
	if sorted[1].Title != "Økonomimøde" || sorted[2].Title != "Ølsmagning" {
		t.Errorf("Danish collation order wrong: %q, %q", sorted[1].Title, sorted[2].Title)
	}
}

func TestWeekIndex(t *testing.T) {
	tests := []struct {
		month Month
		week  int
		want  int
	}{
		{"Januar", 1, 0},
		{"Januar", 5, 4},
		{"Februar", 1, 4},
		{"Juni", 2, 21},
		{"December", 5, 48},
		{"Smarch", 1, -1},
	}
	for _, tt := range tests {
		if got := WeekIndex(tt.month, tt.week); got != tt.want {
			t.Errorf("WeekIndex(%s, %d) = %d, want %d", tt.month, tt.week, got, tt.want)
		}
	}
}

func TestCurrentWeekIndex(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), 22},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), 48},
	}
	for _, tt := range tests {
		if got := CurrentWeekIndex(tt.now); got != tt.want {
			t.Errorf("CurrentWeekIndex(%s) = %d, want %d", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestMonthIndex(t *testing.T) {
	if got := MonthIndex("Januar"); got != 0 {
		t.Errorf("MonthIndex(Januar) = %d, want 0", got)
	}
	if got := MonthIndex("December"); got != 11 {
		t.Errorf("MonthIndex(December) = %d, want 11", got)
	}
	if got := MonthIndex("January"); got != -1 {
		t.Errorf("MonthIndex(January) = %d, want -1", got)
	}
}

func TestColors(t *testing.T) {
	for _, c := range Categories {
		if c.Color() == "" {
			t.Errorf("category %s has no color", c)
		}
	}
	for _, s := range Statuses {
		if s.Color() == "" {
			t.Errorf("status %s has no color", s)
		}
	}
	if Category("Fest").Color() != "" {
		t.Error("unknown category should have no color")
	}
}
