package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// MinWeek and MaxWeek bound the week slot inside a month. Week 5
	// exists because ceil(31/7) = 5.
	MinWeek = 1
	MaxWeek = 5
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrUnknownMonth    = errors.New("unknown month")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStatus   = errors.New("unknown status")
)

type (
	// Attachment is best-effort metadata about a file attached to an
	// item. Data holds an inline-encoded payload when one was captured;
	// it is not content-addressed and may be empty.
	Attachment struct {
		Name string `json:"name"`
		Data string `json:"data,omitempty"`
	}

	// Item is a single planned activity on the wheel.
	Item struct {
		ID          string       `json:"id"`
		Title       string       `json:"title"`
		Month       Month        `json:"month"`
		Week        int          `json:"week"`
		Cat         Category     `json:"cat"`
		Status      Status       `json:"status,omitempty"`
		Owner       string       `json:"owner,omitempty"`
		Note        string       `json:"note,omitempty"`
		Date        string       `json:"date,omitempty"`
		Attachments []Attachment `json:"attachments,omitempty"`
	}

	// Notes maps a month name to its free-text annotation. A blank or
	// whitespace-only value counts as no note.
	Notes map[Month]string

	// Settings is the opaque bag of UI preferences (filters, zoom, pan,
	// collapsed flags). Persisted for continuity, never validated.
	Settings map[string]any
)

// ClampWeek forces w into the valid week-slot range.
func ClampWeek(w int) int {
	if w < MinWeek {
		return MinWeek
	}
	if w > MaxWeek {
		return MaxWeek
	}
	return w
}

// WeekOfMonth maps a day of month to its week slot via ceil(day/7),
// clamped to the valid range.
func WeekOfMonth(day int) int {
	return ClampWeek((day + 6) / 7)
}

// Validate checks the fields a save must not accept. Normalization
// concerns (week clamping, status default) are handled by Normalize, not
// rejected here.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return ErrEmptyTitle
	}
	if !ValidMonth(it.Month) {
		return ErrUnknownMonth
	}
	if !ValidCategory(it.Cat) {
		return ErrUnknownCategory
	}
	if it.Status != "" && !ValidStatus(it.Status) {
		return ErrUnknownStatus
	}
	return nil
}

// Normalize enforces the item invariants: week in [MinWeek, MaxWeek] and
// a concrete status. When a date is present it is the source of truth
// for month and week.
func (it Item) Normalize() Item {
	if ts, err := time.Parse(time.RFC3339, it.Date); err == nil {
		it.Month = Months[int(ts.Month())-1]
		it.Week = WeekOfMonth(ts.Day())
	}
	it.Week = ClampWeek(it.Week)
	if it.Status == "" {
		it.Status = StatusPlanned
	}
	it.Title = strings.TrimSpace(it.Title)
	return it
}

// Unassigned reports whether the item has no responsible owner.
func (it Item) Unassigned() bool {
	return strings.TrimSpace(it.Owner) == ""
}

// NoteFor returns the annotation for a month, with blank values treated
// as absent.
func (n Notes) NoteFor(m Month) (string, bool) {
	text, ok := n[m]
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// CountNonBlank returns how many months carry an actual note.
func (n Notes) CountNonBlank() int {
	count := 0
	for _, text := range n {
		if strings.TrimSpace(text) != "" {
			count++
		}
	}
	return count
}
