// Package analytics derives KPI counts, distributions, risk signals and
// insight tips from a snapshot of items and notes. Everything here is a
// pure function of its inputs: no persistence, no cache, recomputed from
// scratch on every call.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"aarshjul/internal/core"
)

// OwnerUnknown is the bucket label for items without a responsible owner.
const OwnerUnknown = "Ukendt"

// highLoadThreshold is the number of items in one (month, week) slot that
// flags the slot as overloaded.
const highLoadThreshold = 3

// sweepOrigin is the angle the first status segment starts at: twelve
// o'clock, with sweeps proceeding clockwise.
const sweepOrigin = -90.0

const fullCircle = 360.0

type RiskKind string

const (
	RiskHighLoad     RiskKind = "high_load"
	RiskMissingOwner RiskKind = "missing_owner"
)

type (
	// KPIs are the headline dashboard numbers.
	KPIs struct {
		Total         int `json:"total"`
		ThisMonth     int `json:"thisMonth"`
		Upcoming      int `json:"upcoming"`
		Overdue       int `json:"overdue"`
		NoOwner       int `json:"noOwner"`
		Done          int `json:"done"`
		MonthsCovered int `json:"monthsCovered"`
		NotesCount    int `json:"notesCount"`
	}

	// CategoryCount is one bucket of the category distribution. Buckets
	// exist for every category, including empty ones.
	CategoryCount struct {
		Category core.Category `json:"category"`
		Color    string        `json:"color"`
		Count    int           `json:"count"`
	}

	// StatusSegment is one slice of the proportional status wheel.
	// StartAngle/SweepAngle are in degrees; segments are consecutive and
	// always close the full circle.
	StatusSegment struct {
		Status     core.Status `json:"status"`
		Color      string      `json:"color"`
		Count      int         `json:"count"`
		StartAngle float64     `json:"startAngle"`
		SweepAngle float64     `json:"sweepAngle"`
	}

	// Risk is a single flagged condition. High-load risks carry the
	// offending slot; missing-owner risks carry the item.
	Risk struct {
		Kind    RiskKind   `json:"kind"`
		Message string     `json:"message"`
		Month   core.Month `json:"month,omitempty"`
		Week    int        `json:"week,omitempty"`
		ItemID  string     `json:"itemId,omitempty"`
	}

	// OwnerLoad is one row of the per-owner item count table.
	OwnerLoad struct {
		Owner string `json:"owner"`
		Count int    `json:"count"`
	}

	// Report is the full derived-analytics bundle for one snapshot.
	Report struct {
		KPIs       KPIs            `json:"kpis"`
		Categories []CategoryCount `json:"categories"`
		Statuses   []StatusSegment `json:"statuses"`
		Risks      []Risk          `json:"risks"`
		OwnerLoads []OwnerLoad     `json:"ownerLoads"`
		Tips       []string        `json:"tips"`
	}
)

// Compute derives the full report from a snapshot of items and notes.
// "now" anchors the this-month and upcoming/overdue classifications.
func Compute(items []core.Item, notes core.Notes, now time.Time) Report {
	curIdx := core.CurrentWeekIndex(now)
	curMonth := core.CurrentMonth(now)

	r := Report{
		KPIs: KPIs{
			Total:      len(items),
			NotesCount: notes.CountNonBlank(),
		},
	}

	months := map[core.Month]struct{}{}
	for _, it := range items {
		months[it.Month] = struct{}{}
		if it.Month == curMonth {
			r.KPIs.ThisMonth++
		}
		if it.Unassigned() {
			r.KPIs.NoOwner++
		}
		if it.Status == core.StatusDone {
			r.KPIs.Done++
		}
		switch idx := core.WeekIndex(it.Month, it.Week); {
		case idx > curIdx:
			r.KPIs.Upcoming++
		case idx < curIdx && it.Status != core.StatusDone:
			r.KPIs.Overdue++
		}
	}
	r.KPIs.MonthsCovered = len(months)

	r.Categories = categoryDistribution(items)
	r.Statuses = statusDistribution(items)
	r.Risks = detectRisks(items)
	r.OwnerLoads = ownerLoads(items)
	r.Tips = insightTips(items, curMonth, r.KPIs.Overdue)

	return r
}

// Upcoming returns the items strictly after the current week index.
func Upcoming(items []core.Item, now time.Time) []core.Item {
	curIdx := core.CurrentWeekIndex(now)
	return filter(items, func(it core.Item) bool {
		return core.WeekIndex(it.Month, it.Week) > curIdx
	})
}

// Overdue returns unfinished items strictly before the current week index.
func Overdue(items []core.Item, now time.Time) []core.Item {
	curIdx := core.CurrentWeekIndex(now)
	return filter(items, func(it core.Item) bool {
		return core.WeekIndex(it.Month, it.Week) < curIdx && it.Status != core.StatusDone
	})
}

// ThisMonth returns the items planned in the current calendar month.
func ThisMonth(items []core.Item, now time.Time) []core.Item {
	cur := core.CurrentMonth(now)
	return filter(items, func(it core.Item) bool { return it.Month == cur })
}

// NoOwner returns the items without a responsible owner.
func NoOwner(items []core.Item) []core.Item {
	return filter(items, core.Item.Unassigned)
}

// Done returns the completed items.
func Done(items []core.Item) []core.Item {
	return filter(items, func(it core.Item) bool { return it.Status == core.StatusDone })
}

func filter(items []core.Item, keep func(core.Item) bool) []core.Item {
	out := make([]core.Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func categoryDistribution(items []core.Item) []CategoryCount {
	counts := map[core.Category]int{}
	for _, it := range items {
		counts[it.Cat]++
	}
	dist := make([]CategoryCount, 0, len(core.Categories))
	for _, c := range core.Categories {
		dist = append(dist, CategoryCount{Category: c, Color: c.Color(), Count: counts[c]})
	}
	return dist
}

// statusDistribution computes the proportional wheel segments. With no
// items there is nothing to be proportional to, so every status gets an
// equal sweep; either way the segments close the full circle.
func statusDistribution(items []core.Item) []StatusSegment {
	counts := map[core.Status]int{}
	for _, it := range items {
		counts[it.Status]++
	}

	segments := make([]StatusSegment, 0, len(core.Statuses))
	angle := sweepOrigin
	for _, s := range core.Statuses {
		sweep := fullCircle / float64(len(core.Statuses))
		if len(items) > 0 {
			sweep = fullCircle * float64(counts[s]) / float64(len(items))
		}
		segments = append(segments, StatusSegment{
			Status:     s,
			Color:      s.Color(),
			Count:      counts[s],
			StartAngle: angle,
			SweepAngle: sweep,
		})
		angle += sweep
	}
	return segments
}

type slot struct {
	month core.Month
	week  int
}

// detectRisks flags overloaded (month, week) slots and ownerless items.
// The two kinds are reported independently; an ownerless item in an
// overloaded slot appears in both.
func detectRisks(items []core.Item) []Risk {
	bySlot := map[slot]int{}
	order := []slot{}
	for _, it := range items {
		s := slot{it.Month, it.Week}
		if bySlot[s] == 0 {
			order = append(order, s)
		}
		bySlot[s]++
	}

	var risks []Risk
	for _, s := range order {
		if n := bySlot[s]; n >= highLoadThreshold {
			risks = append(risks, Risk{
				Kind:    RiskHighLoad,
				Message: fmt.Sprintf("%d aktiviteter i %s uge %d, overvej at sprede dem", n, s.month, s.week),
				Month:   s.month,
				Week:    s.week,
			})
		}
	}
	for _, it := range items {
		if it.Unassigned() {
			risks = append(risks, Risk{
				Kind:    RiskMissingOwner,
				Message: fmt.Sprintf("\"%s\" mangler en ansvarlig", it.Title),
				ItemID:  it.ID,
			})
		}
	}
	return risks
}

func ownerLoads(items []core.Item) []OwnerLoad {
	counts := map[string]int{}
	for _, it := range items {
		owner := strings.TrimSpace(it.Owner)
		if owner == "" {
			owner = OwnerUnknown
		}
		counts[owner]++
	}
	loads := make([]OwnerLoad, 0, len(counts))
	for owner, n := range counts {
		loads = append(loads, OwnerLoad{Owner: owner, Count: n})
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].Count != loads[j].Count {
			return loads[i].Count > loads[j].Count
		}
		return loads[i].Owner < loads[j].Owner
	})
	return loads
}

// insightTips evaluates the advisory rules in priority order. The
// all-clear message appears only when every other rule is silent.
func insightTips(items []core.Item, curMonth core.Month, overdue int) []string {
	var tips []string
	if len(items) == 0 {
		tips = append(tips, "Ingen aktiviteter endnu. Start med at oprette de første i Årshjul.")
	}
	inCurrent := 0
	for _, it := range items {
		if it.Month == curMonth {
			inCurrent++
		}
	}
	if inCurrent == 0 {
		tips = append(tips, fmt.Sprintf("Ingen aktiviteter for %s. Overvej at planlægge mindst én.", curMonth))
	}
	if overdue > 0 {
		tips = append(tips, fmt.Sprintf("%d planlagte aktiviteter ligger før nu og er ikke afsluttet.", overdue))
	}
	if len(tips) == 0 {
		tips = append(tips, "Alt ser godt ud! Fortsæt med jævnt flow af aktiviteter.")
	}
	return tips
}
