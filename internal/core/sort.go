package core

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortItems returns a new slice ordered by (calendar month, week, title).
// Titles break ties under Danish collation so "Årsmøde" sorts after
// "Zebra", matching how the titles read to the planner's users. This is
// the canonical display order: every list view renders it and the
// customer view's prev/next navigation walks it.
func SortItems(items []Item) []Item {
	// Collators are stateful, so each call gets its own.
	titleCollator := collate.New(language.Danish)
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ma, mb := MonthIndex(a.Month), MonthIndex(b.Month); ma != mb {
			return ma < mb
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return titleCollator.CompareString(a.Title, b.Title) < 0
	})
	return sorted
}
