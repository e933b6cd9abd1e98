package core

import "time"

// The linear week index places every (month, week) slot on a single
// 0-59 axis: month*4 + (week-1). It is a coarse calendar position for
// upcoming/overdue classification, not a real date distance. Months
// with five calendar weeks fold their fifth week onto the next month's
// range, which the product accepts.

// WeekIndex returns the linear position of a month/week slot, or -1 for
// an unknown month.
func WeekIndex(m Month, week int) int {
	idx := MonthIndex(m)
	if idx < 0 {
		return -1
	}
	return idx*4 + (ClampWeek(week) - 1)
}

// CurrentWeekIndex returns the linear position of "now". The week part
// uses floor((day-1)/7), the zero-based twin of WeekOfMonth.
func CurrentWeekIndex(now time.Time) int {
	return int(now.Month()-1)*4 + (now.Day()-1)/7
}

// CurrentMonth returns the month name for "now".
func CurrentMonth(now time.Time) Month {
	return Months[int(now.Month())-1]
}
