// Package calendar holds the scheduling view model: day/hour grids,
// derived event indices and the move (drag/drop) controller. It has no
// dependency on any UI toolkit so it can be tested on its own.
package calendar

import (
	"fmt"
	"time"
)

// DayKey returns the bucket key for a date, "YYYY-MM-DD" in its location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SlotKey returns the composite key for an hour cell, "YYYY-MM-DD-HH".
func SlotKey(day time.Time, hour int) string {
	return fmt.Sprintf("%s-%02d", DayKey(day), hour)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7 // Sunday -> 7
	}
	offset-- // Monday = 0
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// MonthGrid returns the dates shown for the month containing anchor:
// full Monday-start weeks from the Monday on/before the 1st through the
// Sunday on/after the last day. The result length is always a multiple
// of 7 (5 or 6 weeks).
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	start := StartOfWeek(first)
	end := StartOfWeek(last).AddDate(0, 0, 6)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekGrid returns the 7 consecutive dates starting on the Monday of
// anchor's week.
func WeekGrid(anchor time.Time) []time.Time {
	start := StartOfWeek(anchor)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
