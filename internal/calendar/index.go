package calendar

import (
	"time"

	"atelier/internal/schedule"
)

// DayIndex maps a day key to the interventions starting on that day,
// in input order. It is a derived view, rebuilt whenever the underlying
// intervention list changes and never persisted.
type DayIndex map[string][]schedule.Intervention

// HourIndex maps a slot key (day + hour) to the interventions starting
// in that hour. Built per render pass for the 7 visible days.
type HourIndex map[string][]schedule.Intervention

// BuildDayIndex groups interventions by the calendar date of their start
// instant. Input order is preserved within a bucket; callers wanting
// chronological display pass an already sorted list. Interventions with
// a zero start are excluded.
func BuildDayIndex(interventions []schedule.Intervention) DayIndex {
	idx := make(DayIndex)
	for _, iv := range interventions {
		if !iv.Scheduled() {
			continue
		}
		key := DayKey(iv.Start)
		idx[key] = append(idx[key], iv)
	}
	return idx
}

// BuildHourIndex restricts a day index to the given visible days and
// buckets each day's interventions by start hour.
func BuildHourIndex(days []time.Time, dayIdx DayIndex) HourIndex {
	idx := make(HourIndex)
	for _, day := range days {
		for _, iv := range dayIdx[DayKey(day)] {
			key := SlotKey(day, iv.Start.Hour())
			idx[key] = append(idx[key], iv)
		}
	}
	return idx
}

// On returns the bucket for a date, nil when the day is empty.
func (idx DayIndex) On(day time.Time) []schedule.Intervention {
	return idx[DayKey(day)]
}

// At returns the bucket for an hour cell, nil when the slot is empty.
func (idx HourIndex) At(day time.Time, hour int) []schedule.Intervention {
	return idx[SlotKey(day, hour)]
}
