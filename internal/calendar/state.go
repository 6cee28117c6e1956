package calendar

import (
	"time"
)

// Granularity selects which grid the calendar displays.
type Granularity int

const (
	GranularityMonth Granularity = iota
	GranularityWeek
)

// ViewState is the displayed anchor date, the active granularity, the
// selected date (zero when nothing is selected) and the slot key under a
// move hover ("" outside a move gesture). Switching granularity or
// navigating the anchor never clears the selection.
type ViewState struct {
	Anchor      time.Time
	Granularity Granularity
	Selected    time.Time
	HoverSlot   string
}

// Grid returns the visible day sequence for the current granularity,
// anchored at the state's anchor date.
func (vs ViewState) Grid() []time.Time {
	if vs.Granularity == GranularityWeek {
		return WeekGrid(vs.Anchor)
	}
	return MonthGrid(vs.Anchor)
}

// HasSelection reports whether a date is selected.
func (vs ViewState) HasSelection() bool {
	return !vs.Selected.IsZero()
}
