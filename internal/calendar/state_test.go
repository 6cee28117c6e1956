package calendar

import (
	"testing"
	"time"
)

func TestViewStateGrid(t *testing.T) {
	anchor := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	vs := ViewState{Anchor: anchor, Granularity: GranularityMonth}
	grid := vs.Grid()
	if len(grid)%7 != 0 || len(grid) < 28 {
		t.Errorf("month grid has %d cells", len(grid))
	}

	vs.Granularity = GranularityWeek
	grid = vs.Grid()
	if len(grid) != 7 {
		t.Fatalf("week grid has %d cells, want 7", len(grid))
	}
	if grid[0].Weekday() != time.Monday {
		t.Errorf("week starts on %v, want Monday", grid[0].Weekday())
	}
}

func TestViewStateHasSelection(t *testing.T) {
	var vs ViewState
	if vs.HasSelection() {
		t.Error("zero state reports a selection")
	}
	vs.Selected = time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if !vs.HasSelection() {
		t.Error("selected date not reported")
	}
}
