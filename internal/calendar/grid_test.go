package calendar

import (
	"testing"
	"time"
)

func TestMonthGridShape(t *testing.T) {
	// Cover a leap February, months starting on a Monday and on a
	// Sunday, and a plain mid-week month.
	anchors := []time.Time{
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local),  // leap year
		time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local), // starts on a Friday
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local),   // starts on a Monday
		time.Date(2024, 9, 30, 23, 59, 0, 0, time.Local),
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), // starts on a Sunday
	}

	for _, anchor := range anchors {
		t.Run(anchor.Format("2006-01"), func(t *testing.T) {
			grid := MonthGrid(anchor)

			if len(grid)%7 != 0 {
				t.Errorf("grid length %d is not a multiple of 7", len(grid))
			}
			if weeks := len(grid) / 7; weeks < 5 || weeks > 6 {
				t.Errorf("grid has %d weeks, want 5 or 6", weeks)
			}
			if grid[0].Weekday() != time.Monday {
				t.Errorf("grid starts on %v, want Monday", grid[0].Weekday())
			}
			if grid[len(grid)-1].Weekday() != time.Sunday {
				t.Errorf("grid ends on %v, want Sunday", grid[len(grid)-1].Weekday())
			}

			// Every date of the anchor month must be present.
			seen := make(map[string]bool)
			for _, d := range grid {
				seen[DayKey(d)] = true
			}
			first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
			for d := first; d.Month() == anchor.Month(); d = d.AddDate(0, 0, 1) {
				if !seen[DayKey(d)] {
					t.Errorf("grid is missing %s", DayKey(d))
				}
			}

			// Dates are consecutive.
			for i := 1; i < len(grid); i++ {
				if !grid[i].Equal(grid[i-1].AddDate(0, 0, 1)) {
					t.Errorf("grid[%d]=%s does not follow grid[%d]=%s",
						i, DayKey(grid[i]), i-1, DayKey(grid[i-1]))
				}
			}
		})
	}
}

func TestMonthGridIdempotent(t *testing.T) {
	anchor := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

	a := MonthGrid(anchor)
	b := MonthGrid(anchor)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("grid[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWeekGrid(t *testing.T) {
	tests := []struct {
		name       string
		anchor     time.Time
		wantMonday string
	}{
		{
			name:       "Mid-week anchor",
			anchor:     time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local), // Friday
			wantMonday: "2024-03-11",
		},
		{
			name:       "Monday anchor",
			anchor:     time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local),
			wantMonday: "2024-03-11",
		},
		{
			name:       "Sunday anchor belongs to the preceding Monday",
			anchor:     time.Date(2024, 3, 17, 23, 0, 0, 0, time.Local),
			wantMonday: "2024-03-11",
		},
		{
			name:       "Week crossing a month boundary",
			anchor:     time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local),
			wantMonday: "2024-03-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := WeekGrid(tt.anchor)

			if len(grid) != 7 {
				t.Fatalf("week grid has %d days, want 7", len(grid))
			}
			if DayKey(grid[0]) != tt.wantMonday {
				t.Errorf("week starts %s, want %s", DayKey(grid[0]), tt.wantMonday)
			}
			if grid[0].Weekday() != time.Monday {
				t.Errorf("week starts on %v, want Monday", grid[0].Weekday())
			}
			for i := 1; i < 7; i++ {
				if !grid[i].Equal(grid[i-1].AddDate(0, 0, 1)) {
					t.Errorf("day %d is not consecutive", i)
				}
			}
		})
	}
}

func TestWeekGridIdempotent(t *testing.T) {
	anchor := time.Date(2024, 3, 15, 14, 45, 0, 0, time.Local)

	a := WeekGrid(anchor)
	b := WeekGrid(anchor)
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("grid[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSlotKey(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if got := SlotKey(day, 9); got != "2024-03-15-09" {
		t.Errorf("SlotKey = %q, want 2024-03-15-09", got)
	}
	if got := SlotKey(day, 20); got != "2024-03-15-20" {
		t.Errorf("SlotKey = %q, want 2024-03-15-20", got)
	}
}
