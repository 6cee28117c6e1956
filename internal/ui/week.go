package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"atelier/internal/calendar"
)

const timeAxisWidth = 7 // "HH:00  "

// viewWeek renders the hour-by-day grid: the configured hour axis
// (07:00 through 20:00 by default) crossed with the 7 visible days.
// Every intervention in an hour bucket is rendered as a chip with its
// start time, stacked in insertion order.
func (m *Model) viewWeek() string {
	days := calendar.WeekGrid(m.state.Anchor)
	hourIdx := calendar.BuildHourIndex(days, m.dayIdx)
	now := m.now()

	cellWidth := (m.gridWidth() - timeAxisWidth) / 7
	if cellWidth < 8 {
		cellWidth = 8
	}

	var lines []string
	weekOf := days[0]
	lines = append(lines, m.styles.Header.Render("Week of "+weekOf.Format("Jan 2, 2006")))

	var dayHeader strings.Builder
	dayHeader.WriteString(strings.Repeat(" ", timeAxisWidth))
	for _, day := range days {
		label := day.Format("Mon 02")
		if calendar.SameDay(day, now) {
			label = m.styles.Today.Render(padRight(label, cellWidth))
		} else {
			label = m.styles.Help.Render(padRight(label, cellWidth))
		}
		dayHeader.WriteString(label)
	}
	lines = append(lines, dayHeader.String())

	budget := m.height - 4 // header, day header, status bar rows
	for hour := m.weekTop; hour <= m.config.DayEndHour && budget > 0; hour++ {
		rowLines := m.renderHourRow(days, hourIdx, hour, cellWidth, now)
		for _, line := range rowLines {
			if budget <= 0 {
				break
			}
			lines = append(lines, line)
			budget--
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHourRow renders one hour across the 7 days. The row grows to
// fit the fullest bucket in it; empty cells pad with blanks.
func (m *Model) renderHourRow(days []time.Time, hourIdx calendar.HourIndex, hour int, cellWidth int, now time.Time) []string {
	rowHeight := 1
	for _, day := range days {
		if n := len(hourIdx.At(day, hour)); n > rowHeight {
			rowHeight = n
		}
	}

	rows := make([]string, rowHeight)
	for line := 0; line < rowHeight; line++ {
		var b strings.Builder

		axis := strings.Repeat(" ", timeAxisWidth)
		if line == 0 {
			axis = padRight(fmt.Sprintf("%02d:00", hour), timeAxisWidth)
			if hour == m.cursorHour && m.state.Granularity == calendar.GranularityWeek {
				axis = m.styles.Selected.Render(axis)
			} else {
				axis = m.styles.TimeAxis.Render(axis)
			}
		}
		b.WriteString(axis)

		for _, day := range days {
			b.WriteString(m.renderHourCell(day, hour, line, cellWidth, hourIdx, now))
		}
		rows[line] = b.String()
	}
	return rows
}

func (m *Model) renderHourCell(day time.Time, hour, line, cellWidth int, hourIdx calendar.HourIndex, now time.Time) string {
	bucket := hourIdx.At(day, hour)
	isCursor := calendar.SameDay(day, m.state.Selected) && hour == m.cursorHour
	isHover := m.state.HoverSlot != "" && m.state.HoverSlot == calendar.SlotKey(day, hour)

	content := ""
	if line < len(bucket) {
		iv := bucket[line]
		content = truncate(iv.Start.Format(m.config.TimeFormat)+" "+iv.Title, cellWidth-1)
	}

	// Current-time marker: only the row of the current hour, only the
	// column of today. The glyph encodes where in the hour we are.
	if line == 0 && content == "" && hour == now.Hour() && calendar.SameDay(day, now) {
		content = m.styles.NowMarker.Render(nowMarker(now.Minute(), cellWidth-1))
		return padANSI(content, cellWidth)
	}

	var style lipgloss.Style
	switch {
	case isHover:
		style = m.styles.Hover
	case isCursor:
		style = m.styles.Selected
	case line < len(bucket):
		style = m.styles.statusStyle(bucket[line].Status)
	default:
		style = m.styles.Normal
	}

	return style.Render(padRight(content, cellWidth))
}

// nowMarker draws the current-time indicator. The minute within the
// hour picks the rule glyph, the terminal stand-in for a proportional
// vertical offset inside the row.
func nowMarker(minute, width int) string {
	glyph := "▔"
	switch {
	case minute >= 40:
		glyph = "▁"
	case minute >= 20:
		glyph = "─"
	}
	if width < 1 {
		width = 1
	}
	return strings.Repeat(glyph, width)
}

// padANSI pads a styled string to the cell width without disturbing its
// escape sequences.
func padANSI(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

func (m *Model) visibleHourRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	total := m.config.DayEndHour - m.config.DayStartHour + 1
	if rows > total {
		rows = total
	}
	return rows
}
