package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"atelier/internal/calendar"
)

const monthCellHeight = 4

// viewMonth renders the month grid: full Monday-start weeks, one cell
// per date with the day number, up to two intervention chips and an
// overflow indicator.
func (m *Model) viewMonth() string {
	grid := calendar.MonthGrid(m.state.Anchor)
	cellWidth := m.gridWidth() / 7
	if cellWidth < 9 {
		cellWidth = 9
	}

	var lines []string
	lines = append(lines, m.styles.Header.Render(m.state.Anchor.Format("January 2006")))

	var dayHeader strings.Builder
	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		dayHeader.WriteString(padRight(name, cellWidth))
	}
	lines = append(lines, m.styles.Help.Render(dayHeader.String()))

	for week := 0; week < len(grid)/7; week++ {
		cells := make([]string, 7)
		for weekday := 0; weekday < 7; weekday++ {
			cells[weekday] = m.renderMonthCell(grid[week*7+weekday], cellWidth)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMonthCell renders a single day cell. Out-of-month cells are
// dimmed but remain selectable and movable-onto; today and selected are
// independent states and can combine.
func (m *Model) renderMonthCell(day time.Time, cellWidth int) string {
	bucket := m.dayIdx.On(day)
	inMonth := day.Month() == m.state.Anchor.Month()
	isToday := calendar.SameDay(day, m.now())
	isSelected := m.state.HasSelection() && calendar.SameDay(day, m.state.Selected)
	isHover := m.state.HoverSlot != "" && m.state.HoverSlot == calendar.DayKey(day)

	var rows []string

	dayNum := fmt.Sprintf("%2d", day.Day())
	switch {
	case isToday:
		dayNum = m.styles.Today.Render(dayNum)
	case !inMonth:
		dayNum = m.styles.Dimmed.Render(dayNum)
	default:
		dayNum = m.styles.Normal.Render(dayNum)
	}
	rows = append(rows, dayNum)

	chipWidth := cellWidth - 1
	shown := len(bucket)
	if shown > 2 {
		shown = 2
	}
	for _, iv := range bucket[:shown] {
		chip := truncate(iv.Title, chipWidth)
		style := m.styles.statusStyle(iv.Status)
		if !inMonth {
			style = m.styles.Dimmed
		}
		rows = append(rows, style.Render(chip))
	}
	if rest := len(bucket) - shown; rest > 0 {
		rows = append(rows, m.styles.Help.Render(fmt.Sprintf("+%d others", rest)))
	}

	cell := lipgloss.NewStyle().Width(cellWidth).Height(monthCellHeight)
	switch {
	case isHover:
		cell = cell.Background(lipgloss.Color("24"))
	case isSelected:
		cell = cell.Background(lipgloss.Color("236"))
	}

	return cell.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) gridWidth() int {
	w := m.width - m.panelWidth() - 1
	if w < 63 {
		w = 63
	}
	return w
}

func (m *Model) panelWidth() int {
	w := m.width / 3
	if w < 30 {
		w = 30
	}
	return w
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
