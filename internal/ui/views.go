package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"atelier/internal/calendar"
	"atelier/internal/schedule"
)

func (m *Model) viewGrid() string {
	var grid string
	if m.state.Granularity == calendar.GranularityWeek {
		grid = m.viewWeek()
	} else {
		grid = m.viewMonth()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(m.gridWidth()).Render(grid),
		" ",
		m.renderPanel(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

// renderPanel renders the detail side panel for the selected date. It
// keeps showing that day until a new date is picked, even when the
// anchor has navigated elsewhere.
func (m *Model) renderPanel() string {
	boxWidth := m.panelWidth() - 4
	if boxWidth < 26 {
		boxWidth = 26
	}

	var lines []string
	if !m.state.HasSelection() {
		lines = append(lines, m.styles.Help.Render("(no day selected)"))
	} else {
		lines = append(lines, m.styles.Header.Render(m.state.Selected.Format("Mon Jan 2, 2006")))

		bucket := m.dayIdx.On(m.state.Selected)
		if len(bucket) == 0 {
			lines = append(lines, "")
			lines = append(lines, m.styles.Help.Render("(no interventions this day)"))
		} else {
			for _, iv := range bucket {
				lines = append(lines, "")
				lines = append(lines, m.renderPanelEntry(iv, boxWidth)...)
			}
		}
	}

	if m.moving != nil {
		lines = append(lines, "")
		lines = append(lines, m.styles.Hover.Render(truncate("Moving: "+m.moving.Title, boxWidth)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.styles.Border.Width(boxWidth).Render(content)
}

func (m *Model) renderPanelEntry(iv schedule.Intervention, boxWidth int) []string {
	var lines []string

	header := iv.Start.Format(m.config.TimeFormat)
	if iv.End != nil {
		header += "–" + iv.End.Format(m.config.TimeFormat)
	}
	lines = append(lines, m.styles.statusStyle(iv.Status).Render(header+"  ["+string(iv.Status)+"]"))

	maxWidth := boxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}
	for _, line := range strings.Split(wordwrap.String(iv.Title, maxWidth), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	if iv.Client != nil {
		lines = append(lines, m.styles.Help.Render("Client: "+iv.Client.DisplayName()))
	}
	return lines
}

func (m *Model) renderStatusBar() string {
	viewName := "month"
	if m.state.Granularity == calendar.GranularityWeek {
		viewName = "week"
	}
	left := fmt.Sprintf(" %s | %s view | %d interventions",
		m.state.Selected.Format(m.config.DateFormat), viewName, len(m.interventions))

	right := "v:view  m:move  n:new  t:today  </>:prev/next  ?:help  q:quit"
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	return m.styles.Help.Render(left + strings.Repeat(" ", width) + right)
}

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("Atelier Help"),
		"",
		m.styles.Normal.Render("Navigation:"),
		m.styles.Help.Render("  h/l/←/→ - Previous/next day"),
		m.styles.Help.Render("  j/k/↓/↑ - Next/previous week (month view) or hour (week view)"),
		m.styles.Help.Render("  </>     - Previous/next month or week"),
		m.styles.Help.Render("  t       - Go to today"),
		m.styles.Help.Render("  v, 1, 2 - Switch between month and week view"),
		"",
		m.styles.Normal.Render("Actions:"),
		m.styles.Help.Render("  m       - Pick up intervention under cursor"),
		m.styles.Help.Render("  enter   - Drop picked-up intervention / open chip"),
		m.styles.Help.Render("  esc     - Cancel move"),
		m.styles.Help.Render("  n       - New intervention at cursor"),
		m.styles.Help.Render("  r       - Refresh"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) openEditor(date time.Time, hour int, hasHour bool) {
	m.mode = ViewEditor
	if hasHour {
		m.inputBuffer = fmt.Sprintf("%s %02d:00 ", date.Format("2006-01-02"), hour)
	} else {
		m.inputBuffer = date.Format("2006-01-02") + " 09:00 "
	}
	m.cursorPos = len(m.inputBuffer)
}

func (m *Model) viewEditor() string {
	var sections []string

	sections = append(sections, m.styles.Header.Render("New Intervention"))
	sections = append(sections, "")
	sections = append(sections, m.styles.Normal.Render("Enter date, time and title (e.g. '2026-09-02 14:00 Chaudière Dupont'):"))

	input := m.inputBuffer
	if m.cursorPos < len(input) {
		input = input[:m.cursorPos] + "█" + input[m.cursorPos:]
	} else {
		input = input + "█"
	}
	sections = append(sections, m.styles.Selected.Render(input))
	sections = append(sections, "")
	sections = append(sections, m.styles.Help.Render("Enter to save, Esc to cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ViewGrid
		return m, nil

	case tea.KeyEnter:
		m.submitEditor()
		m.mode = ViewGrid
		return m, nil

	case tea.KeyBackspace:
		if m.cursorPos > 0 {
			m.inputBuffer = m.inputBuffer[:m.cursorPos-1] + m.inputBuffer[m.cursorPos:]
			m.cursorPos--
		}

	case tea.KeyLeft:
		if m.cursorPos > 0 {
			m.cursorPos--
		}

	case tea.KeyRight:
		if m.cursorPos < len(m.inputBuffer) {
			m.cursorPos++
		}

	case tea.KeySpace:
		m.inputBuffer = m.inputBuffer[:m.cursorPos] + " " + m.inputBuffer[m.cursorPos:]
		m.cursorPos++

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.inputBuffer = m.inputBuffer[:m.cursorPos] + string(r) + m.inputBuffer[m.cursorPos:]
			m.cursorPos++
		}
	}

	return m, nil
}

// submitEditor parses "YYYY-MM-DD HH:MM title" and adds the intervention
// through the store.
func (m *Model) submitEditor() {
	if m.store == nil {
		m.showMessage("Read-only source")
		return
	}

	fields := strings.SplitN(strings.TrimSpace(m.inputBuffer), " ", 3)
	if len(fields) < 3 {
		m.showMessage("Expected: YYYY-MM-DD HH:MM title")
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", fields[0]+" "+fields[1], time.Local)
	if err != nil {
		m.showMessage(fmt.Sprintf("Bad date/time: %v", err))
		return
	}

	iv, err := m.store.Add(schedule.Intervention{
		Title:  fields[2],
		Start:  start,
		Status: schedule.StatusPlanned,
	})
	if err != nil {
		m.showMessage(fmt.Sprintf("Save failed: %v", err))
		return
	}

	m.showMessage(fmt.Sprintf("Added %q", iv.Title))
	m.loadInterventions()
}
