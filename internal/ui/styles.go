package ui

import (
	"github.com/charmbracelet/lipgloss"

	"atelier/internal/schedule"
)

type Styles struct {
	Normal    lipgloss.Style
	Dimmed    lipgloss.Style
	Selected  lipgloss.Style
	Today     lipgloss.Style
	Hover     lipgloss.Style
	Header    lipgloss.Style
	Help      lipgloss.Style
	Message   lipgloss.Style
	Border    lipgloss.Style
	TimeAxis  lipgloss.Style
	NowMarker lipgloss.Style

	Planned    lipgloss.Style
	InProgress lipgloss.Style
	Completed  lipgloss.Style
	Cancelled  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Dimmed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Hover: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("39")),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Underline(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		TimeAxis: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		NowMarker: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		Planned: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		InProgress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
		Completed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		Cancelled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Strikethrough(true),
	}
}

// statusStyle picks the chip style for an intervention status.
func (s Styles) statusStyle(status schedule.Status) lipgloss.Style {
	switch status {
	case schedule.StatusInProgress:
		return s.InProgress
	case schedule.StatusCompleted:
		return s.Completed
	case schedule.StatusCancelled:
		return s.Cancelled
	default:
		return s.Planned
	}
}
