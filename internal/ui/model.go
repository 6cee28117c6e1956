package ui

import (
	"fmt"
	"time"

	"atelier/internal/calendar"
	"atelier/internal/config"
	"atelier/internal/schedule"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewHelp
	ViewEditor
)

// Callbacks are the mutation channels out of the calendar widget. The
// renderers never change data themselves; everything flows through here.
// A nil OnInterventionDrop disables moving entirely: no cell is a move
// target and no hover state is ever entered.
type Callbacks struct {
	OnDateClick         func(date time.Time)
	OnInterventionClick func(iv schedule.Intervention)
	OnAddClick          func(date time.Time, hour int, hasHour bool)
	OnInterventionDrop  calendar.RescheduleFunc
}

type Model struct {
	// Core components
	config    *config.Config
	source    schedule.Source
	store     *schedule.Store
	log       *zap.Logger
	prefs     config.PrefsHooks
	callbacks Callbacks

	// View state
	mode          ViewMode
	state         calendar.ViewState
	interventions []schedule.Intervention
	dayIdx        calendar.DayIndex
	loadedFrom    time.Time
	loadedTo      time.Time

	// Week view state
	cursorHour  int
	weekTop     int
	weekMounted bool

	// Move gesture state
	mover  *calendar.MoveController
	moving *schedule.Intervention

	// UI state
	width        int
	height       int
	message      string
	messageTimer *time.Timer

	// Editor state
	inputBuffer string
	cursorPos   int

	// Watch state
	watchInit bool
	watchCh   <-chan schedule.ChangeEvent

	// Styles
	styles Styles

	now func() time.Time
}

// NewModel builds the TUI model around a source. When a store is given,
// interventions can be created and moved; with a read-only source the
// move and add affordances are absent.
func NewModel(cfg *config.Config, source schedule.Source, store *schedule.Store, prefs config.PrefsHooks, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		config:     cfg,
		source:     source,
		store:      store,
		log:        log,
		prefs:      prefs,
		cursorHour: cfg.DayStartHour + 1,
		styles:     DefaultStyles(),
		now:        time.Now,
	}

	now := time.Now()
	m.state = calendar.ViewState{
		Anchor:      now,
		Granularity: granularityFromName(cfg.StartupView),
		Selected:    calendar.StartOfDay(now),
	}
	if prefs.Load != nil {
		if p, ok := prefs.Load(); ok {
			m.state.Granularity = granularityFromName(p.Granularity)
		}
	}

	m.callbacks = Callbacks{
		OnDateClick: func(date time.Time) {
			m.log.Debug("date selected", zap.String("date", calendar.DayKey(date)))
		},
		OnInterventionClick: func(iv schedule.Intervention) {
			m.showMessage(fmt.Sprintf("%s — %s", iv.Start.Format(cfg.TimeFormat), iv.Title))
		},
		OnAddClick: func(date time.Time, hour int, hasHour bool) {
			m.openEditor(date, hour, hasHour)
		},
	}
	if store != nil {
		m.callbacks.OnInterventionDrop = func(id string, newStart time.Time) {
			if err := store.Reschedule(id, newStart); err != nil {
				m.showMessage(fmt.Sprintf("Reschedule failed: %v", err))
				return
			}
			m.showMessage("Moved to " + newStart.Format("Jan 2 15:04"))
			m.loadInterventions()
		}
	}
	m.mover = calendar.NewMoveController(m.callbacks.OnInterventionDrop)

	if m.state.Granularity == calendar.GranularityWeek {
		m.mountWeekView()
	}
	m.loadInterventions()
	return m
}

// SetCallbacks replaces the widget callbacks. Meant for callers that
// embed the calendar and want the mutations routed elsewhere.
func (m *Model) SetCallbacks(cb Callbacks) {
	m.callbacks = cb
	m.mover = calendar.NewMoveController(cb.OnInterventionDrop)
}

func granularityFromName(name string) calendar.Granularity {
	if name == "week" {
		return calendar.GranularityWeek
	}
	return calendar.GranularityMonth
}

func granularityName(g calendar.Granularity) string {
	if g == calendar.GranularityWeek {
		return "week"
	}
	return "month"
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.tickCmd(),
		m.watchCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		if m.config.AutoRefresh {
			m.loadInterventions()
		}
		return m, m.tickCmd()

	case storeChangedMsg:
		m.loadInterventions()
		m.showMessage("Planning refreshed")
		return m, m.watchCmd()
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewHelp:
		return m.viewHelp()
	case ViewEditor:
		return m.viewEditor()
	default:
		return m.viewGrid()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ViewEditor {
		return m.handleEditorKeys(msg)
	}
	if m.mode == ViewHelp {
		m.mode = ViewGrid
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.mode = ViewHelp

	case "r":
		m.loadInterventions()
		m.showMessage("Refreshed")

	case "v":
		m.toggleGranularity()
	case "1":
		m.setGranularity(calendar.GranularityMonth)
	case "2":
		m.setGranularity(calendar.GranularityWeek)

	case "<", "p":
		m.shiftAnchor(-1)
	case ">":
		m.shiftAnchor(1)
	case "t":
		m.gotoToday()

	case "h", "left":
		m.moveSelection(0, 0, -1)
	case "l", "right":
		m.moveSelection(0, 0, 1)
	case "j", "down":
		if m.state.Granularity == calendar.GranularityWeek {
			m.moveCursorHour(1)
		} else {
			m.moveSelection(0, 0, 7)
		}
	case "k", "up":
		if m.state.Granularity == calendar.GranularityWeek {
			m.moveCursorHour(-1)
		} else {
			m.moveSelection(0, 0, -7)
		}

	case "m":
		m.pickUp()

	case "enter":
		if m.moving != nil {
			m.drop()
		} else if m.state.Granularity == calendar.GranularityWeek {
			m.activateCursorSlot()
		}

	case "esc":
		if m.moving != nil {
			m.cancelMove()
		}

	case "n":
		if m.store == nil {
			m.showMessage("Read-only source")
			break
		}
		if m.callbacks.OnAddClick != nil {
			if m.state.Granularity == calendar.GranularityWeek {
				m.callbacks.OnAddClick(m.state.Selected, m.cursorHour, true)
			} else {
				m.callbacks.OnAddClick(m.state.Selected, 0, false)
			}
		}
	}

	return m, nil
}

// moveSelection shifts the selected date and keeps the anchor on a grid
// that contains it. Selecting a cell is the click analogue, so the date
// callback fires.
func (m *Model) moveSelection(years, months, days int) {
	m.state.Selected = m.state.Selected.AddDate(years, months, days)
	m.state.Anchor = m.state.Selected
	m.hoverCursor()
	if m.callbacks.OnDateClick != nil {
		m.callbacks.OnDateClick(m.state.Selected)
	}
	if m.needsReload() {
		m.loadInterventions()
	}
}

func (m *Model) moveCursorHour(delta int) {
	m.cursorHour += delta
	if m.cursorHour < m.config.DayStartHour {
		m.cursorHour = m.config.DayStartHour
	}
	if m.cursorHour > m.config.DayEndHour {
		m.cursorHour = m.config.DayEndHour
	}
	m.scrollWeekTo(m.cursorHour)
	m.hoverCursor()
}

// shiftAnchor navigates to the previous/next month or week without
// touching the selection, even when the selected date scrolls out of
// the visible grid.
func (m *Model) shiftAnchor(direction int) {
	if m.state.Granularity == calendar.GranularityWeek {
		m.state.Anchor = m.state.Anchor.AddDate(0, 0, 7*direction)
	} else {
		m.state.Anchor = m.state.Anchor.AddDate(0, direction, 0)
	}
	m.loadInterventions()
}

func (m *Model) gotoToday() {
	m.state.Anchor = m.now()
	m.loadInterventions()
}

func (m *Model) toggleGranularity() {
	if m.state.Granularity == calendar.GranularityMonth {
		m.setGranularity(calendar.GranularityWeek)
	} else {
		m.setGranularity(calendar.GranularityMonth)
	}
}

// setGranularity switches the grid, keeping the anchor and the current
// selection. The new preference is saved through the injected hook.
func (m *Model) setGranularity(g calendar.Granularity) {
	if m.state.Granularity == g {
		return
	}
	m.state.Granularity = g
	if g == calendar.GranularityWeek {
		m.mountWeekView()
	}
	if m.prefs.Save != nil {
		if err := m.prefs.Save(config.WidgetPrefs{Granularity: granularityName(g)}); err != nil {
			m.log.Warn("saving widget prefs failed", zap.Error(err))
		}
	}
	m.loadInterventions()
}

// mountWeekView scrolls the hour grid so the row after the first working
// hour (08:00 with the default bounds) is the topmost visible row. Only
// the first entry into week view does this.
func (m *Model) mountWeekView() {
	if m.weekMounted {
		return
	}
	m.weekMounted = true
	m.weekTop = m.config.DayStartHour + 1
	if m.cursorHour < m.weekTop {
		m.cursorHour = m.weekTop
	}
}

func (m *Model) scrollWeekTo(hour int) {
	rows := m.visibleHourRows()
	if hour < m.weekTop {
		m.weekTop = hour
	}
	if hour >= m.weekTop+rows {
		m.weekTop = hour - rows + 1
	}
	if m.weekTop < m.config.DayStartHour {
		m.weekTop = m.config.DayStartHour
	}
}

// hoverCursor feeds the cell under the cursor to the move controller
// while a gesture is active. Outside a gesture there is no hover state.
func (m *Model) hoverCursor() {
	if m.moving == nil {
		return
	}
	m.mover.Leave()
	m.mover.Enter(m.cursorSlotKey())
	m.state.HoverSlot, _ = m.mover.Hover()
}

func (m *Model) cursorSlotKey() string {
	if m.state.Granularity == calendar.GranularityWeek {
		return calendar.SlotKey(m.state.Selected, m.cursorHour)
	}
	return calendar.DayKey(m.state.Selected)
}

// pickUp starts a move gesture on the first intervention in the cursor
// cell. Inert when rescheduling is unavailable.
func (m *Model) pickUp() {
	if !m.mover.Droppable() {
		return
	}

	var bucket []schedule.Intervention
	if m.state.Granularity == calendar.GranularityWeek {
		days := calendar.WeekGrid(m.state.Anchor)
		hourIdx := calendar.BuildHourIndex(days, m.dayIdx)
		bucket = hourIdx.At(m.state.Selected, m.cursorHour)
	} else {
		bucket = m.dayIdx.On(m.state.Selected)
	}
	if len(bucket) == 0 {
		m.showMessage("Nothing to move here")
		return
	}

	iv := bucket[0]
	m.moving = &iv
	m.mover.Enter(m.cursorSlotKey())
	m.state.HoverSlot, _ = m.mover.Hover()
	m.showMessage(fmt.Sprintf("Moving %q — navigate and press enter", iv.Title))
}

func (m *Model) drop() {
	iv := *m.moving
	if m.state.Granularity == calendar.GranularityWeek {
		m.mover.DropOnHour(iv, m.state.Selected, m.cursorHour)
	} else {
		m.mover.DropOnDay(iv, m.state.Selected)
	}
	m.moving = nil
	m.state.HoverSlot = ""
}

func (m *Model) cancelMove() {
	m.mover.Leave()
	m.moving = nil
	m.state.HoverSlot = ""
	m.showMessage("Move cancelled")
}

// activateCursorSlot fires the intervention callback for the chip under
// the week-view cursor. Month view surfaces interventions only through
// the detail panel.
func (m *Model) activateCursorSlot() {
	days := calendar.WeekGrid(m.state.Anchor)
	hourIdx := calendar.BuildHourIndex(days, m.dayIdx)
	bucket := hourIdx.At(m.state.Selected, m.cursorHour)
	if len(bucket) == 0 || m.callbacks.OnInterventionClick == nil {
		return
	}
	m.callbacks.OnInterventionClick(bucket[0])
}

// loadInterventions pulls the window covering the visible grid, with a
// week of slack either side, then rebuilds the day index.
func (m *Model) loadInterventions() {
	grid := m.state.Grid()
	start := grid[0].AddDate(0, 0, -7)
	end := grid[len(grid)-1].AddDate(0, 0, 8)

	interventions, err := m.source.GetInterventions(start, end)
	if err != nil {
		m.log.Warn("loading interventions failed", zap.Error(err))
		m.showMessage(fmt.Sprintf("Error loading planning: %v", err))
		return
	}

	m.interventions = interventions
	m.dayIdx = calendar.BuildDayIndex(interventions)
	m.loadedFrom = start
	m.loadedTo = end
}

func (m *Model) needsReload() bool {
	grid := m.state.Grid()
	return grid[0].Before(m.loadedFrom) || grid[len(grid)-1].After(m.loadedTo)
}

func (m *Model) showMessage(msg string) {
	m.message = msg
	if m.messageTimer != nil {
		m.messageTimer.Stop()
	}
	m.messageTimer = time.AfterFunc(3*time.Second, func() {
		m.message = ""
	})
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.config.RefreshRate, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// watchCmd waits for a change event from the source's watcher. The
// watch channel is established once and re-armed after every message.
func (m *Model) watchCmd() tea.Cmd {
	if !m.watchInit {
		m.watchInit = true
		ch, err := m.source.Watch()
		if err != nil {
			m.log.Warn("watching source failed", zap.Error(err))
		} else {
			m.watchCh = ch
		}
	}
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{path: ev.Path}
	}
}

// Message types
type tickMsg struct{}
type storeChangedMsg struct {
	path string
}
