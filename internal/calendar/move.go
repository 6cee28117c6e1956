package calendar

import (
	"time"

	"atelier/internal/schedule"
)

// RescheduleFunc commits a move: the intervention with the given ID gets
// the new start instant. Persistence, failure surfacing and rollback are
// the callback's problem; the controller is fire-and-forget.
type RescheduleFunc func(id string, newStart time.Time)

// MoveController tracks a single move gesture over the grid. It has two
// states: idle (no cell hovered) and hovering a slot key. Enter, Leave
// and the Drop methods are no-ops when no reschedule callback was
// supplied, in which case cells are not move targets at all.
type MoveController struct {
	reschedule RescheduleFunc
	hover      string
}

func NewMoveController(reschedule RescheduleFunc) *MoveController {
	return &MoveController{reschedule: reschedule}
}

// Droppable reports whether moves are available at all.
func (c *MoveController) Droppable() bool {
	return c != nil && c.reschedule != nil
}

// Enter records the slot key now under the gesture.
func (c *MoveController) Enter(slotKey string) {
	if !c.Droppable() {
		return
	}
	c.hover = slotKey
}

// Leave returns to idle without committing.
func (c *MoveController) Leave() {
	if !c.Droppable() {
		return
	}
	c.hover = ""
}

// Hover returns the slot key under the gesture and whether one is set.
func (c *MoveController) Hover() (string, bool) {
	return c.hover, c.hover != ""
}

// DropOnDay commits a move onto a day cell. The intervention keeps its
// original time of day. Dropping onto the day it already occupies still
// fires the callback; the persistence layer is idempotent.
func (c *MoveController) DropOnDay(iv schedule.Intervention, day time.Time) {
	if !c.Droppable() {
		return
	}
	c.hover = ""

	newStart := time.Date(day.Year(), day.Month(), day.Day(),
		iv.Start.Hour(), iv.Start.Minute(), iv.Start.Second(), iv.Start.Nanosecond(),
		day.Location())
	c.reschedule(iv.ID, newStart)
}

// DropOnHour commits a move onto an hour cell. Minutes, seconds and
// nanoseconds are forced to zero.
func (c *MoveController) DropOnHour(iv schedule.Intervention, day time.Time, hour int) {
	if !c.Droppable() {
		return
	}
	c.hover = ""

	newStart := time.Date(day.Year(), day.Month(), day.Day(),
		hour, 0, 0, 0, day.Location())
	c.reschedule(iv.ID, newStart)
}
