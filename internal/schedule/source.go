package schedule

import (
	"time"
)

// Source is an interface for anything that can provide interventions.
type Source interface {
	// GetInterventions returns interventions whose start falls between
	// start and end (inclusive).
	GetInterventions(start, end time.Time) ([]Intervention, error)
	// Watch returns a channel that sends updates when the underlying
	// data changes. Returns nil if watching is not supported.
	Watch() (<-chan ChangeEvent, error)
	// StopWatching stops any watching.
	StopWatching() error
}

// Rescheduler is implemented by sources that can move an intervention
// to a new start instant.
type Rescheduler interface {
	Reschedule(id string, newStart time.Time) error
}

// ChangeEvent represents a change to a source's backing data.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}
