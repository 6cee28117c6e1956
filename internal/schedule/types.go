package schedule

import (
	"time"
)

// Status is the lifecycle state of an intervention.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus maps a stored status string to a Status, defaulting to planned.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s)
	default:
		return StatusPlanned
	}
}

// Client identifies the customer an intervention is performed for.
type Client struct {
	Name      string `yaml:"name"`
	FirstName string `yaml:"first_name,omitempty"`
}

// DisplayName returns "FirstName Name" or just the last name.
func (c Client) DisplayName() string {
	if c.FirstName == "" {
		return c.Name
	}
	return c.FirstName + " " + c.Name
}

// Intervention is a scheduled job: a start instant, an optional end,
// a status and an optional client. The view layer treats interventions
// as read-only; only Start changes, through Reschedule.
type Intervention struct {
	ID     string     `yaml:"id"`
	Title  string     `yaml:"title"`
	Start  time.Time  `yaml:"start"`
	End    *time.Time `yaml:"end,omitempty"`
	Status Status     `yaml:"status"`
	Client *Client    `yaml:"client,omitempty"`
}

// Scheduled reports whether the intervention carries a usable start
// instant. Unscheduled interventions are excluded from calendar buckets.
func (iv Intervention) Scheduled() bool {
	return !iv.Start.IsZero()
}

// Duration returns End-Start, or zero when no end is set.
func (iv Intervention) Duration() time.Duration {
	if iv.End == nil {
		return 0
	}
	return iv.End.Sub(iv.Start)
}
