package schedule

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// ICSSource reads interventions from an iCalendar file or subscription
// URL. It is read-only: rescheduling an imported intervention requires
// copying it into the store first.
type ICSSource struct {
	// Location is a path or an http(s) URL.
	Location string
}

func NewICSSource(location string) *ICSSource {
	return &ICSSource{Location: location}
}

// GetInterventions implements Source.
func (s *ICSSource) GetInterventions(start, end time.Time) ([]Intervention, error) {
	all, err := s.Fetch()
	if err != nil {
		return nil, err
	}

	var out []Intervention
	for _, iv := range all {
		if iv.Start.Before(start) || iv.Start.After(end) {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

// Fetch retrieves and parses the whole calendar.
func (s *ICSSource) Fetch() ([]Intervention, error) {
	r, err := s.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return decodeICS(r)
}

func (s *ICSSource) open() (io.ReadCloser, error) {
	if strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://") {
		resp, err := http.Get(s.Location)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", s.Location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching %s: unexpected status %s", s.Location, resp.Status)
		}
		return resp.Body, nil
	}

	f, err := os.Open(s.Location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Location, err)
	}
	return f, nil
}

func decodeICS(r io.Reader) ([]Intervention, error) {
	decoder := ical.NewDecoder(r)

	var out []Intervention
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			iv, ok := interventionFromComponent(comp)
			if !ok {
				continue
			}
			out = append(out, iv)
		}
	}
	return out, nil
}

// interventionFromComponent maps a VEVENT onto an Intervention. Events
// without a DTSTART are dropped; a CANCELLED status carries over.
func interventionFromComponent(comp *ical.Component) (Intervention, bool) {
	iv := Intervention{Status: StatusPlanned}

	if p := comp.Props.Get(ical.PropUID); p != nil {
		iv.ID = p.Value
	}
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		iv.Title = p.Value
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return Intervention{}, false
	}
	start, err := startProp.DateTime(time.Local)
	if err != nil {
		return Intervention{}, false
	}
	iv.Start = start

	if p := comp.Props.Get(ical.PropDateTimeEnd); p != nil {
		if end, err := p.DateTime(time.Local); err == nil {
			iv.End = &end
		}
	}

	if p := comp.Props.Get(ical.PropStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		iv.Status = StatusCancelled
	}

	if iv.ID == "" {
		// No UID in the feed; derive a stable one.
		iv.ID = "ics-" + iv.Start.Format(time.RFC3339) + "-" + iv.Title
	}

	return iv, true
}

// Watch implements Source; ICS subscriptions are not watched.
func (s *ICSSource) Watch() (<-chan ChangeEvent, error) { return nil, nil }

// StopWatching implements Source.
func (s *ICSSource) StopWatching() error { return nil }
