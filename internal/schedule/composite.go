package schedule

import (
	"sync"
	"time"
)

// CompositeSource merges interventions from several sources, deduplicating
// by ID. The first source to report an ID wins.
type CompositeSource struct {
	sources  []Source
	mu       sync.RWMutex
	changeCh chan ChangeEvent
	stops    []chan struct{}
}

func NewCompositeSource(sources ...Source) *CompositeSource {
	return &CompositeSource{
		sources:  sources,
		changeCh: make(chan ChangeEvent, 10),
	}
}

// GetInterventions implements Source. A failing source is skipped so one
// broken feed does not blank the whole calendar.
func (c *CompositeSource) GetInterventions(start, end time.Time) ([]Intervention, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	var all []Intervention
	for _, src := range c.sources {
		ivs, err := src.GetInterventions(start, end)
		if err != nil {
			continue
		}
		for _, iv := range ivs {
			if _, dup := seen[iv.ID]; dup {
				continue
			}
			seen[iv.ID] = struct{}{}
			all = append(all, iv)
		}
	}
	return all, nil
}

// Watch implements Source, forwarding changes from every watchable source.
func (c *CompositeSource) Watch() (<-chan ChangeEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, src := range c.sources {
		srcCh, err := src.Watch()
		if err != nil || srcCh == nil {
			continue
		}

		stop := make(chan struct{})
		c.stops = append(c.stops, stop)

		go func(in <-chan ChangeEvent, stop chan struct{}) {
			for {
				select {
				case ev, ok := <-in:
					if !ok {
						return
					}
					select {
					case c.changeCh <- ev:
					default:
						// Channel full, drop event
					}
				case <-stop:
					return
				}
			}
		}(srcCh, stop)
	}

	return c.changeCh, nil
}

// StopWatching implements Source.
func (c *CompositeSource) StopWatching() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stop := range c.stops {
		close(stop)
	}
	c.stops = nil

	for _, src := range c.sources {
		src.StopWatching()
	}
	return nil
}
