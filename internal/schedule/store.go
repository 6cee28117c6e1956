package schedule

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// storeFile is the on-disk shape of the intervention store.
type storeFile struct {
	Interventions []Intervention `yaml:"interventions"`
}

// Store is a YAML file backed intervention source. It is the persistence
// collaborator behind drop commits: the UI proposes a new start instant
// and Store applies it.
type Store struct {
	path string
	log  *zap.Logger

	mu            sync.RWMutex
	interventions []Intervention

	watcher   *FileWatcher
	changeCh  chan ChangeEvent
	watchOnce sync.Once
}

// NewStore creates a store for the given file. The file does not need to
// exist yet; a missing file is an empty store.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Load reads the store file into memory. A missing file loads as empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.interventions = nil
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}

	for i := range file.Interventions {
		file.Interventions[i].Status = ParseStatus(string(file.Interventions[i].Status))
	}

	s.mu.Lock()
	s.interventions = file.Interventions
	s.mu.Unlock()

	s.log.Debug("store loaded",
		zap.String("path", s.path),
		zap.Int("interventions", len(file.Interventions)))
	return nil
}

// Save writes the in-memory interventions back to the store file.
func (s *Store) Save() error {
	s.mu.RLock()
	file := storeFile{Interventions: s.interventions}
	data, err := yaml.Marshal(&file)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// GetInterventions implements Source. Interventions are returned sorted
// by start instant; unscheduled ones are excluded.
func (s *Store) GetInterventions(start, end time.Time) ([]Intervention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Intervention
	for _, iv := range s.interventions {
		if !iv.Scheduled() {
			continue
		}
		if iv.Start.Before(start) || iv.Start.After(end) {
			continue
		}
		out = append(out, iv)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// All returns every intervention in the store, scheduled or not.
func (s *Store) All() []Intervention {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Intervention, len(s.interventions))
	copy(out, s.interventions)
	return out
}

// Add appends an intervention, assigning an ID if it has none, and saves.
func (s *Store) Add(iv Intervention) (Intervention, error) {
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.Status == "" {
		iv.Status = StatusPlanned
	}

	s.mu.Lock()
	s.interventions = append(s.interventions, iv)
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		return iv, err
	}
	s.log.Info("intervention added",
		zap.String("id", iv.ID),
		zap.String("title", iv.Title),
		zap.Time("start", iv.Start))
	return iv, nil
}

// Reschedule moves the intervention with the given ID to a new start
// instant, shifting its end by the same delta so the duration is kept.
// Rescheduling to the instant it already has is a no-op, which makes the
// drop path idempotent.
func (s *Store) Reschedule(id string, newStart time.Time) error {
	s.mu.Lock()
	idx := -1
	for i := range s.interventions {
		if s.interventions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("unknown intervention %q", id)
	}

	iv := &s.interventions[idx]
	if iv.Start.Equal(newStart) {
		s.mu.Unlock()
		return nil
	}

	delta := newStart.Sub(iv.Start)
	iv.Start = newStart
	if iv.End != nil {
		end := iv.End.Add(delta)
		iv.End = &end
	}
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		return err
	}
	s.log.Info("intervention rescheduled",
		zap.String("id", id),
		zap.Time("start", newStart))
	return nil
}

// Watch implements Source. The store file is watched with fsnotify so
// external edits show up in the UI.
func (s *Store) Watch() (<-chan ChangeEvent, error) {
	var err error
	s.watchOnce.Do(func() {
		s.changeCh = make(chan ChangeEvent, 10)

		var w *FileWatcher
		w, err = NewFileWatcher(func(path string) {
			if loadErr := s.Load(); loadErr != nil {
				s.log.Warn("reload after change failed", zap.Error(loadErr))
				return
			}
			select {
			case s.changeCh <- ChangeEvent{Path: path, Timestamp: time.Now()}:
			default:
				// Channel full, drop event
			}
		})
		if err != nil {
			return
		}
		if addErr := w.AddFile(s.path); addErr != nil {
			s.log.Warn("watch store file failed", zap.Error(addErr))
		}
		s.watcher = w
	})
	if err != nil {
		return nil, err
	}
	return s.changeCh, nil
}

// StopWatching implements Source.
func (s *Store) StopWatching() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
