package schedule

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// FileWatcher watches store files for writes and invokes a callback,
// debouncing the bursts of events editors tend to produce on save.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	onChange func(string)
	mu       sync.RWMutex
	done     chan struct{}
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  w,
		files:    make(map[string]struct{}),
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go fw.run()
	return fw, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, ok := fw.files[abs]; ok {
		return nil
	}
	if err := fw.watcher.Add(abs); err != nil {
		return err
	}
	fw.files[abs] = struct{}{}
	return nil
}

func (fw *FileWatcher) run() {
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if timer, ok := pending[event.Name]; ok {
				timer.Stop()
			}
			pending[event.Name] = time.AfterFunc(debounceDelay, func() {
				fw.mu.RLock()
				_, watching := fw.files[event.Name]
				fw.mu.RUnlock()
				if watching && fw.onChange != nil {
					fw.onChange(event.Name)
				}
			})

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
