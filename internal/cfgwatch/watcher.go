// Package cfgwatch notices when server.cfg is changed by something other
// than the editor (a text editor, a deploy script, the game panel).
package cfgwatch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/stlalpha/h2mcfg/internal/logging"
)

// DefaultDebounce coalesces bursts of writes into one notification.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to a single file.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	path     string
	debounce time.Duration
	onChange func(path string)
}

// New starts watching path. The parent directory is watched rather than
// the file itself so that replace-by-rename saves keep being seen. onChange
// runs on the watcher's goroutine after the debounce interval.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		done:     make(chan struct{}),
		path:     abs,
		debounce: debounce,
		onChange: onChange,
	}
	log.Printf("INFO: Watching %s for external changes", abs)
	go w.loop(fw)
	return w, nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return
	}
	close(w.done)
	w.watcher.Close()
	w.watcher = nil
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logging.Debug("watch: %s %s", event.Op, event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case <-w.done:
				default:
					w.onChange(w.path)
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Printf("ERROR: config file watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}
