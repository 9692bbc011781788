package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/kastheco/fold/log"
)

const watchDebounce = 100 * time.Millisecond

// documentChangedMsg asks the model to reload the document from disk.
type documentChangedMsg struct{}

type watchErrMsg struct{ err error }

// Watcher reports changes to a single file. The file's directory is watched
// rather than the file so editors that save by rename keep being seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	target  string
	changes chan struct{}
	errs    chan error

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// NewWatcher starts watching path. Bursts of events within the debounce
// window collapse into one change.
func NewWatcher(path string) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	w := &Watcher{
		fs:      fw,
		target:  target,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one value per debounced burst of changes.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors delivers watcher failures. It is closed with the watcher.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.WarningLog.Printf("watcher error: %v", err)
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Close stops the watcher and closes Changes and Errors.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done
	close(w.changes)
	close(w.errs)
	return err
}

// watch feeds document changes into the program.
func watch(path string, send func(tea.Msg)) (*Watcher, error) {
	w, err := NewWatcher(path)
	if err != nil {
		return nil, err
	}
	go func() {
		for range w.Changes() {
			send(documentChangedMsg{})
		}
	}()
	go func() {
		for err := range w.Errors() {
			send(watchErrMsg{err: fmt.Errorf("watch: %w", err)})
		}
	}()
	return w, nil
}
