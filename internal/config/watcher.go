package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write
// before reloading; editors often write a file several times in quick
// succession.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk and
// delivers the result to a callback.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Config, error)

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// WatcherOption configures a Watcher during creation.
type WatcherOption func(*Watcher)

// WithDebounce sets the reload debounce interval.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher watches the config file at path and invokes onChange with
// the reloaded configuration (or the load error) after each change.
// The watch is on the containing directory, so the file may not exist
// yet; creating it later triggers a load.
func NewWatcher(path string, onChange func(Config, error), opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.done.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.done.Wait()
	return err
}

// loop coalesces bursts of writes into a single reload.
func (w *Watcher) loop() {
	defer w.done.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onChange(Default(), err)

		case <-timerCh:
			timer = nil
			timerCh = nil
			w.onChange(Load(w.path))
		}
	}
}
