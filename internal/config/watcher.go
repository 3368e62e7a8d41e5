package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce absorbs the burst of events editors produce when
// saving a file.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk and delivers
// the result to a handler. The parent directory is watched rather than
// the file itself because editors commonly replace files via rename,
// which drops a direct file watch.
type Watcher struct {
	mu      sync.Mutex
	path    string
	fsw     *fsnotify.Watcher
	handler func(Config, error)
	timer   *time.Timer
	closed  bool
	done    chan struct{}
}

// NewWatcher starts watching the config file at path. The handler
// receives each reload result; it is called from the watcher goroutine.
func NewWatcher(path string, handler func(Config, error)) (*Watcher, error) {
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
		path:    abs,
		fsw:     fsw,
		handler: handler,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	path, handler := w.path, w.handler
	w.mu.Unlock()

	cfg, err := Load(path)
	handler(cfg, err)
}

// Close stops the watcher. Safe to call more than once.
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

	err := w.fsw.Close()
	<-w.done
	return err
}
