// Package app wires termreader's components together and manages the
// application lifecycle: configuration, logging, the scheduler loop,
// the shell session, the renderer, and the accessibility engine.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termreader/internal/a11y"
	"github.com/dshills/termreader/internal/config"
	"github.com/dshills/termreader/internal/render"
	"github.com/dshills/termreader/internal/sched"
	"github.com/dshills/termreader/internal/speech"
	"github.com/dshills/termreader/internal/term"
)

// shutdownTimeout bounds how long Stop waits for the scheduler loop to
// drain.
const shutdownTimeout = 2 * time.Second

// display is the host terminal surface the event loop drives.
// *render.Backend implements it.
type display interface {
	Init() error
	Shutdown()
	Size() (cols, rows int)
	Draw(s *term.Screen, status string)
	PollEvent() tcell.Event
	Interrupt()
}

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	// Shell overrides the configured shell.
	Shell string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool
}

// Application is the central coordinator for all termreader
// components.
type Application struct {
	opts Options
	cfg  config.Config

	logger     *Logger
	loop       *sched.Loop
	screen     *term.Screen
	session    *term.Session
	metrics    *render.Metrics
	backend    display
	manager    *a11y.Manager
	cfgWatcher *config.Watcher

	// dict is swapped on config reload; loop-confined.
	dict *speech.Dictionary

	statusMu sync.Mutex
	status   string

	running atomic.Bool
	closed  atomic.Bool
	quit    chan error
	unsubs  []func()
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		quit: make(chan error, 1),
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	path := app.opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	app.cfg = cfg

	// 2. Logging
	level := cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	parsed := ParseLogLevel(level)
	if app.opts.Debug {
		parsed = LogLevelDebug
	}
	if app.logger, err = NewFileLogger(cfg.Log.File, parsed); err != nil {
		return err
	}

	// 3. Scheduler loop, the engine's single mutation goroutine
	app.loop = sched.NewLoop()
	if err := app.loop.Start(); err != nil {
		return err
	}

	// 4. Terminal screen and shell session
	app.screen = term.NewScreen(term.ScreenOptions{
		Cols:       cfg.Terminal.Cols,
		Rows:       cfg.Terminal.Rows,
		Scrollback: cfg.Terminal.Scrollback,
	})

	shell := cfg.Terminal.Shell
	if app.opts.Shell != "" {
		shell = app.opts.Shell
	}
	if app.session, err = term.NewSession(app.screen, term.SessionOptions{Shell: shell}); err != nil {
		return err
	}
	app.logger.WithComponent("term").Info("session %s started", app.session.ID())

	// 5. Renderer metrics and tcell backend
	app.metrics = render.NewMetrics()
	app.metrics.SetFontScale(cfg.Render.FontScale)
	app.metrics.SetDPR(cfg.Render.DPR)
	backend, err := render.NewBackend()
	if err != nil {
		return err
	}
	app.backend = backend

	// 6. Speech dictionary
	if cfg.Speech.Dictionary != "" {
		dict := speech.NewDictionary()
		if err := dict.LoadFile(cfg.Speech.Dictionary); err != nil {
			app.logger.WithComponent("speech").Warn("dictionary disabled: %v", err)
			dict.Close()
		} else {
			app.dict = dict
		}
	}

	// 7. Accessibility engine
	app.manager, err = a11y.NewManager(a11y.Options{
		Terminal:           app.screen,
		Renderer:           app.metrics,
		Scheduler:          app.loop,
		ReattachWorkaround: cfg.ReattachEnabled(),
		Rewrite:            app.rewriteAnnouncement,
	})
	if err != nil {
		return err
	}
	app.manager.Tree().SetAnnounceFunc(app.onAnnounce)
	app.manager.Tree().SetFocusFunc(app.onFocus)

	// 8. Configuration live reload
	if app.cfgWatcher, err = config.NewWatcher(path, app.onConfigReload); err != nil {
		// A broken watcher degrades to a fixed config, not a failure.
		app.logger.WithComponent("config").Warn("live reload disabled: %v", err)
		app.cfgWatcher = nil
	}

	return nil
}

// Run initializes the display and processes events until the shell
// exits or the user quits. Returns ErrQuit on a normal user exit.
func (app *Application) Run() error {
	if app.running.Swap(true) {
		return ErrAlreadyRunning
	}

	if err := app.backend.Init(); err != nil {
		// Run never got going, so leave the application retryable.
		app.running.Store(false)
		return fmt.Errorf("init display: %w", err)
	}

	cols, rows := app.backend.Size()
	app.resize(cols, rows)

	app.subscribeRedraw()
	app.setStatus(app.defaultStatus())
	app.requestDraw()

	go func() {
		<-app.session.Done()
		app.stop(nil)
	}()

	err := app.eventLoop()
	app.Shutdown()
	return err
}

// subscribeRedraw redraws the display whenever the screen content or
// geometry changes. Handlers fire on the PTY reader goroutine, so the
// draw is posted onto the loop.
func (app *Application) subscribeRedraw() {
	app.unsubs = append(app.unsubs,
		app.screen.OnRefresh(func(start, end int) { app.requestDraw() }),
		app.screen.OnScroll(func() { app.requestDraw() }),
		app.screen.OnResize(func(cols, rows int) { app.requestDraw() }),
	)
}

func (app *Application) requestDraw() {
	app.loop.Post(func() {
		if app.closed.Load() {
			return
		}
		app.backend.Draw(app.screen, app.Status())
	})
}

func (app *Application) resize(cols, rows int) {
	if cols <= 1 || rows <= 1 {
		return
	}
	// The bottom line is reserved for status.
	app.screen.Resize(cols, rows-1)
	if err := app.session.Resize(cols, rows-1); err != nil {
		app.logger.WithComponent("term").Warn("resize: %v", err)
	}
}

// rewriteAnnouncement runs whole-string announcements through the
// loaded dictionary. Loop-confined via the accessibility engine.
func (app *Application) rewriteAnnouncement(text string) string {
	if app.dict == nil {
		return text
	}
	return app.dict.Rewrite(text)
}

// onAnnounce receives live-region text from the accessible tree. The
// status line stands in for a speech synthesizer.
func (app *Application) onAnnounce(text string) {
	app.logger.WithComponent("a11y").Debug("announce: %q", text)
	app.setStatus("says: " + text)
	app.requestDraw()
}

// onFocus receives focus transitions from the accessible tree.
func (app *Application) onFocus(n *a11y.Node) {
	app.logger.WithComponent("a11y").Debug("focus: %s active=%s", n.ID(), n.ActiveDescendant())
}

// onConfigReload applies a changed configuration file. Called from the
// watcher goroutine; mutations are posted onto the loop.
func (app *Application) onConfigReload(cfg config.Config, err error) {
	if err != nil {
		app.logger.WithComponent("config").Warn("reload rejected: %v", err)
		return
	}

	app.loop.Post(func() {
		if app.closed.Load() {
			return
		}

		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
		app.metrics.SetFontScale(cfg.Render.FontScale)
		app.metrics.SetDPR(cfg.Render.DPR)

		if cfg.Speech.Dictionary != app.cfg.Speech.Dictionary {
			if app.dict != nil {
				app.dict.Close()
				app.dict = nil
			}
			if cfg.Speech.Dictionary != "" {
				dict := speech.NewDictionary()
				if err := dict.LoadFile(cfg.Speech.Dictionary); err != nil {
					app.logger.WithComponent("speech").Warn("dictionary disabled: %v", err)
					dict.Close()
				} else {
					app.dict = dict
				}
			}
		}

		app.cfg = cfg
		app.logger.WithComponent("config").Info("configuration reloaded")
	})
}

// Status returns the current status line text.
func (app *Application) Status() string {
	app.statusMu.Lock()
	defer app.statusMu.Unlock()
	return app.status
}

func (app *Application) setStatus(s string) {
	app.statusMu.Lock()
	app.status = s
	app.statusMu.Unlock()
}

func (app *Application) defaultStatus() string {
	return "termreader | F1 row navigation | F10 quit"
}

// Stats returns the accessibility engine's activity counters.
func (app *Application) Stats() a11y.Stats {
	return app.manager.Stats()
}

// stop requests event loop termination with the given result.
func (app *Application) stop(err error) {
	select {
	case app.quit <- err:
	default:
	}
	app.backend.Interrupt()
}

// Shutdown tears down all components. Safe to call more than once.
func (app *Application) Shutdown() {
	if app.closed.Swap(true) {
		return
	}

	for _, unsub := range app.unsubs {
		unsub()
	}
	app.unsubs = nil

	if app.cfgWatcher != nil {
		_ = app.cfgWatcher.Close()
	}
	// The loop stops before the engine is disposed so no engine task
	// runs concurrently with teardown. Events the session emits past
	// this point are rejected by the stopped loop.
	if app.loop != nil && app.loop.IsRunning() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = app.loop.Stop(ctx)
		cancel()
	}
	if app.manager != nil {
		app.manager.Dispose()
	}
	if app.session != nil {
		_ = app.session.Close()
	}
	if app.dict != nil {
		app.dict.Close()
		app.dict = nil
	}
	if app.backend != nil {
		app.backend.Shutdown()
	}
	if app.logger != nil {
		app.logger.Info("shutdown complete")
		_ = app.logger.Close()
	}
}
