package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termreader/internal/a11y"
)

// eventLoop polls display events until a quit is requested.
func (app *Application) eventLoop() error {
	for {
		select {
		case err := <-app.quit:
			return err
		default:
		}

		ev := app.backend.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			app.handleKeyEvent(ev)
		case *tcell.EventResize:
			cols, rows := ev.Size()
			app.loop.Post(func() {
				if !app.closed.Load() {
					app.resize(cols, rows)
				}
			})
		case *tcell.EventInterrupt:
			// Re-check the quit channel.
		}
	}
}

// handleKeyEvent routes a key press. Navigation mode consumes keys
// before the shell sees them; F1 engages it, F10 quits, page keys
// scroll the viewport, everything else goes to the shell.
func (app *Application) handleKeyEvent(ev *tcell.EventKey) {
	key := ev.Key()
	r := ev.Rune()

	if key == tcell.KeyF10 {
		app.stop(ErrQuit)
		return
	}

	app.loop.Post(func() {
		if app.closed.Load() {
			return
		}

		if app.manager.IsNavigationModeActive() {
			app.manager.HandleKey(navKey(key))
			return
		}

		switch key {
		case tcell.KeyF1:
			app.manager.EnterNavigationMode()
		case tcell.KeyPgUp:
			app.screen.ScrollLines(-app.screen.Rows())
		case tcell.KeyPgDn:
			app.screen.ScrollLines(app.screen.Rows())
		default:
			app.sendToShell(key, r)
		}
	})
}

// sendToShell translates a display key into shell input. The screen is
// at the bottom of its buffer after the user types, matching the usual
// terminal behavior of snapping on input.
func (app *Application) sendToShell(key tcell.Key, r rune) {
	app.screen.ScrollToBottom()

	var seq string
	switch key {
	case tcell.KeyRune:
		seq = string(r)
	case tcell.KeyEnter:
		seq = "\r"
	case tcell.KeyTab:
		seq = "\t"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		seq = "\x7f"
	case tcell.KeyEscape:
		seq = "\x1b"
	case tcell.KeyUp:
		seq = "\x1b[A"
	case tcell.KeyDown:
		seq = "\x1b[B"
	case tcell.KeyRight:
		seq = "\x1b[C"
	case tcell.KeyLeft:
		seq = "\x1b[D"
	default:
		// Control chords arrive as their control character.
		if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
			seq = string(rune(key))
		}
	}
	if seq == "" {
		return
	}

	if len(seq) == 1 {
		if err := app.session.SendKey(rune(seq[0])); err != nil {
			app.logger.WithComponent("term").Warn("send key: %v", err)
		}
		return
	}
	if _, err := app.session.Write([]byte(seq)); err != nil {
		app.logger.WithComponent("term").Warn("send sequence: %v", err)
	}
}

// navKey maps a display key to a navigation action.
func navKey(key tcell.Key) a11y.Key {
	switch key {
	case tcell.KeyEscape:
		return a11y.KeyEscape
	case tcell.KeyUp:
		return a11y.KeyArrowUp
	case tcell.KeyDown:
		return a11y.KeyArrowDown
	default:
		return a11y.KeyOther
	}
}
