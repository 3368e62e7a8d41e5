package app

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termreader/internal/term"
)

type fakeDisplay struct {
	initErr error
	inits   int
}

func (f *fakeDisplay) Init() error {
	f.inits++
	return f.initErr
}

func (f *fakeDisplay) Shutdown()                 {}
func (f *fakeDisplay) Size() (int, int)          { return 80, 24 }
func (f *fakeDisplay) Draw(*term.Screen, string) {}
func (f *fakeDisplay) PollEvent() tcell.Event    { return nil }
func (f *fakeDisplay) Interrupt()                {}

func TestRunRetryableAfterDisplayInitFailure(t *testing.T) {
	d := &fakeDisplay{initErr: errors.New("no tty")}
	app := &Application{
		quit:    make(chan error, 1),
		backend: d,
		logger:  NullLogger,
	}

	err := app.Run()
	if err == nil {
		t.Fatal("Run() error = nil, want display init failure")
	}
	if errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("Run() error = %v on first call", err)
	}

	if err := app.Run(); errors.Is(err, ErrAlreadyRunning) {
		t.Error("failed display init left the application marked running")
	}
	if d.inits != 2 {
		t.Errorf("display inits = %d, want 2", d.inits)
	}
}
