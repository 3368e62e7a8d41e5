//go:build linux || darwin

package term

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func startTestSession(t *testing.T) (*Screen, *Session) {
	t.Helper()

	screen := NewScreen(ScreenOptions{Cols: 80, Rows: 24})
	session, err := NewSession(screen, SessionOptions{Shell: "/bin/sh"})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return screen, session
}

// waitForText polls the buffer until a line containing want appears.
func waitForText(t *testing.T, screen *Screen, want string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for i := 0; i < screen.BufferLength(); i++ {
			if strings.Contains(screen.RowText(i), want) {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no buffer line containing %q within 5s", want)
}

func TestSessionRunsShellCommand(t *testing.T) {
	screen, session := startTestSession(t)

	if _, err := session.Write([]byte("echo term_reader_ok\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	waitForText(t, screen, "term_reader_ok")
}

func TestSessionShellNotFound(t *testing.T) {
	screen := NewScreen(ScreenOptions{})
	_, err := NewSession(screen, SessionOptions{Shell: "/no/such/shell"})
	if !errors.Is(err, ErrShellNotFound) {
		t.Errorf("NewSession() error = %v, want ErrShellNotFound", err)
	}
}

func TestSessionSendKeyReportsPress(t *testing.T) {
	screen, session := startTestSession(t)

	var keys []rune
	screen.OnKey(func(r rune) { keys = append(keys, r) })

	if err := session.SendKey('w'); err != nil {
		t.Fatalf("SendKey() error = %v", err)
	}

	if len(keys) != 1 || keys[0] != 'w' {
		t.Errorf("reported keys = %q, want [w]", string(keys))
	}
}

func TestSessionResize(t *testing.T) {
	screen, session := startTestSession(t)

	if err := session.Resize(100, 30); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if screen.Cols() != 100 || screen.Rows() != 30 {
		t.Errorf("screen size = %dx%d, want 100x30", screen.Cols(), screen.Rows())
	}

	if err := session.Resize(0, 30); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 30) error = %v, want ErrInvalidSize", err)
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	_, session := startTestSession(t)

	if err := session.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := session.SendKey('x'); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("SendKey() error = %v after close, want ErrSessionClosed", err)
	}
}

func TestSessionDoneOnShellExit(t *testing.T) {
	_, session := startTestSession(t)

	if _, err := session.Write([]byte("exit 3\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	select {
	case <-session.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session not done within 5s of shell exit")
	}
	if got := session.ExitCode(); got != 3 {
		t.Errorf("ExitCode() = %d, want 3", got)
	}
}
