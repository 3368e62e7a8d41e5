package term

import (
	"fmt"
	"os"
	"os/exec"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Session attaches a shell process to a Screen through a PTY. Output
// bytes are decoded as UTF-8 and fed to the screen; input written via
// SendKey goes to the shell and is reported as a key press.
type Session struct {
	id     string
	screen *Screen

	pty PTY
	cmd *exec.Cmd

	done     chan struct{}
	exitCode atomic.Int32
	closed   atomic.Bool
}

// SessionOptions configures a new Session.
type SessionOptions struct {
	// Shell is the shell executable (defaults to $SHELL or /bin/sh).
	Shell string

	// Args are additional arguments passed to the shell.
	Args []string

	// Env are additional environment variables.
	Env []string

	// WorkDir is the shell's working directory.
	WorkDir string
}

// NewSession starts a shell attached to the given screen.
func NewSession(screen *Screen, opts SessionOptions) (*Session, error) {
	if opts.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
		if opts.Shell == "" {
			opts.Shell = "/bin/sh"
		}
	}

	if _, err := exec.LookPath(opts.Shell); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShellNotFound, opts.Shell)
	}

	cmd := exec.Command(opts.Shell, opts.Args...)
	cmd.Dir = opts.WorkDir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Env = append(cmd.Env, "TERM=dumb")

	pty, err := StartPTY(cmd, uint16(screen.Cols()), uint16(screen.Rows()))
	if err != nil {
		return nil, fmt.Errorf("start PTY: %w", err)
	}

	s := &Session{
		id:     uuid.New().String(),
		screen: screen,
		pty:    pty,
		cmd:    cmd,
		done:   make(chan struct{}),
	}
	s.exitCode.Store(-1)

	go s.readLoop()

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Screen returns the attached screen.
func (s *Session) Screen() *Screen {
	return s.screen
}

// SendKey sends a single key to the shell and reports the press to the
// screen's subscribers.
func (s *Session) SendKey(r rune) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	if _, err := s.pty.Write(buf); err != nil {
		return err
	}

	s.screen.KeyPress(r)
	return nil
}

// Write sends raw input bytes to the shell without a key-press report.
func (s *Session) Write(data []byte) (int, error) {
	if s.closed.Load() {
		return 0, ErrSessionClosed
	}
	return s.pty.Write(data)
}

// Resize changes both the PTY and screen dimensions.
func (s *Session) Resize(cols, rows int) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if cols < 1 || rows < 1 {
		return ErrInvalidSize
	}

	if err := s.pty.Resize(uint16(cols), uint16(rows)); err != nil {
		return fmt.Errorf("resize PTY: %w", err)
	}
	s.screen.Resize(cols, rows)
	return nil
}

// Close terminates the shell and releases the PTY. Safe to call twice.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.pty.Close()

	<-s.done
	return nil
}

// Done returns a channel closed when the shell exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// ExitCode returns the shell's exit code, or -1 while running.
func (s *Session) ExitCode() int {
	return int(s.exitCode.Load())
}

// readLoop decodes PTY output and feeds it to the screen.
func (s *Session) readLoop() {
	defer close(s.done)

	buf := make([]byte, 4096)
	var partial []byte

	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := buf[:n]
			if len(partial) > 0 {
				data = append(partial, data...)
				partial = nil
			}

			// Hold back a trailing incomplete UTF-8 sequence for the
			// next read.
			cut := len(data)
			for cut > 0 && cut > len(data)-utf8.UTFMax {
				if r, _ := utf8.DecodeLastRune(data[:cut]); r != utf8.RuneError {
					break
				}
				cut--
			}
			if cut < len(data) {
				partial = append(partial, data[cut:]...)
			}
			if cut > 0 {
				s.screen.Feed(string(data[:cut]))
			}
		}

		if err != nil {
			// Linux reports EIO instead of EOF once the child side
			// closes, so any read error ends the session.
			break
		}
	}

	if s.cmd.Process != nil {
		state, _ := s.cmd.Process.Wait()
		if state != nil {
			s.exitCode.Store(int32(state.ExitCode()))
		}
	}
}
