//go:build darwin

package term

import (
	"os"
	"os/exec"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// startPTY starts a command with a PTY on macOS.
func startPTY(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	if err := grantUnlockDarwin(master); err != nil {
		master.Close()
		return nil, err
	}

	slavePath, err := ptsNameDarwin(master)
	if err != nil {
		master.Close()
		return nil, err
	}

	slave, err := os.OpenFile(slavePath, os.O_RDWR, 0)
	if err != nil {
		master.Close()
		return nil, err
	}

	if err := setWinSize(master, cols, rows); err != nil {
		master.Close()
		slave.Close()
		return nil, err
	}

	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave

	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
	cmd.SysProcAttr.Setctty = true

	if err := cmd.Start(); err != nil {
		master.Close()
		slave.Close()
		return nil, err
	}

	slave.Close()

	return &darwinPTY{master: master}, nil
}

// darwinPTY implements PTY for macOS.
type darwinPTY struct {
	master *os.File
}

func (p *darwinPTY) File() *os.File {
	return p.master
}

func (p *darwinPTY) Read(buf []byte) (int, error) {
	return p.master.Read(buf)
}

func (p *darwinPTY) Write(data []byte) (int, error) {
	return p.master.Write(data)
}

func (p *darwinPTY) Resize(cols, rows uint16) error {
	return setWinSize(p.master, cols, rows)
}

func (p *darwinPTY) Close() error {
	return p.master.Close()
}

// grantUnlockDarwin performs the grantpt/unlockpt handshake required
// before the slave can be opened.
func grantUnlockDarwin(master *os.File) error {
	const (
		TIOCPTYGRANT = 0x20007454
		TIOCPTYUNLK  = 0x20007452
	)

	for _, req := range []uintptr{TIOCPTYGRANT, TIOCPTYUNLK} {
		if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, master.Fd(), req, 0); errno != 0 {
			return errno
		}
	}
	return nil
}

// ptsNameDarwin returns the slave PTY path via TIOCPTYGNAME, which has
// no wrapper in x/sys.
func ptsNameDarwin(master *os.File) (string, error) {
	const TIOCPTYGNAME = 0x40807453

	var name [128]byte
	_, _, errno := syscall.Syscall(
		syscall.SYS_IOCTL,
		master.Fd(),
		TIOCPTYGNAME,
		uintptr(unsafe.Pointer(&name[0])),
	)
	if errno != 0 {
		return "", errno
	}

	end := 0
	for end < len(name) && name[end] != 0 {
		end++
	}
	return string(name[:end]), nil
}

// setWinSize sets the PTY window size.
func setWinSize(f *os.File, cols, rows uint16) error {
	ws := &unix.Winsize{Row: rows, Col: cols}
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, ws)
}
