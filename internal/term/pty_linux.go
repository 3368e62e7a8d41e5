//go:build linux

package term

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// startPTY starts a command with a PTY on Linux.
func startPTY(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	master, slave, err := openPTY()
	if err != nil {
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

	// The parent keeps only the master side.
	slave.Close()

	return &unixPTY{master: master}, nil
}

// unixPTY implements PTY for Linux.
type unixPTY struct {
	master *os.File
}

func (p *unixPTY) File() *os.File {
	return p.master
}

func (p *unixPTY) Read(buf []byte) (int, error) {
	return p.master.Read(buf)
}

func (p *unixPTY) Write(data []byte) (int, error) {
	return p.master.Write(data)
}

func (p *unixPTY) Resize(cols, rows uint16) error {
	return setWinSize(p.master, cols, rows)
}

func (p *unixPTY) Close() error {
	return p.master.Close()
}

// openPTY opens a master/slave PTY pair.
func openPTY() (*os.File, *os.File, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}

	// Unlock the slave.
	if err := unix.IoctlSetPointerInt(int(master.Fd()), unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, nil, err
	}

	ptyno, err := unix.IoctlGetInt(int(master.Fd()), unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, nil, err
	}

	slavePath := fmt.Sprintf("/dev/pts/%d", ptyno)
	slave, err := os.OpenFile(slavePath, os.O_RDWR, 0)
	if err != nil {
		master.Close()
		return nil, nil, err
	}

	return master, slave, nil
}

// setWinSize sets the PTY window size.
func setWinSize(f *os.File, cols, rows uint16) error {
	ws := &unix.Winsize{Row: rows, Col: cols}
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, ws)
}
