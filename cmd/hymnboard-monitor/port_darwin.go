package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Darwin takes the numeric rate directly.
var baudRates = map[int]uint64{
	9600:   9600,
	19200:  19200,
	38400:  38400,
	57600:  57600,
	115200: 115200,
	230400: 230400,
	460800: 460800,
	921600: 921600,
}

// openPort opens path as a raw 8N1 serial line at baud.
func openPort(path string, baud int) (*os.File, error) {
	speed, ok := baudRates[baud]
	if !ok {
		return nil, fmt.Errorf("unsupported baud rate %d", baud)
	}

	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	raw, err := f.SyscallConn()
	if err != nil {
		f.Close()
		return nil, err
	}
	var termErr error
	err = raw.Control(func(fd uintptr) {
		t, err := unix.IoctlGetTermios(int(fd), unix.TIOCGETA)
		if err != nil {
			termErr = err
			return
		}
		t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
		t.Oflag &^= unix.OPOST
		t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
		t.Cflag &^= unix.CSIZE | unix.PARENB
		t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
		t.Ispeed = speed
		t.Ospeed = speed
		t.Cc[unix.VMIN] = 1
		t.Cc[unix.VTIME] = 0
		termErr = unix.IoctlSetTermios(int(fd), unix.TIOCSETA, t)
	})
	if err == nil {
		err = termErr
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("configuring %s: %w", path, err)
	}
	return f, nil
}
