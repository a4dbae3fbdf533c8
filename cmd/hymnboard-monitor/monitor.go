package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// monitor copies lines from a serial device to out. Any failure, including
// the device disappearing, is followed by a fixed delay and a reconnect. It
// only stops when ctx is done.
type monitor struct {
	device string
	retry  time.Duration
	open   func() (io.ReadCloser, error)
	out    io.Writer
}

func (m *monitor) run(ctx context.Context) error {
	for {
		err := m.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Printf("Lost connection to %s (%v), retrying in %s...", m.device, err, m.retry)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.retry):
		}
	}
}

func (m *monitor) session(ctx context.Context) error {
	port, err := m.open()
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("Connected to %s", m.device)

	// Closing the port is the only way to unblock a pending read.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			port.Close()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), ""))
		if line != "" {
			fmt.Fprintln(m.out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}
