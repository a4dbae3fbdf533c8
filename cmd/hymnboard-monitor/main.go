// hymnboard-monitor prints the board firmware's serial log, reconnecting
// whenever the device goes away.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hymnboard-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var device string
	var baud int
	var retry time.Duration

	flagSet := pflag.NewFlagSet("hymnboard-monitor", pflag.ContinueOnError)
	flagSet.StringVarP(&device, "device", "d", "/dev/tty.usbmodem2101", "serial device path")
	flagSet.IntVarP(&baud, "baud", "b", 115200, "baud rate")
	flagSet.DurationVar(&retry, "retry", time.Second, "delay before reconnecting")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if _, ok := baudRates[baud]; !ok {
		return fmt.Errorf("unsupported baud rate %d", baud)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.SetFlags(0)
	m := &monitor{
		device: device,
		retry:  retry,
		out:    os.Stdout,
		open: func() (io.ReadCloser, error) {
			return openPort(device, baud)
		},
	}

	if err := m.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
