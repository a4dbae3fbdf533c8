//go:build !linux && !darwin

package main

import (
	"errors"
	"os"
)

var baudRates = map[int]int{
	9600:   9600,
	115200: 115200,
}

func openPort(path string, baud int) (*os.File, error) {
	return nil, errors.New("serial ports are only supported on linux and darwin")
}
