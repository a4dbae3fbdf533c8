package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

var errSizeMismatch = errors.New("image size does not match display")

// packFramebuffer converts a canvas to the display's 1-bit layout: pixel
// (x, y) lives in byte (x + y*width)/8 at bit 0x80 >> (x%8), set when lit.
func packFramebuffer(img image.Image, geo Geometry) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width != geo.Width || height != geo.Height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", errSizeMismatch, width, height, geo.Width, geo.Height)
	}

	buf := make([]byte, geo.BufferSize())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if lit(img, bounds.Min.X+x, bounds.Min.Y+y) {
				buf[(x+y*width)/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return buf, nil
}

func lit(img image.Image, x, y int) bool {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y >= 128
}

// packPNG decodes a stored PNG and packs it.
func packPNG(data []byte, geo Geometry) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}
	return packFramebuffer(img, geo)
}
