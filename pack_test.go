package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPackFramebufferBitLayout(t *testing.T) {
	geo := Geometry{Width: 16, Height: 2}
	img := image.NewPaletted(image.Rect(0, 0, 16, 2), monochrome)
	img.SetColorIndex(0, 0, 1)
	img.SetColorIndex(7, 0, 1)
	img.SetColorIndex(8, 0, 1)
	img.SetColorIndex(3, 1, 1)
	img.SetColorIndex(15, 1, 1)

	buf, err := packFramebuffer(img, geo)
	if err != nil {
		t.Fatalf("packFramebuffer failed: %v", err)
	}

	want := []byte{0x81, 0x80, 0x10, 0x01}
	if !bytes.Equal(buf, want) {
		t.Errorf("Expected % x, got % x", want, buf)
	}
}

func TestPackFramebufferOffsetBounds(t *testing.T) {
	geo := Geometry{Width: 8, Height: 1}
	img := image.NewPaletted(image.Rect(10, 20, 18, 21), monochrome)
	img.SetColorIndex(11, 20, 1)

	buf, err := packFramebuffer(img, geo)
	if err != nil {
		t.Fatalf("packFramebuffer failed: %v", err)
	}
	if len(buf) != 1 || buf[0] != 0x40 {
		t.Errorf("Expected [40], got % x", buf)
	}
}

func TestPackFramebufferThresholdsGray(t *testing.T) {
	geo := Geometry{Width: 8, Height: 1}
	img := image.NewGray(image.Rect(0, 0, 8, 1))
	img.SetGray(0, 0, color.Gray{Y: 200})
	img.SetGray(1, 0, color.Gray{Y: 128})
	img.SetGray(2, 0, color.Gray{Y: 127})
	img.SetGray(3, 0, color.Gray{Y: 10})

	buf, err := packFramebuffer(img, geo)
	if err != nil {
		t.Fatalf("packFramebuffer failed: %v", err)
	}
	if buf[0] != 0xC0 {
		t.Errorf("Expected c0, got %02x", buf[0])
	}
}

func TestPackFramebufferSizeMismatch(t *testing.T) {
	geo := defaultGeometry()
	img := image.NewPaletted(image.Rect(0, 0, 800, 480), monochrome)

	_, err := packFramebuffer(img, geo)
	if !errors.Is(err, errSizeMismatch) {
		t.Errorf("Expected errSizeMismatch, got %v", err)
	}
}

func TestPackRenderedCanvas(t *testing.T) {
	fs := newTestFonts(t)
	geo := defaultGeometry()

	for _, lines := range [][2]string{{"", ""}, {"Amazing Grace", ""}, {"Abide With Me", "Fast Falls the Eventide"}} {
		canvas, err := renderLines(fs, geo, lines[0], lines[1])
		if err != nil {
			t.Fatalf("renderLines failed: %v", err)
		}
		buf, err := packFramebuffer(canvas, geo)
		if err != nil {
			t.Fatalf("packFramebuffer failed: %v", err)
		}
		if len(buf) != 81600 {
			t.Errorf("%q: expected 81600 bytes, got %d", lines, len(buf))
		}

		data, err := renderPNG(fs, geo, lines[0], lines[1])
		if err != nil {
			t.Fatalf("renderPNG failed: %v", err)
		}
		fromPNG, err := packPNG(data, geo)
		if err != nil {
			t.Fatalf("packPNG failed: %v", err)
		}
		if !bytes.Equal(buf, fromPNG) {
			t.Errorf("%q: packing the stored PNG differs from packing the canvas", lines)
		}
	}
}

func TestPackPNGRejectsGarbage(t *testing.T) {
	if _, err := packPNG([]byte("nope"), defaultGeometry()); err == nil {
		t.Error("Expected decode error")
	}
}
