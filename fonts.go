package main

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontSource is a parsed font family that faces of any pixel size are cut from.
type fontSource struct {
	parsed *opentype.Font
}

// loadFont parses the font at path, or the embedded Go Regular when path is empty.
func loadFont(path string) (*fontSource, error) {
	data := goregular.TTF
	if path != "" {
		custom, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		data = custom
	}
	return parseFont(data)
}

func parseFont(data []byte) (*fontSource, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &fontSource{parsed: parsed}, nil
}

// face returns a face whose em is size pixels tall. At 72 DPI points and
// pixels coincide.
func (fs *fontSource) face(size int) (font.Face, error) {
	face, err := opentype.NewFace(fs.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %dpx: %w", size, err)
	}
	return face, nil
}

// measure returns the advance width of text at the given size.
func (fs *fontSource) measure(text string, size int) (fixed.Int26_6, error) {
	face, err := fs.face(size)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return font.MeasureString(face, text), nil
}

type fittedFont struct {
	Face font.Face
	Size int
}

// fitFont finds the largest integer size at which text is narrower than
// maxWidth, probing upwards from 1 until the text stops fitting or the size
// passes maxSize. It returns nil for empty text, and also when not even size 1
// fits.
func fitFont(fs *fontSource, text string, maxWidth int, maxSize float64) (*fittedFont, error) {
	if text == "" {
		return nil, nil
	}

	limit := fixed.I(maxWidth)
	size := 1
	width, err := fs.measure(text, size)
	if err != nil {
		return nil, err
	}
	for width < limit && float64(size) <= maxSize {
		size++
		if width, err = fs.measure(text, size); err != nil {
			return nil, err
		}
	}

	size--
	if size < 1 {
		return nil, nil
	}
	face, err := fs.face(size)
	if err != nil {
		return nil, err
	}
	return &fittedFont{Face: face, Size: size}, nil
}
