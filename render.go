package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"

	"golang.org/x/image/font"
)

// coverageThreshold is the anti-aliasing alpha at or above which a pixel is
// set. 128 of 255 is half coverage.
const coverageThreshold = 128

var monochrome = color.Palette{color.Black, color.White}

// renderLines draws up to two lines on a blank canvas. Index 0 is the
// background, index 1 is text.
func renderLines(fs *fontSource, geo Geometry, line1, line2 string) (*image.Paletted, error) {
	placements, err := layoutLines(fs, geo, line1, line2)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, geo.Width, geo.Height)
	coverage := image.NewAlpha(bounds)
	for _, p := range placements {
		if p.Font == nil {
			continue
		}
		d := &font.Drawer{
			Dst:  coverage,
			Src:  image.Opaque,
			Face: p.Font.Face,
			Dot:  p.Dot,
		}
		d.DrawString(p.Text)
		p.Font.Face.Close()
	}

	return binarize(coverage), nil
}

func binarize(coverage *image.Alpha) *image.Paletted {
	bounds := coverage.Bounds()
	canvas := image.NewPaletted(bounds, monochrome)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if coverage.AlphaAt(x, y).A >= coverageThreshold {
				canvas.SetColorIndex(x, y, 1)
			}
		}
	}
	return canvas
}

// renderPNG renders the lines and encodes them as a PNG.
func renderPNG(fs *fontSource, geo Geometry, line1, line2 string) ([]byte, error) {
	canvas, err := renderLines(fs, geo, line1, line2)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, canvas); err != nil {
		log.Println("Failed to encode png:", err)
		return nil, err
	}
	return buf.Bytes(), nil
}
