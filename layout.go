package main

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// placement is one line of text positioned on the canvas. Dot is the
// baseline origin handed to font.Drawer.
type placement struct {
	Text    string
	Font    *fittedFont
	CenterY float64
	Dot     fixed.Point26_6
}

// layoutLines fits each line to its band and centers it horizontally and
// vertically. A nil Font means the band stays blank.
func layoutLines(fs *fontSource, geo Geometry, line1, line2 string) ([2]placement, error) {
	var out [2]placement
	top, bottom := geo.BandCenters()

	for i, line := range [2]struct {
		text    string
		centerY float64
	}{{line1, top}, {line2, bottom}} {
		fitted, err := fitFont(fs, line.text, geo.MaxLineWidth(), geo.MaxFontSize())
		if err != nil {
			return out, err
		}
		out[i] = placement{Text: line.text, Font: fitted, CenterY: line.centerY}
		if fitted == nil {
			continue
		}
		out[i].Dot = textOrigin(fitted, line.text, geo.Width, line.centerY)
	}
	return out, nil
}

// textOrigin places the top of the em box size/2 above centerY and
// converts that to a baseline position using the face ascent.
func textOrigin(f *fittedFont, text string, canvasWidth int, centerY float64) fixed.Point26_6 {
	width := font.MeasureString(f.Face, text)
	x := (float64(canvasWidth) - fromFixed(width)) / 2
	top := centerY - float64(f.Size)/2
	baseline := top + fromFixed(f.Face.Metrics().Ascent)
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
