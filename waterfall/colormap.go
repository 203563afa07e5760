// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package waterfall

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMap maps a normalized (0..1) power value to a terminal color,
// interpolating hue and lightness in HSL space the way a blue-to-red
// waterfall palette is built.
type ColorMap struct {
	HueLow, HueHigh             float64
	LightnessLow, LightnessHigh float64
	Saturation                  float64
}

// DefaultColorMap matches the waterfall's original hue sweep: a blue-ish
// low end at -120 degrees through to red at 0 degrees, darkening toward the
// quiet end of the range.
func DefaultColorMap() ColorMap {
	return ColorMap{
		HueLow:        -120,
		HueHigh:       0,
		LightnessLow:  0.1,
		LightnessHigh: 0.8,
		Saturation:    1.0,
	}
}

// Map converts a value already normalized against the current min/max dBFS
// range into a terminal color. Lightness is interpolated against the square
// of the normalized value, which compresses the quiet end of the range and
// keeps loud signals visually distinct.
func (c ColorMap) Map(normalized float64) lipgloss.Color {
	normalized = clamp(normalized, 0, 1)
	hue := math.Mod(lerp(normalized, c.HueLow, c.HueHigh), 360)
	if hue < 0 {
		hue += 360
	}
	lightness := lerp(normalized*normalized, c.LightnessLow, c.LightnessHigh)
	col := colorful.Hsl(hue, c.Saturation, lightness)
	return lipgloss.Color(col.Hex())
}

// vim: foldmethod=marker
