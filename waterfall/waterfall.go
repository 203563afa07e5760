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

// Package waterfall renders a scrolling spectrogram from a stream of FFT
// results: an in-progress line accumulates power across however many
// spectra arrive before the next Scroll, completed lines feed a
// scroll-buffered history, and Render resamples that history against the
// current view band and terminal size, caching the result until either
// changes.
package waterfall

import (
	"github.com/mrrp-sdr/mrrp/fft"
)

// Waterfall accumulates FFT power spectra into a scrolling history and
// renders it as colored terminal text.
type Waterfall struct {
	history int

	inputBand     FrequencyBand
	downsampling  Downsampling
	normalization PowerNormalization
	colorMap      ColorMap
	drawMode      DrawMode

	acc   *newLine
	lines []*Line // lines[0] is the most recent

	minZ, maxZ float64
	cache      renderCache
}

// New creates a Waterfall over spectra covering inputBand, with a default
// history of 10 lines, DrawHalfBlockHorizontal draw mode, and
// DefaultPowerNormalization/DefaultColorMap.
func New(inputBand FrequencyBand) *Waterfall {
	return &Waterfall{
		history:       10,
		inputBand:     inputBand,
		downsampling:  DownsampleAverage,
		normalization: DefaultPowerNormalization,
		colorMap:      DefaultColorMap(),
		drawMode:      DrawHalfBlockHorizontal,
		minZ:          -80,
		maxZ:          -70,
	}
}

// SetDownsampling changes how multiple FFT bins are combined into one
// rendered column.
func (w *Waterfall) SetDownsampling(d Downsampling) { w.downsampling = d }

// SetDrawMode changes how logical pixels are packed into terminal cells.
func (w *Waterfall) SetDrawMode(m DrawMode) { w.drawMode = m }

// SetPowerNormalization overrides how accumulated power becomes dBFS.
func (w *Waterfall) SetPowerNormalization(p PowerNormalization) { w.normalization = p }

// SetColorMap overrides the dBFS-to-color mapping.
func (w *Waterfall) SetColorMap(c ColorMap) { w.colorMap = c }

// SetHistory changes how many completed lines are retained.
func (w *Waterfall) SetHistory(n int) {
	if n < 1 {
		n = 1
	}
	w.history = n
	if len(w.lines) > n {
		w.lines = w.lines[:n]
	}
}

// Push accumulates one FFT result into the in-progress line, starting a
// new one sized to len(result.Frequency) if none is open.
func (w *Waterfall) Push(result fft.FrequencySlice) error {
	if w.acc == nil {
		w.acc = newAccumulator(len(result.Frequency), w.inputBand)
	}
	return w.acc.push(result.Frequency)
}

// Scroll closes the in-progress line (if it has any samples) and pushes it
// to the front of history, evicting the oldest line beyond the configured
// history depth, and invalidating the cached rows that line displaced.
func (w *Waterfall) Scroll() {
	acc := w.acc
	w.acc = nil
	if acc == nil {
		return
	}
	line := acc.finish(w.normalization)
	if line == nil {
		return
	}

	w.lines = append([]*Line{line}, w.lines...)
	if len(w.lines) > w.history {
		w.lines = w.lines[:w.history]
	}
	w.cache.scroll(w.history)

	for _, z := range line.Samples {
		v := float64(z)
		if v < w.minZ {
			w.minZ = v
		}
		if v > w.maxZ {
			w.maxZ = v
		}
	}
}

// getLine returns the i'th most recent completed line (0 = newest).
func (w *Waterfall) getLine(i int) (*Line, bool) {
	if i < 0 || i >= len(w.lines) {
		return nil, false
	}
	return w.lines[i], true
}

// sampleSpectrum resamples line against the view band, returning the
// downsampled dBFS value for logical column x of width logicalWidth.
func (w *Waterfall) sampleSpectrum(x, logicalWidth int, viewBand FrequencyBand, line *Line) (float32, bool) {
	displayBinWidth := float64(viewBand.Bandwidth()) / float64(logicalWidth)
	lineStart := float64(line.FrequencyBand.Start)

	startFreq := float64(viewBand.Start) + float64(x)*displayBinWidth
	endFreq := float64(viewBand.Start) + float64(x+1)*displayBinWidth

	startIdx := clampInt(int((startFreq-lineStart)/line.BinWidth), 0, len(line.Samples))
	endIdx := clampInt(int(ceil((endFreq-lineStart)/line.BinWidth)), 0, len(line.Samples))

	if startIdx >= endIdx {
		return 0, false
	}
	return w.downsampling.Apply(line.Samples[startIdx:endIdx]), true
}

func ceil(v float64) float64 {
	i := int(v)
	if float64(i) < v {
		return float64(i + 1)
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws the waterfall into a (cols x rows)-cell terminal area,
// resampling history against viewBand. Rows beyond available history are
// left blank. Renders are cached per (viewBand, logical width) pair so
// repeated renders of an unscrolled waterfall (e.g. redrawing on a timer
// between incoming spectra) don't re-resample every row.
func (w *Waterfall) Render(viewBand FrequencyBand, cols, rows int) string {
	logicalWidth, logicalHeight := w.drawMode.canvasSize(cols, rows)
	w.cache.invalidateIfChanged(viewBand, logicalWidth)

	cv := newCanvas(w.drawMode, cols, rows)

	for y := 0; y < logicalHeight; y++ {
		line, ok := w.getLine(y)
		if !ok {
			continue
		}
		row := w.cache.getOrSample(y, logicalWidth, func(x int) (float32, bool) {
			return w.sampleSpectrum(x, logicalWidth, viewBand, line)
		})
		for x := 0; x < logicalWidth; x++ {
			if !row.cells[x].Valid {
				continue
			}
			normalized := unlerp(float64(row.cells[x].Value), w.minZ, w.maxZ)
			cv.plot(x, y, w.colorMap.Map(normalized))
		}
	}

	return cv.render()
}

// Colorbar renders a single-row gradient legend width cells wide, from the
// current min to max dBFS range, mainly useful for a UI to pin alongside
// the waterfall so the colormap has a reference scale.
func (w *Waterfall) Colorbar(width int) string {
	cv := newCanvas(DrawFullBlock, width, 1)
	for x := 0; x < width; x++ {
		normalized := float64(x) / float64(width-1)
		cv.plot(x, 0, w.colorMap.Map(normalized))
	}
	return cv.render()
}

// vim: foldmethod=marker
