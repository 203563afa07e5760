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

package dtmf

import (
	"github.com/mrrp-sdr/mrrp/filter"
)

// DecoderConfig configures a Decoder.
type DecoderConfig struct {
	// SampleRate is the real-valued audio stream's sample rate.
	SampleRate uint32

	// WindowLength is the number of samples each Goertzel detector
	// accumulates before reporting an energy, per filter.NewGoertzel; it
	// sets the decoder's frequency resolution and its symbol-detection
	// granularity.
	WindowLength int

	// Threshold is the minimum Goertzel magnitude (row and column both)
	// required to report a symbol.
	Threshold float64

	// MinSilenceWindows is how many consecutive below-threshold windows
	// must be seen before the same symbol can be reported again, so a
	// held tone isn't re-triggered on every window.
	MinSilenceWindows int
}

// Decoder runs eight Goertzel single-bin detectors (one per DTMF row and
// column frequency) over a sliding window of a real-valued audio stream,
// reporting the symbol whose row and column bins both exceed Threshold.
type Decoder struct {
	cfg DecoderConfig

	rowDetectors    [4]*filter.Goertzel
	columnDetectors [4]*filter.Goertzel

	windowPos     int
	silenceRun    int
	lastSymbol    Symbol
	lastHadSymbol bool
}

// NewDecoder builds a Decoder from cfg.
func NewDecoder(cfg DecoderConfig) *Decoder {
	d := &Decoder{cfg: cfg}
	for i, f := range Rows {
		d.rowDetectors[i] = filter.NewGoertzel(cfg.SampleRate, f, cfg.WindowLength)
	}
	for i, f := range Columns {
		d.columnDetectors[i] = filter.NewGoertzel(cfg.SampleRate, f, cfg.WindowLength)
	}
	return d
}

// Process feeds one real-valued audio sample into the detector bank,
// returning the decoded Symbol and true whenever a window boundary
// produces a fresh, debounced detection.
func (d *Decoder) Process(sample float32) (Symbol, bool) {
	s := float64(sample)
	for _, det := range d.rowDetectors {
		det.Process(s)
	}
	for _, det := range d.columnDetectors {
		det.Process(s)
	}

	d.windowPos++
	if d.windowPos < d.cfg.WindowLength {
		return 0, false
	}
	d.windowPos = 0

	rowIdx, rowMag := maxMagnitude(d.rowDetectors[:])
	colIdx, colMag := maxMagnitude(d.columnDetectors[:])

	if rowMag < d.cfg.Threshold || colMag < d.cfg.Threshold {
		d.silenceRun++
		if d.silenceRun >= d.cfg.MinSilenceWindows {
			d.lastHadSymbol = false
		}
		return 0, false
	}
	d.silenceRun = 0

	symbol := Symbol(symbolGrid[rowIdx][colIdx])
	if d.lastHadSymbol && symbol == d.lastSymbol {
		return 0, false
	}

	d.lastSymbol = symbol
	d.lastHadSymbol = true
	return symbol, true
}

func maxMagnitude(detectors []*filter.Goertzel) (index int, magnitude float64) {
	for i, det := range detectors {
		m := det.Magnitude()
		if i == 0 || m > magnitude {
			index = i
			magnitude = m
		}
	}
	return index, magnitude
}

// vim: foldmethod=marker
