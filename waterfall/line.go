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
	"fmt"
	"math"
)

// PowerNormalization converts accumulated squared-magnitude power into a
// dBFS value, given how many spectra were averaged into it and the
// bandwidth each bin represents.
type PowerNormalization func(power float64, count int, bandwidth float64) float64

// DefaultPowerNormalization divides accumulated power by count*bandwidth
// before taking the log, producing power spectral density in dBFS/Hz. This
// resolves the accumulator's open question: dividing by bandwidth alone
// (power spectral density) rather than leaving it as raw power keeps the
// colormap's auto-scaled min/max stable as FFT size changes.
func DefaultPowerNormalization(power float64, count int, bandwidth float64) float64 {
	return 10 * math.Log10(power/(float64(count)*bandwidth))
}

// newLine accumulates squared-magnitude spectra for one row of the
// waterfall until Scroll promotes it into history.
type newLine struct {
	samples       []float32
	count         int
	frequencyBand FrequencyBand
	binWidth      float64
}

func newAccumulator(width int, band FrequencyBand) *newLine {
	return &newLine{
		samples:       make([]float32, width),
		frequencyBand: band,
		binWidth:      float64(band.Bandwidth()) / float64(width),
	}
}

func (l *newLine) push(spectrum []complex64) error {
	if len(spectrum) != len(l.samples) {
		return fmt.Errorf("waterfall: fft size changed mid-line: have %d, got %d", len(l.samples), len(spectrum))
	}
	for i, c := range spectrum {
		re, im := float32(real(c)), float32(imag(c))
		l.samples[i] += re*re + im*im
	}
	l.count++
	return nil
}

func (l *newLine) finish(normalize PowerNormalization) *Line {
	if l.count == 0 {
		return nil
	}
	out := make([]float32, len(l.samples))
	for i, z := range l.samples {
		out[i] = float32(normalize(float64(z), l.count, l.binWidth))
	}
	return &Line{
		Samples:       out,
		FrequencyBand: l.frequencyBand,
		BinWidth:      l.binWidth,
	}
}

// Line is one completed, dBFS-converted row of waterfall history.
type Line struct {
	Samples       []float32
	FrequencyBand FrequencyBand
	BinWidth      float64
}

// vim: foldmethod=marker
