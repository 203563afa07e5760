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

package filter

import (
	"math"
)

// Goertzel is a single-frequency energy detector: cheaper than a full FFT
// when only one or a handful of bins are of interest (DTMF, SSTV VIS/sync
// tones, and so on).
type Goertzel struct {
	coefficient float64
	cosOmega    float64
	sinOmega    float64

	d1, d2 float64
}

// NewGoertzel creates a Goertzel detector tuned to targetFrequency, given
// the stream's sampleRate and the detector's window length in samples
// (the resolution bandwidth is roughly sampleRate/windowLength).
func NewGoertzel(sampleRate uint32, targetFrequency float64, windowLength int) *Goertzel {
	k := math.Round(float64(windowLength) * targetFrequency / float64(sampleRate))
	omega := 2 * math.Pi * k / float64(windowLength)
	return &Goertzel{
		coefficient: 2 * math.Cos(omega),
		cosOmega:    math.Cos(omega),
		sinOmega:    math.Sin(omega),
	}
}

// Process feeds a single real sample into the detector's delay line.
func (g *Goertzel) Process(s float64) {
	d0 := s + g.coefficient*g.d1 - g.d2
	g.d2 = g.d1
	g.d1 = d0
}

// Energy returns the complex value whose magnitude is the energy present in
// the detector's narrow band over the samples seen since the last call, and
// resets the internal delay line for the next window.
func (g *Goertzel) Energy() complex128 {
	re := g.d1*g.cosOmega - g.d2
	im := g.d1 * g.sinOmega
	g.d1, g.d2 = 0, 0
	return complex(re, im)
}

// Magnitude returns |Energy()|.
func (g *Goertzel) Magnitude() float64 {
	e := g.Energy()
	return math.Hypot(real(e), imag(e))
}

// vim: foldmethod=marker
