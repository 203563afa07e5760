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

package adsb

// Decoder buffers a power-detected sample stream and repeatedly hands it
// to a Demodulator, returning every complete Frame found so far and
// compacting the samples a completed search has already consumed. Feed
// it IQ chunks as they arrive from a tuner; nothing here blocks.
type Decoder struct {
	demod *Demodulator
	power []float32
}

// NewDecoder builds a Decoder at the given quality level and per-frame
// error budget.
func NewDecoder(quality Quality, maxErrors int) *Decoder {
	return &Decoder{demod: NewDemodulator(quality, maxErrors)}
}

// Process appends iq (already power-detected: magnitude squared) to the
// decoder's buffer and returns every Frame it can now complete.
func (d *Decoder) Process(power []float32) []Frame {
	d.power = append(d.power, power...)

	var frames []Frame
	cursor := &Cursor{Samples: d.power, Position: 0}
	for {
		frame, ok := d.demod.Next(cursor)
		if !ok {
			break
		}
		frames = append(frames, frame)
	}

	// Drop everything the search has ruled out; find_preamble only ever
	// looks forward, so the prefix before cursor.Position can never be
	// revisited.
	if cursor.Position > 0 {
		d.power = append(d.power[:0], d.power[cursor.Position:]...)
	}

	return frames
}

// ProcessIQ is a convenience wrapper over Process for callers holding
// baseband IQ samples rather than already-detected power: it computes
// magnitude-squared per sample the same way the original stream's power
// detector does, ahead of preamble search.
func (d *Decoder) ProcessIQ(iq []complex64) []Frame {
	power := make([]float32, len(iq))
	for i, s := range iq {
		re, im := real(s), imag(s)
		power[i] = re*re + im*im
	}
	return d.Process(power)
}

// vim: foldmethod=marker
