// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2021
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

package stream

import (
	"math"
	"math/cmplx"

	"hz.tools/rf"
	mrrp "github.com/mrrp-sdr/mrrp"
)

// ShiftReader shifts the IQ samples read from r up by shift (down, for a
// negative shift), so a carrier at -shift Hz offset from DC in r is read
// through centered at DC.
//
// This is frequency translation realized as ScanInPlace: a time accumulator
// is walked forward one sample period per sample, and each freshly read
// sample is rotated in place by the phasor for that time.
func ShiftReader(r mrrp.Reader, shift rf.Hz) (mrrp.Reader, error) {
	switch r.SampleFormat() {
	case mrrp.SampleFormatC64:
		break
	default:
		return nil, mrrp.ErrSampleFormatUnknown
	}

	const tau = math.Pi * 2

	var (
		inc = 1 / float64(r.SampleRate())
		ts  = 0.0
	)

	return ScanInPlace(r, func(_ int, s mrrp.Samples) {
		c64 := s.(mrrp.SamplesC64)
		ts += inc
		if ts > tau {
			ts -= tau
		}
		c64[0] = c64[0] * complex64(cmplx.Exp(complex(0, tau*float64(shift)*ts)))
	})
}

// vim: foldmethod=marker
