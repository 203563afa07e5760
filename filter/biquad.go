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

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// BiquadCoefficients holds the five standard direct-form-II-transposed
// biquad coefficients, normalized so a0 == 1.
type BiquadCoefficients struct {
	B0, B1, B2 float32
	A1, A2     float32
}

// LowPassButterworth constructs Butterworth-Q low-pass biquad coefficients
// for the given sample rate and cutoff frequency.
func LowPassButterworth(sampleRate uint32, cutoff float64) BiquadCoefficients {
	omega := 2 * math.Pi * cutoff / float64(sampleRate)
	sinw, cosw := math.Sin(omega), math.Cos(omega)
	alpha := sinw / (2 * 0.70710678) // Q = 1/sqrt(2)

	b0 := (1 - cosw) / 2
	b1 := 1 - cosw
	b2 := (1 - cosw) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw
	a2 := 1 - alpha

	return BiquadCoefficients{
		B0: float32(b0 / a0),
		B1: float32(b1 / a0),
		B2: float32(b2 / a0),
		A1: float32(a1 / a0),
		A2: float32(a2 / a0),
	}
}

type biquadState struct {
	z1, z2 float32
}

func (s *biquadState) process(c BiquadCoefficients, in float32) float32 {
	out := in*c.B0 + s.z1
	s.z1 = in*c.B1 + s.z2 - c.A1*out
	s.z2 = in*c.B2 - c.A2*out
	return out
}

// Biquad is a direct-form-II-transposed IIR filter. Complex samples are
// filtered by applying the same real biquad independently to the real and
// imaginary components.
type Biquad struct {
	coefficients BiquadCoefficients
	re, im       biquadState
}

// NewBiquad creates a Biquad from the given coefficients.
func NewBiquad(c BiquadCoefficients) *Biquad {
	return &Biquad{coefficients: c}
}

// Process filters a single complex sample.
func (b *Biquad) Process(s complex64) complex64 {
	return complex(
		b.re.process(b.coefficients, real(s)),
		b.im.process(b.coefficients, imag(s)),
	)
}

// ProcessReal filters a single real sample, using only the real delay line.
func (b *Biquad) ProcessReal(s float32) float32 {
	return b.re.process(b.coefficients, s)
}

// Reader wraps an mrrp.Reader of SamplesC64, applying this Biquad to every
// sample in the stream.
func (b *Biquad) Reader(in mrrp.Reader) (mrrp.Reader, error) {
	return stream.ReadTransformer(in, stream.ReadTransformerConfig{
		InputBufferLength:  32 * 1024,
		OutputBufferLength: 32 * 1024,
		OutputSampleFormat: mrrp.SampleFormatC64,
		OutputSampleRate:   in.SampleRate(),
		Proc: func(inI mrrp.Samples, outI mrrp.Samples) (int, error) {
			in, ok := inI.(mrrp.SamplesC64)
			if !ok {
				return 0, mrrp.ErrSampleFormatMismatch
			}
			out := outI.(mrrp.SamplesC64)
			for i, s := range in {
				out[i] = b.Process(s)
			}
			return len(in), nil
		},
	})
}

// vim: foldmethod=marker
