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

// Package filter implements the streamwise signal-processing building
// blocks: a direct-form-I FIR, a direct-form-II-transposed biquad, a
// Goertzel single-bin detector, and decimating/averaging helpers. The FIR,
// biquad and moving average are exposed as mrrp.Reader wrappers carrying
// their own delay line, the same shape the teacher uses for
// stream.ReadTransformer-backed combinators; Goertzel has no Reader
// wrapper and is driven one sample at a time through Process.
package filter

import (
	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// FIR is a direct-form-I finite impulse response filter over complex
// samples. Coefficients are applied newest-sample-first: coefficient 0
// multiplies the current input sample, coefficient i multiplies the input
// from i samples ago.
type FIR struct {
	coefficients []complex64
	delay        []complex64
}

// NewFIR creates an FIR filter with the given coefficient vector. len(taps)
// must be greater than 1.
func NewFIR(taps []complex64) *FIR {
	coefficients := make([]complex64, len(taps))
	copy(coefficients, taps)
	return &FIR{coefficients: coefficients}
}

// Process filters a single sample, returning the filtered output.
func (f *FIR) Process(s complex64) complex64 {
	out := f.coefficients[0] * s

	for i, d := range f.delay {
		out += f.coefficients[i+1] * d
	}

	maxDelay := len(f.coefficients) - 1
	f.delay = append(f.delay, complex64(0))
	copy(f.delay[1:], f.delay)
	f.delay[0] = s
	if len(f.delay) > maxDelay {
		f.delay = f.delay[:maxDelay]
	}

	return out
}

// Reader wraps an mrrp.Reader of SamplesC64, applying this FIR filter to
// every sample in the stream.
func (f *FIR) Reader(in mrrp.Reader) (mrrp.Reader, error) {
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
				out[i] = f.Process(s)
			}
			return len(in), nil
		},
	})
}

// vim: foldmethod=marker
