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
	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// AverageDecimateReader reduces the sample rate of in by factor, averaging
// each run of factor samples together instead of keeping every Nth one the
// way stream.DecimateReader does. It's a thin filter-flavored entry point
// over stream.AverageDecimateReader, kept here so callers building a filter
// chain don't need to reach into mrrp/stream directly for it.
func AverageDecimateReader(in mrrp.Reader, factor uint32) (mrrp.Reader, error) {
	return stream.AverageDecimateReader(in, factor)
}

// MovingAverage is a running-mean filter with a fixed window length: each
// output sample is the mean of the window most recent input samples. Unlike
// AverageDecimateReader it doesn't change the sample rate — every input
// sample produces one output sample.
type MovingAverage struct {
	window []complex64
	pos    int
	filled bool
	sum    complex64
}

// NewMovingAverage creates a MovingAverage with the given window length.
// length must be greater than zero.
func NewMovingAverage(length int) *MovingAverage {
	return &MovingAverage{window: make([]complex64, length)}
}

// Process folds s into the window and returns the new running mean.
func (m *MovingAverage) Process(s complex64) complex64 {
	m.sum -= m.window[m.pos]
	m.window[m.pos] = s
	m.sum += s
	m.pos++
	if m.pos == len(m.window) {
		m.pos = 0
		m.filled = true
	}

	n := len(m.window)
	if !m.filled {
		n = m.pos
		if n == 0 {
			n = len(m.window)
		}
	}
	return m.sum / complex64(complex(float32(n), 0))
}

// Reader wraps an mrrp.Reader of SamplesC64, applying this MovingAverage to
// every sample in the stream.
func (m *MovingAverage) Reader(in mrrp.Reader) (mrrp.Reader, error) {
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
				out[i] = m.Process(s)
			}
			return len(in), nil
		},
	})
}

// vim: foldmethod=marker
