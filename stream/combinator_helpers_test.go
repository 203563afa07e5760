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

package stream_test

import (
	mrrp "github.com/mrrp-sdr/mrrp"
)

// constantReader produces an endless stream of complex(1, -1) samples at a
// fixed rate. It's used by the combinator tests below as a cheap, synchronous
// stand-in for a generator.Reader, since the combinators under test don't
// care about the waveform, just about length/error bookkeeping.
type constantReader struct {
	format mrrp.SampleFormat
	rate   uint32
}

func newConstantReader(format mrrp.SampleFormat, rate uint32) mrrp.Reader {
	return &constantReader{format: format, rate: rate}
}

func (cr *constantReader) SampleFormat() mrrp.SampleFormat {
	return cr.format
}

func (cr *constantReader) SampleRate() uint32 {
	return cr.rate
}

func (cr *constantReader) Read(s mrrp.Samples) (int, error) {
	switch samples := s.(type) {
	case mrrp.SamplesC64:
		for i := range samples {
			samples[i] = complex64(complex(1, -1))
		}
	case mrrp.SamplesF32:
		for i := range samples {
			samples[i] = 1
		}
	default:
		return 0, mrrp.ErrSampleFormatUnknown
	}
	return s.Length(), nil
}

// vim: foldmethod=marker
