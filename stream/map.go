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

package stream

import (
	mrrp "github.com/mrrp-sdr/mrrp"
)

// MapFunc transforms one sample vector read from an upstream Reader into
// an output vector of (possibly different) length and format. The returned
// Samples must have the same Length as n, the count actually read.
type MapFunc func(in mrrp.Samples) (mrrp.Samples, error)

type mapReader struct {
	r            mrrp.Reader
	f            MapFunc
	outFormat    mrrp.SampleFormat
	maxBufLen    int
	inBufferSize int
}

// Map wraps r so that every call to Read pulls a buffer of up to n samples
// (n being the caller's remaining capacity, capped by maxBufLen if
// maxBufLen > 0) from r, applies f, and copies the mapped result into the
// caller's buffer. Rate, StreamLength, and finiteness pass through from r
// unchanged; the sample format of the output is outFormat.
//
// Map never blocks on its own: it returns as soon as r.Read returns,
// whatever that result is.
func Map(r mrrp.Reader, outFormat mrrp.SampleFormat, f MapFunc, maxBufLen int) (mrrp.Reader, error) {
	return &mapReader{
		r:         r,
		f:         f,
		outFormat: outFormat,
		maxBufLen: maxBufLen,
	}, nil
}

func (mr *mapReader) SampleFormat() mrrp.SampleFormat {
	return mr.outFormat
}

func (mr *mapReader) SampleRate() uint32 {
	return mr.r.SampleRate()
}

func (mr *mapReader) StreamLength() mrrp.Length {
	if lr, ok := mr.r.(mrrp.LengthReader); ok {
		return lr.StreamLength()
	}
	return mrrp.LengthUnknown
}

func (mr *mapReader) Read(s mrrp.Samples) (int, error) {
	want := s.Length()
	if mr.maxBufLen > 0 && want > mr.maxBufLen {
		want = mr.maxBufLen
	}

	in, err := mrrp.MakeSamples(mr.r.SampleFormat(), want)
	if err != nil {
		return 0, err
	}

	n, rerr := mr.r.Read(in)
	if n == 0 {
		return 0, rerr
	}

	out, ferr := mr.f(in.Slice(0, n))
	if ferr != nil {
		return 0, ferr
	}

	written, cerr := mrrp.CopySamples(s, out)
	if cerr != nil {
		return written, cerr
	}

	return written, rerr
}

// vim: foldmethod=marker
