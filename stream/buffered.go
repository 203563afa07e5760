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

// bufferedReader owns a single internal buffer with a read and write cursor,
// read_pos <= write_pos, in the spirit of the ring/slot bookkeeping in
// RingBuffer, but sized and refilled as one linear chunk rather than a set
// of fixed slots, since here there's exactly one producer (r) and exactly
// one consumer (whoever calls Read).
type bufferedReader struct {
	r        mrrp.Reader
	buf      mrrp.Samples
	readPos  int
	writePos int
	err      error
}

// Buffered wraps r with an internal buffer of size samples. If the caller's
// Read buffer is at least as large as size, the call is passed straight
// through to r. Otherwise Buffered pulls up to a full internal buffer's
// worth of samples from r in one upstream poll, then serves calls out of
// that buffer until it's exhausted.
func Buffered(r mrrp.Reader, size int) (mrrp.Reader, error) {
	buf, err := mrrp.MakeSamples(r.SampleFormat(), size)
	if err != nil {
		return nil, err
	}
	return &bufferedReader{r: r, buf: buf}, nil
}

func (br *bufferedReader) SampleFormat() mrrp.SampleFormat {
	return br.r.SampleFormat()
}

func (br *bufferedReader) SampleRate() uint32 {
	return br.r.SampleRate()
}

func (br *bufferedReader) StreamLength() mrrp.Length {
	if lr, ok := br.r.(mrrp.LengthReader); ok {
		return lr.StreamLength()
	}
	return mrrp.LengthUnknown
}

func (br *bufferedReader) Read(s mrrp.Samples) (int, error) {
	if s.Length() >= br.buf.Length() {
		return br.r.Read(s)
	}

	if br.readPos >= br.writePos {
		if br.err != nil {
			return 0, br.err
		}
		n, err := br.r.Read(br.buf)
		br.readPos = 0
		br.writePos = n
		if n == 0 {
			br.err = err
			return 0, err
		}
		br.err = err
	}

	n, err := mrrp.CopySamples(s, br.buf.Slice(br.readPos, br.writePos))
	br.readPos += n
	if err != nil {
		return n, err
	}
	return n, nil
}

// vim: foldmethod=marker
