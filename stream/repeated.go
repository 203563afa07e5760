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
	"fmt"
	"io"

	mrrp "github.com/mrrp-sdr/mrrp"
)

var (
	// ErrRepeatedInfiniteUpstream is returned by Repeated when its upstream
	// Reader declares itself infinite (a live capture, a generator with no
	// natural end). Repeating a stream that never ends on its own has no
	// sensible semantics, since the first pass would never finish buffering.
	ErrRepeatedInfiniteUpstream = fmt.Errorf("stream.Repeated: upstream never terminates, cannot prefetch")
)

type repeatedReader struct {
	format mrrp.SampleFormat
	rate   uint32
	buf    mrrp.Samples
	pos    int
}

// Repeated eagerly reads r to EOF, buffering every sample produced, then
// serves that buffer back cyclically forever: once pos reaches the end of
// the buffer it wraps back to the start instead of returning io.EOF.
//
// If r implements mrrp.LengthReader and reports itself infinite, Repeated
// fails outright rather than attempting (and never finishing) the prefetch.
func Repeated(r mrrp.Reader) (mrrp.Reader, error) {
	if lr, ok := r.(mrrp.LengthReader); ok && lr.StreamLength().Infinite() {
		return nil, ErrRepeatedInfiniteUpstream
	}

	buf, err := mrrp.ReadToEnd(r)
	if err != nil {
		return nil, err
	}
	if buf.Length() == 0 {
		return nil, fmt.Errorf("stream.Repeated: upstream produced no samples")
	}

	return &repeatedReader{
		format: r.SampleFormat(),
		rate:   r.SampleRate(),
		buf:    buf,
	}, nil
}

func (rr *repeatedReader) SampleFormat() mrrp.SampleFormat {
	return rr.format
}

func (rr *repeatedReader) SampleRate() uint32 {
	return rr.rate
}

func (rr *repeatedReader) StreamLength() mrrp.Length {
	return mrrp.LengthInfinite
}

func (rr *repeatedReader) Read(s mrrp.Samples) (int, error) {
	total := rr.buf.Length()
	want := s.Length()
	written := 0

	for written < want {
		if rr.pos >= total {
			rr.pos = 0
		}
		n := want - written
		if avail := total - rr.pos; n > avail {
			n = avail
		}
		m, err := mrrp.CopySamples(s.Slice(written, written+n), rr.buf.Slice(rr.pos, rr.pos+n))
		written += m
		rr.pos += m
		if err != nil {
			return written, err
		}
		if m == 0 {
			return written, io.ErrNoProgress
		}
	}

	return written, nil
}

// vim: foldmethod=marker
