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

// ChainedError wraps an error returned by one of the two legs passed to
// Chained, identifying which leg (0 for A, 1 for B) produced it.
type ChainedError struct {
	Leg int
	Err error
}

func (ce *ChainedError) Error() string {
	return fmt.Sprintf("stream.Chained: leg %d: %s", ce.Leg, ce.Err)
}

func (ce *ChainedError) Unwrap() error {
	return ce.Err
}

type chainedReader struct {
	a, b         mrrp.Reader
	onB          bool
	err          error
	sampleFormat mrrp.SampleFormat
	sampleRate   uint32
}

// Chained reads a until it reports io.EOF, then reads b until it too
// reports io.EOF. a and b must share a SampleFormat and SampleRate.
//
// Any non-EOF error is wrapped in a ChainedError naming which leg (0 for a,
// 1 for b) produced it.
func Chained(a, b mrrp.Reader) (mrrp.Reader, error) {
	if a.SampleFormat() != b.SampleFormat() {
		return nil, mrrp.ErrSampleFormatMismatch
	}
	if a.SampleRate() != b.SampleRate() {
		return nil, fmt.Errorf("stream.Chained: sample rate mismatch")
	}
	return &chainedReader{
		a:            a,
		b:            b,
		sampleFormat: a.SampleFormat(),
		sampleRate:   a.SampleRate(),
	}, nil
}

func (cr *chainedReader) SampleFormat() mrrp.SampleFormat {
	return cr.sampleFormat
}

func (cr *chainedReader) SampleRate() uint32 {
	return cr.sampleRate
}

func (cr *chainedReader) StreamLength() mrrp.Length {
	al, aok := lengthOf(cr.a)
	bl, bok := lengthOf(cr.b)
	if !aok || !bok {
		return mrrp.LengthUnknown
	}
	if aok && cr.a.(mrrp.LengthReader).StreamLength().Infinite() {
		return mrrp.LengthInfinite
	}
	if bok && cr.b.(mrrp.LengthReader).StreamLength().Infinite() {
		return mrrp.LengthInfinite
	}
	return mrrp.LengthFinite(al + bl)
}

func lengthOf(r mrrp.Reader) (int, bool) {
	lr, ok := r.(mrrp.LengthReader)
	if !ok {
		return 0, false
	}
	n, ok := lr.StreamLength().Finite()
	return n, ok
}

func (cr *chainedReader) Read(s mrrp.Samples) (int, error) {
	if cr.err != nil {
		return 0, cr.err
	}

	if !cr.onB {
		n, err := cr.a.Read(s)
		if err == io.EOF {
			cr.onB = true
			if n > 0 {
				return n, nil
			}
			return cr.Read(s)
		}
		if err != nil {
			cr.err = &ChainedError{Leg: 0, Err: err}
			return n, cr.err
		}
		return n, nil
	}

	n, err := cr.b.Read(s)
	if err == io.EOF {
		cr.err = io.EOF
		return n, io.EOF
	}
	if err != nil {
		cr.err = &ChainedError{Leg: 1, Err: err}
		return n, cr.err
	}
	return n, nil
}

// vim: foldmethod=marker
