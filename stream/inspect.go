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

type inspectReader struct {
	r  mrrp.Reader
	fn func(n int, s mrrp.Samples, err error)
}

// Inspect is a debug tap: every Read is passed straight through to r
// unmodified, but fn is also called with the samples just read (if any)
// and the error r returned, before Inspect returns. fn must not retain s
// past the call, since it aliases the caller's buffer.
func Inspect(r mrrp.Reader, fn func(n int, s mrrp.Samples, err error)) (mrrp.Reader, error) {
	return &inspectReader{r: r, fn: fn}, nil
}

func (ir *inspectReader) SampleFormat() mrrp.SampleFormat {
	return ir.r.SampleFormat()
}

func (ir *inspectReader) SampleRate() uint32 {
	return ir.r.SampleRate()
}

func (ir *inspectReader) StreamLength() mrrp.Length {
	if lr, ok := ir.r.(mrrp.LengthReader); ok {
		return lr.StreamLength()
	}
	return mrrp.LengthUnknown
}

func (ir *inspectReader) Read(s mrrp.Samples) (int, error) {
	n, err := ir.r.Read(s)
	if ir.fn != nil {
		if n > 0 {
			ir.fn(n, s.Slice(0, n), err)
		} else {
			ir.fn(n, s.Slice(0, 0), err)
		}
	}
	return n, err
}

// vim: foldmethod=marker
