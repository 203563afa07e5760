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
	"io"

	mrrp "github.com/mrrp-sdr/mrrp"
)

type limitedReader struct {
	r mrrp.Reader
	n int
}

// Limited passes through at most n samples from r, reporting io.EOF once n
// have been read regardless of how many r itself has left.
//
// This mirrors the root package's unexported limitedReader (used internally
// by mrrp.CopyN), made public and aware of mrrp.LengthReader so its
// StreamLength reports min(upstream, n).
func Limited(r mrrp.Reader, n int) (mrrp.Reader, error) {
	return &limitedReader{r: r, n: n}, nil
}

func (l *limitedReader) Read(s mrrp.Samples) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if s.Length() > l.n {
		s = s.Slice(0, l.n)
	}
	n, err := l.r.Read(s)
	l.n -= n
	if err == nil && l.n <= 0 {
		err = nil
	}
	return n, err
}

func (l *limitedReader) SampleFormat() mrrp.SampleFormat {
	return l.r.SampleFormat()
}

func (l *limitedReader) SampleRate() uint32 {
	return l.r.SampleRate()
}

func (l *limitedReader) StreamLength() mrrp.Length {
	remaining := l.n
	if lr, ok := l.r.(mrrp.LengthReader); ok {
		if upstream, ok := lr.StreamLength().Finite(); ok && upstream < remaining {
			remaining = upstream
		}
	}
	return mrrp.LengthFinite(remaining)
}

// vim: foldmethod=marker
