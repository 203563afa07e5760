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

	mrrp "github.com/mrrp-sdr/mrrp"
)

// ScanFunc mutates one sample in place. It's handed the i'th freshly-read
// sample of a ScanInPlace buffer and is expected to overwrite it with the
// transformed value.
type ScanFunc func(i int, s mrrp.Samples)

type scanInPlaceReader struct {
	r mrrp.Reader
	f ScanFunc
}

// ScanInPlace wraps r so that every Read pulls directly into the caller's
// buffer, then walks the freshly filled prefix element-by-element applying
// f. Unlike Map, no intermediate buffer is allocated: f mutates samples
// that already live in the caller's memory.
//
// If f panics while processing element i, elements [0, i) have already been
// overwritten, the panic is recovered, and Read returns the samples read so
// far (length i) along with the panic value wrapped as an error; element i
// itself is treated as not present in the returned buffer.
func ScanInPlace(r mrrp.Reader, f ScanFunc) (mrrp.Reader, error) {
	return &scanInPlaceReader{r: r, f: f}, nil
}

func (sr *scanInPlaceReader) SampleFormat() mrrp.SampleFormat {
	return sr.r.SampleFormat()
}

func (sr *scanInPlaceReader) SampleRate() uint32 {
	return sr.r.SampleRate()
}

func (sr *scanInPlaceReader) StreamLength() mrrp.Length {
	if lr, ok := sr.r.(mrrp.LengthReader); ok {
		return lr.StreamLength()
	}
	return mrrp.LengthUnknown
}

func (sr *scanInPlaceReader) Read(s mrrp.Samples) (n int, err error) {
	n, err = sr.r.Read(s)
	if n == 0 {
		return n, err
	}

	filled := n
	defer func() {
		if r := recover(); r != nil {
			n = filled
			err = fmt.Errorf("stream.ScanInPlace: panic at sample %d: %v", filled, r)
		}
	}()

	for i := 0; i < n; i++ {
		filled = i
		sr.f(i, s.Slice(i, i+1))
	}
	filled = n

	return n, err
}

// vim: foldmethod=marker
