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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// countingReader emits 0, 1, 2, ... as real-valued samples (imaginary part
// zero) so a repeated cycle can be checked by its position modulo length.
type countingReader struct {
	format mrrp.SampleFormat
	rate   uint32
	n      int
}

func (cr *countingReader) SampleFormat() mrrp.SampleFormat { return cr.format }
func (cr *countingReader) SampleRate() uint32              { return cr.rate }

func (cr *countingReader) Read(s mrrp.Samples) (int, error) {
	c64 := s.(mrrp.SamplesC64)
	for i := range c64 {
		c64[i] = complex(float32(cr.n), 0)
		cr.n++
	}
	return len(c64), nil
}

// Repeated serves the prefetched buffer again from the start once exhausted.
func TestRepeatedWrapsAround(t *testing.T) {
	src, err := stream.Limited(&countingReader{format: mrrp.SampleFormatC64, rate: 8000}, 5)
	require.NoError(t, err)

	repeated, err := stream.Repeated(src)
	require.NoError(t, err)
	assert.True(t, repeated.(mrrp.LengthReader).StreamLength().Infinite())

	out := make(mrrp.SamplesC64, 12)
	n, err := repeated.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	expect := []float32{0, 1, 2, 3, 4, 0, 1, 2, 3, 4, 0, 1}
	for i, want := range expect {
		assert.Equal(t, complex(want, 0), out[i])
	}
}

// infiniteReader wraps a Reader and advertises an infinite StreamLength,
// the way a live capture device would.
type infiniteReader struct {
	mrrp.Reader
}

func (infiniteReader) StreamLength() mrrp.Length { return mrrp.LengthInfinite }

// Repeated rejects an upstream that declares itself infinite outright,
// since the prefetch would never complete.
func TestRepeatedRejectsInfiniteUpstream(t *testing.T) {
	src := infiniteReader{newConstantReader(mrrp.SampleFormatC64, 1000)}
	_, err := stream.Repeated(src)
	assert.ErrorIs(t, err, stream.ErrRepeatedInfiniteUpstream)
}

// vim: foldmethod=marker
