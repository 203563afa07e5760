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

func scaleC64(k complex64) stream.MapFunc {
	return func(in mrrp.Samples) (mrrp.Samples, error) {
		inC := in.(mrrp.SamplesC64)
		out := make(mrrp.SamplesC64, len(inC))
		for i, s := range inC {
			out[i] = s * k
		}
		return out, nil
	}
}

// Rate, length, and format pass through Map unchanged (format is whatever
// the caller configured as the output format).
func TestMapPassesThroughRateAndLength(t *testing.T) {
	r, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 48000), 10)
	require.NoError(t, err)

	mapped, err := stream.Map(r, mrrp.SampleFormatC64, scaleC64(2), 0)
	require.NoError(t, err)

	assert.Equal(t, uint32(48000), mapped.SampleRate())
	assert.Equal(t, mrrp.SampleFormatC64, mapped.SampleFormat())
}

// map(f) composed with map(g) behaves the same as map(f . g) applied once:
// scaling by 2 then by 3 is the same as scaling by 6.
func TestMapComposition(t *testing.T) {
	src, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 16)
	require.NoError(t, err)
	stage1, err := stream.Map(src, mrrp.SampleFormatC64, scaleC64(2), 0)
	require.NoError(t, err)
	stage2, err := stream.Map(stage1, mrrp.SampleFormatC64, scaleC64(3), 0)
	require.NoError(t, err)

	src2, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 16)
	require.NoError(t, err)
	combined, err := stream.Map(src2, mrrp.SampleFormatC64, scaleC64(6), 0)
	require.NoError(t, err)

	a := make(mrrp.SamplesC64, 16)
	b := make(mrrp.SamplesC64, 16)
	_, err = mrrp.ReadFull(stage2, a)
	require.NoError(t, err)
	_, err = mrrp.ReadFull(combined, b)
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, real(b[i]), real(a[i]), 1e-4)
		assert.InDelta(t, imag(b[i]), imag(a[i]), 1e-4)
	}
}

// vim: foldmethod=marker
