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

func TestChainedReadsAThenB(t *testing.T) {
	a, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 4)
	require.NoError(t, err)
	b, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 4)
	require.NoError(t, err)

	chained, err := stream.Chained(a, b)
	require.NoError(t, err)

	lr, ok := chained.(mrrp.LengthReader)
	require.True(t, ok)
	total, ok := lr.StreamLength().Finite()
	require.True(t, ok)
	assert.Equal(t, 8, total)

	out := make(mrrp.SamplesC64, 9)
	n, err := mrrp.ReadFull(chained, out)
	assert.Equal(t, 8, n)
	assert.ErrorIs(t, err, mrrp.ErrUnexpectedEOF)
}

// A failure on the B leg is identified in a ChainedError after A has been
// fully drained.
func TestChainedTagsFailingLeg(t *testing.T) {
	a, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 2)
	require.NoError(t, err)
	b := &erroringReader{format: mrrp.SampleFormatC64, rate: 1000}

	chained, err := stream.Chained(a, b)
	require.NoError(t, err)

	out := make(mrrp.SamplesC64, 10)
	_, err = mrrp.ReadFull(chained, out)
	require.Error(t, err)

	var cerr *stream.ChainedError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.Leg)
}

func TestChainedRejectsFormatMismatch(t *testing.T) {
	a := newConstantReader(mrrp.SampleFormatC64, 1000)
	b := newConstantReader(mrrp.SampleFormatF32, 1000)
	_, err := stream.Chained(a, b)
	assert.Equal(t, mrrp.ErrSampleFormatMismatch, err)
}

type erroringReader struct {
	format mrrp.SampleFormat
	rate   uint32
}

func (er *erroringReader) SampleFormat() mrrp.SampleFormat { return er.format }
func (er *erroringReader) SampleRate() uint32              { return er.rate }
func (er *erroringReader) Read(s mrrp.Samples) (int, error) {
	return 0, assert.AnError
}

// vim: foldmethod=marker
