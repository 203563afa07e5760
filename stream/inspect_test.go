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

// Inspect passes every sample through unmodified while still observing it.
func TestInspectIsPassThrough(t *testing.T) {
	src, err := stream.Limited(newConstantReader(mrrp.SampleFormatC64, 1000), 20)
	require.NoError(t, err)

	seen := 0
	inspected, err := stream.Inspect(src, func(n int, s mrrp.Samples, _ error) {
		seen += n
	})
	require.NoError(t, err)

	out := make(mrrp.SamplesC64, 20)
	n, err := mrrp.ReadFull(inspected, out)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, 20, seen)

	for _, s := range out {
		assert.Equal(t, complex64(complex(1, -1)), s)
	}
}

// vim: foldmethod=marker
