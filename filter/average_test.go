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

package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/filter"
	"github.com/mrrp-sdr/mrrp/generator"
)

func TestMovingAverageConstantInput(t *testing.T) {
	m := filter.NewMovingAverage(4)
	for i := 0; i < 8; i++ {
		out := m.Process(2)
		if i >= 3 {
			assert.Equal(t, complex64(2), out)
		}
	}
}

func TestAverageDecimateReaderRate(t *testing.T) {
	src := generator.Constant(complex(1, 0), 48000)
	r, err := filter.AverageDecimateReader(src, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint32(12000), r.SampleRate())

	buf := make(mrrp.SamplesC64, 16)
	n, err := mrrp.ReadFull(r, buf)
	assert.NoError(t, err)
	assert.Equal(t, 16, n)
	for _, s := range buf {
		assert.InDelta(t, 1.0, real(s), 1e-6)
		assert.InDelta(t, 0.0, imag(s), 1e-6)
	}
}
