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

	"github.com/mrrp-sdr/mrrp/filter"
)

func TestFIRIdentity(t *testing.T) {
	f := filter.NewFIR([]complex64{1, 0, 0})
	for i, in := range []complex64{1, 2, 3, 4} {
		out := f.Process(in)
		assert.Equal(t, in, out, "sample %d", i)
	}
}

func TestFIRMovingSum(t *testing.T) {
	f := filter.NewFIR([]complex64{1, 1, 1})

	assert.Equal(t, complex64(1), f.Process(1))
	assert.Equal(t, complex64(3), f.Process(2))
	assert.Equal(t, complex64(6), f.Process(3))
	assert.Equal(t, complex64(9), f.Process(4))
}
