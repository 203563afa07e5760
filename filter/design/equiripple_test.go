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

package design_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrrp-sdr/mrrp/filter/design"
)

func TestEquirippleFFTConvergesAndIsSymmetric(t *testing.T) {
	spec := design.Normalize(design.NewLowpass(1000, 200, 0.05, 0.05), 8000)

	result, err := design.EquirippleFFT(spec, 31, 0, 50, 1e-12)
	require.NoError(t, err)
	require.Len(t, result.Coefficients, 31)
	assert.Greater(t, result.Iterations, 0)

	n := (len(result.Coefficients) - 1) / 2
	for i := 0; i <= n; i++ {
		assert.InDelta(t, result.Coefficients[n-i], result.Coefficients[n+i], 1e-4,
			"an even-symmetric lowpass should have a symmetric impulse response")
	}
}

func TestEquirippleFFTPassesDCAndAttenuatesStopband(t *testing.T) {
	spec := design.Normalize(design.NewLowpass(1000, 400, 0.05, 0.05), 8000)

	result, err := design.EquirippleFFT(spec, 41, 0, 50, 1e-12)
	require.NoError(t, err)

	var dcGain float64
	for _, c := range result.Coefficients {
		dcGain += float64(c)
	}
	assert.InDelta(t, 1, dcGain, 0.2, "DC gain of a lowpass should be near unity")
}
