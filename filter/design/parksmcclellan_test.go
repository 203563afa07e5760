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

func TestParksMcClellanSymmetricImpulseResponse(t *testing.T) {
	spec := design.Normalize(design.NewLowpass(1000, 300, 0.05, 0.05), 8000)

	result, err := design.ParksMcClellan(spec, 21, design.NewParksMcClellanConfig())
	require.NoError(t, err)
	require.Len(t, result.Coefficients, 21)

	n := (len(result.Coefficients) - 1) / 2
	for i := 0; i <= n; i++ {
		assert.InDelta(t, result.Coefficients[n-i], result.Coefficients[n+i], 1e-6)
	}
}

func TestParksMcClellanRejectsAsymmetricSpec(t *testing.T) {
	spec := design.Normalize(highpassOddSymmetry{}, 1)
	_, err := design.ParksMcClellan(spec, 15, design.NewParksMcClellanConfig())
	assert.Error(t, err)
}

type highpassOddSymmetry struct{}

func (highpassOddSymmetry) Bands() []design.Band {
	return []design.Band{{Start: 0, End: 0.2}, {Start: 0.3, End: 0.5}}
}

func (highpassOddSymmetry) ResponseAt(f float64) (design.FrequencyResponseAt, bool) {
	if f <= 0.2 {
		return design.FrequencyResponseAt{Amplitude: 0, Tolerance: 0.05}, true
	}
	if f >= 0.3 {
		return design.FrequencyResponseAt{Amplitude: 1, Tolerance: 0.05}, true
	}
	return design.FrequencyResponseAt{}, false
}

func (highpassOddSymmetry) Symmetry() design.Symmetry {
	return design.SymmetryNegative
}
