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

package bandplan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrrp-sdr/mrrp/bandplan"
)

func TestInternationalParsesBuiltinRegistry(t *testing.T) {
	bp, err := bandplan.International()
	require.NoError(t, err)

	band, ok := bp.Get(7_023_567)
	require.True(t, ok)
	assert.EqualValues(t, 7_000_000, band.Start)
	assert.EqualValues(t, 7_080_000, band.End)
	assert.Equal(t, "LSB", band.Mode)
	assert.Equal(t, "40m Ham Band", band.Name)
}

func TestGetReturnsFalseOutsideAnyBand(t *testing.T) {
	bp, err := bandplan.International()
	require.NoError(t, err)

	_, ok := bp.Get(999_999_999_999)
	assert.False(t, ok)
}

func TestRangeReturnsOverlappingBandsInOrder(t *testing.T) {
	bp, err := bandplan.International()
	require.NoError(t, err)

	bands := bp.Range(6_900_000, 7_100_000)
	require.NotEmpty(t, bands)
	for i := 1; i < len(bands); i++ {
		assert.LessOrEqual(t, bands[i-1].Start, bands[i].Start)
	}

	var names []string
	for _, b := range bands {
		names = append(names, b.Name)
	}
	assert.Contains(t, strings.Join(names, ","), "40m Ham Band")
}

func TestFromReaderSkipsCommentsAndUnnamedRows(t *testing.T) {
	csv := "# a comment\n100,200,CW,10,#ffffff,\n300,400,USB,5,#000000,Named Band\n"
	bp, err := bandplan.FromReader(strings.NewReader(csv))
	require.NoError(t, err)

	_, ok := bp.Get(150)
	assert.False(t, ok, "unnamed row should be skipped")

	band, ok := bp.Get(350)
	require.True(t, ok)
	assert.Equal(t, "Named Band", band.Name)
}

func TestFromReaderRejectsMalformedFrequency(t *testing.T) {
	_, err := bandplan.FromReader(strings.NewReader("not-a-number,200,CW,10,#fff,Bad Row\n"))
	assert.Error(t, err)
}

// vim: foldmethod=marker
