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

package waterfall_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrrp-sdr/mrrp/fft"
	"github.com/mrrp-sdr/mrrp/waterfall"
)

func spectrum(n int, value complex64) []complex64 {
	out := make([]complex64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestDownsamplingApply(t *testing.T) {
	samples := []float32{1, 2, 3, 4}
	assert.Equal(t, float32(10), waterfall.DownsampleSum.Apply(samples))
	assert.Equal(t, float32(2.5), waterfall.DownsampleAverage.Apply(samples))
	assert.Equal(t, float32(1), waterfall.DownsampleMin.Apply(samples))
	assert.Equal(t, float32(4), waterfall.DownsampleMax.Apply(samples))
	assert.Equal(t, float32(1), waterfall.DownsampleFirst.Apply(samples))
}

func TestWaterfallScrollRequiresSamples(t *testing.T) {
	band := waterfall.FrequencyBand{Start: -1_000_000, End: 1_000_000}
	w := waterfall.New(band)

	// Scroll with nothing pushed should be a no-op, not panic.
	w.Scroll()

	out := w.Render(band, 8, 3)
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
}

func TestWaterfallPushAndScrollProducesRenderableLine(t *testing.T) {
	band := waterfall.FrequencyBand{Start: -1_000_000, End: 1_000_000}
	w := waterfall.New(band)

	result := fft.NewFrequencySlice(spectrum(16, complex64(complex(1, 0))), 2_000_000, fft.NegativeFirst)
	require.NoError(t, w.Push(result))
	require.NoError(t, w.Push(result))
	w.Scroll()

	out := w.Render(band, 16, 4)
	assert.NotEmpty(t, out)
}

func TestWaterfallHistoryEviction(t *testing.T) {
	band := waterfall.FrequencyBand{Start: 0, End: 1_000_000}
	w := waterfall.New(band)
	w.SetHistory(2)

	result := fft.NewFrequencySlice(spectrum(8, complex64(complex(0.5, 0))), 1_000_000, fft.ZeroFirst)
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Push(result))
		w.Scroll()
	}

	// Rendering with more rows than history should not panic, and should
	// just leave the extra rows blank.
	out := w.Render(band, 8, 5)
	assert.Equal(t, 5, strings.Count(out, "\n")+1)
}

func TestWaterfallRejectsChangedFFTSize(t *testing.T) {
	band := waterfall.FrequencyBand{Start: 0, End: 1_000_000}
	w := waterfall.New(band)

	require.NoError(t, w.Push(fft.NewFrequencySlice(spectrum(8, 1), 1_000_000, fft.ZeroFirst)))
	err := w.Push(fft.NewFrequencySlice(spectrum(16, 1), 1_000_000, fft.ZeroFirst))
	assert.Error(t, err)
}

func TestColorMapProducesDifferentColorsAcrossRange(t *testing.T) {
	cm := waterfall.DefaultColorMap()
	low := cm.Map(0)
	high := cm.Map(1)
	assert.NotEqual(t, low, high)
}

// vim: foldmethod=marker
