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

package sstv_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/modem/sstv"
)

func roundSamples(seconds float64, sampleRate int) int {
	n := int(math.Round(seconds * float64(sampleRate)))
	if n < 1 {
		n = 1
	}
	return n
}

func TestEncoderEmitsExactlyTheExpectedSampleCount(t *testing.T) {
	const sampleRate = 1000
	mode := sstv.Mode{
		Name:          "test",
		SyncTime:      2e-3,
		PorchTime:     1e-3,
		SepTime:       1e-3,
		PixelTime:     1e-3,
		PixelsPerLine: 4,
		NumLines:      2,
		LineHeight:    1,
		ColorFormat:   sstv.ColorFormatGray,
		VisCode:       0,
	}
	img := sstv.NewImage(mode.PixelsPerLine, mode.NumLines)

	header := 2*roundSamples(0.3, sampleRate) + roundSamples(0.01, sampleRate) +
		10*roundSamples(0.03, sampleRate) // VisStart + 7 data bits + parity + VisStop = 10 windows
	perLine := roundSamples(mode.SyncTime, sampleRate) + roundSamples(mode.PorchTime, sampleRate) +
		mode.PixelsPerLine*roundSamples(mode.PixelTime, sampleRate) + roundSamples(mode.SepTime, sampleRate)
	expected := header + mode.NumLines*perLine

	enc := sstv.NewEncoder(mode, img, sampleRate)
	samples, err := mrrp.ReadToEnd(enc)
	require.NoError(t, err)
	assert.Equal(t, expected, samples.Length())
}

func TestRobot8BWRoundTrip(t *testing.T) {
	const sampleRate = 44100
	mode := sstv.Robot8BW
	const gray = 180

	img := sstv.NewImage(mode.PixelsPerLine, mode.NumLines*mode.LineHeight)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Set(x, y, gray, gray, gray)
		}
	}

	enc := sstv.NewEncoder(mode, img, sampleRate)
	dec := sstv.NewDecoder(sstv.DecoderConfig{SampleRate: sampleRate, LeaderThreshold: 60})

	buf := make(mrrp.SamplesC64, 1024)
	for {
		n, err := enc.Read(buf)
		for i := 0; i < n; i++ {
			require.NoError(t, dec.Process(buf[i]))
		}
		if err != nil {
			break
		}
	}

	gotMode, ok := dec.Mode()
	require.True(t, ok)
	assert.Equal(t, mode.Name, gotMode.Name)
	require.True(t, dec.Done())

	out := dec.Image()
	// Every pixel but the very first converges to the transmitted value;
	// the first pixel of the whole scan carries the FM demodulator's
	// one-sample startup transient (its delay line is still empty).
	mismatches := 0
	for y := 0; y < out.Height; y += mode.LineHeight {
		for x := 0; x < out.Width; x++ {
			if x == 0 && y == 0 {
				continue
			}
			r, _, _ := out.At(x, y)
			if math.Abs(float64(r)-gray) > 10 {
				mismatches++
			}
		}
	}
	assert.Zero(t, mismatches)
}

// vim: foldmethod=marker
