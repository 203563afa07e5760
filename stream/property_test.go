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
	"pgregory.net/rapid"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// Gain.Scale is a pure per-sample multiply: scaling a buffer by v never
// touches samples outside the slice it was given, and scales every sample
// by exactly v.
func TestGainScaleIsPerSampleMultiply(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := float32(rapid.Float64Range(-5, 5).Draw(t, "v"))
		re := rapid.SliceOfN(rapid.Float64Range(-100, 100), 1, 64).Draw(t, "re")

		samples := make(mrrp.SamplesC64, len(re))
		for i, r := range re {
			samples[i] = complex(float32(r), float32(-r))
		}

		pipeReader, _ := mrrp.Pipe(len(samples), mrrp.SampleFormatC64)
		gain := stream.Gain(pipeReader, v).(interface {
			Scale(mrrp.Samples) error
		})

		before := make(mrrp.SamplesC64, len(samples))
		copy(before, samples)

		require := assert.New(t)
		require.NoError(gain.Scale(samples))

		for i := range samples {
			require.InDelta(float64(real(before[i])*v), float64(real(samples[i])), 1e-2)
			require.InDelta(float64(imag(before[i])*v), float64(imag(samples[i])), 1e-2)
		}
	})
}

// Applying Gain(v1) then Gain(v2) to a buffer is equivalent to a single
// Gain(v1*v2) applied once, since both are pure linear scalers.
func TestGainComposesMultiplicatively(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v1 := float32(rapid.Float64Range(-3, 3).Draw(t, "v1"))
		v2 := float32(rapid.Float64Range(-3, 3).Draw(t, "v2"))
		re := rapid.SliceOfN(rapid.Float64Range(-50, 50), 1, 64).Draw(t, "re")

		a := make(mrrp.SamplesC64, len(re))
		b := make(mrrp.SamplesC64, len(re))
		for i, r := range re {
			a[i] = complex(float32(r), float32(r*0.5))
			b[i] = a[i]
		}

		pr1, _ := mrrp.Pipe(len(a), mrrp.SampleFormatC64)
		pr2, _ := mrrp.Pipe(len(b), mrrp.SampleFormatC64)
		stage1 := stream.Gain(pr1, v1).(interface{ Scale(mrrp.Samples) error })
		stage2 := stream.Gain(pr2, v2).(interface{ Scale(mrrp.Samples) error })
		combined := stream.Gain(pr1, v1*v2).(interface{ Scale(mrrp.Samples) error })

		require := assert.New(t)
		require.NoError(stage1.Scale(a))
		require.NoError(stage2.Scale(a))
		require.NoError(combined.Scale(b))

		for i := range a {
			require.InDelta(float64(real(b[i])), float64(real(a[i])), 1e-1)
			require.InDelta(float64(imag(b[i])), float64(imag(a[i])), 1e-1)
		}
	})
}

// vim: foldmethod=marker
