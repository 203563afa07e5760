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

package design

import (
	"fmt"
	"math"
	"math/cmplx"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/fft"
)

// EquirippleFFT designs an FIR filter by alternating projection: transform
// a candidate impulse response to the frequency domain, clamp its
// magnitude response into the desired tolerance band at each sampled
// frequency, transform back, and re-truncate to the filter's time-domain
// support — repeating until the coefficients stop moving (by mean squared
// error) or maxIterations is reached.
//
// length is the desired (odd) filter length; fftSize, if zero, is chosen
// from length the same way the teacher's equiripple design always did.
func EquirippleFFT(spec NormalizedResponse, length, fftSize, maxIterations int, tolerance float64) (Result, error) {
	if length%2 == 0 {
		length++
	}
	if fftSize == 0 {
		fftSize = fftSizeForFilterLength(length)
	}
	if fftSize < length {
		fftSize = length
	}

	type target struct {
		response FrequencyResponseAt
		ok       bool
	}
	targets := make([]target, fftSize)
	for i := range targets {
		resp, ok := spec.ResponseAt(sampledFrequency(i, fftSize))
		targets[i] = target{response: resp, ok: ok}
	}

	h := make(mrrp.SamplesC64, fftSize)
	freq := make([]complex64, fftSize)

	// Seed h with an inverse transform of the ideal (unclamped) response,
	// given a linear phase that centers the impulse response on tap
	// (length-1)/2 so the truncated taps are even-symmetric.
	delay := float64((length - 1) / 2)
	for i, t := range targets {
		if t.ok {
			freq[i] = complex64(cmplx.Rect(t.response.Amplitude, -2*math.Pi*float64(i)*delay/float64(fftSize)))
		}
	}
	if err := transform(h, freq, fft.Backward); err != nil {
		return Result{}, err
	}
	truncate(h, length, fftSize)

	hBefore := make(mrrp.SamplesC64, fftSize)
	var mse float64
	iterations := 0

	for iterations = 1; iterations <= maxIterations; iterations++ {
		copy(hBefore[:length], h[:length])

		if err := transform(h, freq, fft.Forward); err != nil {
			return Result{}, err
		}

		for i, t := range targets {
			if !t.ok {
				continue
			}
			v := complex128(freq[i])
			a := cmplx.Abs(v)
			if a == 0 {
				continue
			}
			clamped := clamp(a, t.response.Amplitude-t.response.Tolerance, t.response.Amplitude+t.response.Tolerance)
			freq[i] = complex64(v * complex(clamped/a, 0))
		}

		if err := transform(h, freq, fft.Backward); err != nil {
			return Result{}, err
		}
		truncate(h, length, fftSize)

		if !allFinite(h[:length]) {
			copy(h[:length], hBefore[:length])
			return Result{}, fmt.Errorf("filter/design: equiripple iteration %d produced a non-finite tap, rolled back", iterations)
		}

		mse = 0
		for i := 0; i < length; i++ {
			d := real(h[i]) - real(hBefore[i])
			mse += float64(d) * float64(d)
		}
		mse /= float64(length)

		if mse < tolerance {
			break
		}
	}

	coefficients := make([]float32, length)
	for i := 0; i < length; i++ {
		coefficients[i] = real(h[i])
	}

	return Result{Coefficients: coefficients, Iterations: iterations, Residual: mse}, nil
}

func transform(h mrrp.SamplesC64, freq []complex64, direction fft.Direction) error {
	plan, err := fft.DefaultPlanner(h, freq, direction)
	if err != nil {
		return err
	}
	return plan.Transform()
}

func sampledFrequency(index, fftSize int) float64 {
	f := float64(index) / float64(fftSize)
	if f >= 0.5 {
		f -= 1
	}
	return f
}

func truncate(h mrrp.SamplesC64, length, fftSize int) {
	for i := length; i < fftSize; i++ {
		h[i] = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func allFinite(h mrrp.SamplesC64) bool {
	for _, c := range h {
		if cmplx.IsNaN(complex128(c)) || cmplx.IsInf(complex128(c)) {
			return false
		}
	}
	return true
}

// vim: foldmethod=marker
