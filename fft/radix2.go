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

package fft

import (
	"math"
	"math/cmplx"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// DefaultPlanner is a pure Go fft.Planner, usable with no cgo toolchain and
// no external FFT library. Power-of-two lengths run the Cooley-Tukey
// radix-2 kernel; any other length falls back to a direct O(n^2) DFT so
// that windows whose size isn't a power of two (such as the window
// sizes stream.ResampleReader derives from a sample rate) still transform
// correctly, just without the radix-2 speedup.
func DefaultPlanner(
	iq mrrp.SamplesC64, frequency []complex64,
	direction Direction,
) (Plan, error) {
	if len(iq) != len(frequency) {
		return nil, mrrp.ErrDstTooSmall
	}
	return &radix2Plan{iq: iq, frequency: frequency, direction: direction}, nil
}

type radix2Plan struct {
	iq        mrrp.SamplesC64
	frequency []complex64
	direction Direction
}

func (p *radix2Plan) Transform() error {
	n := len(p.iq)
	buf := make([]complex128, n)

	if p.direction == Forward {
		for i, s := range p.iq {
			buf[i] = complex128(s)
		}
		forwardTransform(buf)
		for i, s := range buf {
			p.frequency[i] = complex64(s)
		}
		return nil
	}

	for i, s := range p.frequency {
		buf[i] = complex128(s)
	}
	for i := range buf {
		buf[i] = cmplx.Conj(buf[i])
	}
	forwardTransform(buf)
	for i := range buf {
		buf[i] = cmplx.Conj(buf[i]) / complex(float64(n), 0)
	}
	for i, s := range buf {
		p.iq[i] = complex64(s)
	}
	return nil
}

func (p *radix2Plan) Close() error {
	return nil
}

func forwardTransform(x []complex128) {
	n := len(x)
	if n > 0 && n&(n-1) == 0 {
		radix2FFT(x)
		return
	}
	copy(x, directDFT(x))
}

// radix2FFT computes an in-place Cooley-Tukey FFT. len(x) must be a power
// of two.
func radix2FFT(x []complex128) {
	n := len(x)

	for i, j := 0, 0; i < n; i++ {
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
		m := n >> 1
		for m >= 1 && j >= m {
			j -= m
			m >>= 1
		}
		j += m
	}

	for size := 2; size <= n; size <<= 1 {
		theta := -2 * math.Pi / float64(size)
		wlen := complex(math.Cos(theta), math.Sin(theta))
		for i := 0; i < n; i += size {
			w := complex(1.0, 0.0)
			for j := 0; j < size/2; j++ {
				u := x[i+j]
				v := x[i+j+size/2] * w
				x[i+j] = u + v
				x[i+j+size/2] = u - v
				w *= wlen
			}
		}
	}
}

// directDFT computes a DFT by direct summation, for lengths radix2FFT can't
// handle.
func directDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t, xt := range x {
			theta := -2 * math.Pi * float64(k*t) / float64(n)
			sum += xt * complex(math.Cos(theta), math.Sin(theta))
		}
		out[k] = sum
	}
	return out
}

// vim: foldmethod=marker
