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

// Package simd contains the scalar fallbacks for the handful of tight loops
// in the stream package (gain scaling, mixing) that hardware-accelerated
// builds would otherwise vectorize. There's no cgo or asm backend wired up
// in this tree, so these are plain Go loops the compiler can still unroll
// and autovectorize reasonably well on its own.
package simd

// ScaleComplex multiplies every sample in buf by v, in place.
func ScaleComplex(v float32, buf []complex64) {
	cv := complex(v, 0)
	for i := range buf {
		buf[i] *= cv
	}
}

// AddComplex writes a+b into out, sample by sample. out may alias a or b.
func AddComplex(out, a, b []complex64) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
}

// vim: foldmethod=marker
