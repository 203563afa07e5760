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

//go:build cgo_fftw

// Package fftw adapts hz.tools/fftw's cgo-backed FFTW bindings to this
// module's fft.Planner contract, for callers who built with the cgo_fftw
// tag and have libfftw3 available. Without that tag, use fft.DefaultPlanner
// instead.
package fftw

import (
	"hz.tools/fftw"
	"hz.tools/sdr"
	sdrfft "hz.tools/sdr/fft"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/fft"
)

// Plan is an fft.Planner backed by FFTW, adapting hz.tools/fftw.Plan (which
// is written against hz.tools/sdr's sample types) onto this module's own
// mrrp.SamplesC64/fft.Planner contract. hz.tools/sdr.SamplesC64 and
// mrrp.SamplesC64 share the same underlying []complex64 representation, so
// the conversion is free at runtime.
func Plan(iq mrrp.SamplesC64, frequency []complex64, direction fft.Direction) (fft.Plan, error) {
	plan, err := fftw.Plan(sdr.SamplesC64(iq), frequency, sdrfft.Direction(direction))
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// vim: foldmethod=marker
