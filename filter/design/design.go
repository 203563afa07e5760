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

// Package design implements FIR filter design: turning a desired frequency
// response specification into a set of filter coefficients. Frequencies
// here are always normalized to cycles per sample (0 to 0.5, Nyquist);
// NormalizedResponse carries a DesiredFrequencyResponse that's already been
// scaled that way.
package design

import (
	"math"
)

// Band is a frequency interval, in normalized cycles-per-sample units, on
// which a DesiredFrequencyResponse is defined.
type Band struct {
	Start float64
	End   float64
}

// FrequencyResponseAt is the desired amplitude and allowed deviation
// (tolerance) from it at a given frequency.
type FrequencyResponseAt struct {
	Amplitude float64
	Tolerance float64
}

// DesiredFrequencyResponse describes the target response a filter design
// algorithm should approximate.
type DesiredFrequencyResponse interface {
	// Bands returns the frequency intervals the response is defined over.
	// Frequencies outside of these bands (transition bands) are don't-care.
	Bands() []Band

	// ResponseAt returns the desired amplitude/tolerance at frequency,
	// or false if frequency falls in a transition band (don't-care).
	ResponseAt(frequency float64) (FrequencyResponseAt, bool)
}

// Symmetry describes the impulse-response symmetry a filter design should
// have: Positive for Type I/II (even symmetry, suits low-pass/high-pass),
// Negative for Type III/IV (odd symmetry, suits Hilbert/differentiator
// designs).
type Symmetry int

const (
	SymmetryPositive Symmetry = iota
	SymmetryNegative
)

// IsSymmetric is implemented by specifications that know which symmetry
// class their filter should have.
type IsSymmetric interface {
	Symmetry() Symmetry
}

// NormalizedResponse wraps a DesiredFrequencyResponse whose frequencies are
// already normalized to cycles per sample, so design algorithms taking a
// NormalizedResponse don't need a sample rate.
type NormalizedResponse struct {
	DesiredFrequencyResponse
}

// Normalize scales spec's frequencies (assumed to be given in Hz) down by
// sampleRate, producing a NormalizedResponse.
func Normalize(spec DesiredFrequencyResponse, sampleRate float64) NormalizedResponse {
	return NormalizedResponse{DesiredFrequencyResponse: &scaledResponse{
		inner: spec,
		scale: sampleRate,
	}}
}

type scaledResponse struct {
	inner DesiredFrequencyResponse
	scale float64
}

func (s *scaledResponse) Bands() []Band {
	bands := s.inner.Bands()
	out := make([]Band, len(bands))
	for i, b := range bands {
		out[i] = Band{Start: b.Start / s.scale, End: b.End / s.scale}
	}
	return out
}

func (s *scaledResponse) ResponseAt(frequency float64) (FrequencyResponseAt, bool) {
	return s.inner.ResponseAt(frequency * s.scale)
}

// Symmetry forwards to the wrapped spec's Symmetry when it implements
// IsSymmetric, so design algorithms can type-assert a NormalizedResponse
// for IsSymmetric regardless of whether it was built with Normalize.
func (s *scaledResponse) Symmetry() Symmetry {
	if sym, ok := s.inner.(IsSymmetric); ok {
		return sym.Symmetry()
	}
	return SymmetryPositive
}

// Lowpass is a two-band (passband + stopband) desired frequency response,
// specified relative to a transition region centered on cutoffFrequency.
type Lowpass struct {
	PassbandEnd       float64
	StopbandStart     float64
	PassbandTolerance float64
	StopbandTolerance float64
}

// NewLowpass builds a Lowpass specification from a cutoff frequency and
// transition bandwidth (both in the same units, normalized or Hz) and
// independent passband/stopband tolerances.
func NewLowpass(cutoffFrequency, transitionBandwidth, passbandTolerance, stopbandTolerance float64) Lowpass {
	half := transitionBandwidth / 2
	return Lowpass{
		PassbandEnd:       cutoffFrequency - half,
		StopbandStart:     cutoffFrequency + half,
		PassbandTolerance: passbandTolerance,
		StopbandTolerance: stopbandTolerance,
	}
}

// Bands implements DesiredFrequencyResponse.
func (l Lowpass) Bands() []Band {
	return []Band{
		{Start: 0, End: l.PassbandEnd},
		{Start: l.StopbandStart, End: 0.5},
	}
}

// ResponseAt implements DesiredFrequencyResponse.
func (l Lowpass) ResponseAt(frequency float64) (FrequencyResponseAt, bool) {
	frequency = math.Abs(frequency)
	switch {
	case frequency <= l.PassbandEnd:
		return FrequencyResponseAt{Amplitude: 1, Tolerance: l.PassbandTolerance}, true
	case frequency >= l.StopbandStart:
		return FrequencyResponseAt{Amplitude: 0, Tolerance: l.StopbandTolerance}, true
	default:
		return FrequencyResponseAt{}, false
	}
}

// Symmetry implements IsSymmetric: a low-pass filter is always Type I/II.
func (l Lowpass) Symmetry() Symmetry {
	return SymmetryPositive
}

// EstimateFilterLength estimates a suitable odd filter length for l using
// the Kaiser/Bellanger-style approximation also used by the equiripple
// design algorithms.
func (l Lowpass) EstimateFilterLength() int {
	n := (-20*math.Log10(math.Sqrt(l.PassbandTolerance*l.StopbandTolerance)) - 13) /
		(14.6 * (l.StopbandStart - l.PassbandEnd))
	length := int(math.Ceil(n))
	if length%2 == 0 {
		length++
	}
	if length < 3 {
		length = 3
	}
	return length
}

// Result is the outcome of a filter design algorithm: the coefficients
// found, how many iterations it took to converge, and the residual
// (algorithm-specific measure of remaining error). ExtremalFrequencies is
// populated only by ParksMcClellan, which designs around an explicit
// extremal-frequency set; other algorithms leave it nil.
type Result struct {
	Coefficients        []float32
	Iterations          int
	Residual            float64
	ExtremalFrequencies []float64
}

func fftSizeForFilterLength(length int) int {
	n := 5*(length-1) + 1
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// vim: foldmethod=marker
