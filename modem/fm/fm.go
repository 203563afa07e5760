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

// Package fm implements frequency modulation and the three standard forms
// of FM demodulation used across the software radio world: differentiate-
// then-divide, differentiate-then-access-phase, and access-phase-then-
// differentiate. All three are mathematically equivalent for a clean
// signal; they differ in numerical behavior near phase wraps and at low
// SNR, which is why callers get to pick.
package fm

import (
	"math"
	"math/cmplx"
)

// Kind selects which of the three equivalent demodulator forms to run.
type Kind int

const (
	// DifferentiateAndDivide computes the instantaneous frequency directly
	// from two prior samples without an arg() call; it's the form this
	// package treats as the default, baseline demodulator.
	DifferentiateAndDivide Kind = iota

	// DifferentiateAndAccessPhase computes arg(conj(previous) * sample);
	// it never wraps across +/-pi because arg() is always taken of a
	// single product, not a running accumulation.
	DifferentiateAndAccessPhase

	// AccessPhaseAndDifferentiate takes arg(sample) every step and
	// differences consecutive phases. It's the cheapest of the three but
	// suffers from 2*pi wraps whenever the phase crosses the branch cut;
	// callers need phase-unwrap post-processing to use it safely.
	AccessPhaseAndDifferentiate
)

// Demodulator holds the running state for one of the three FM demodulator
// forms, selected by Kind at construction.
type Demodulator struct {
	kind       Kind
	normFactor float32

	delay1 complex64
	delay2 complex64
	phase  float32
}

// NewDemodulator builds a Demodulator for the given Kind. sampleRate is in
// Hz and frequencyDeviation is the maximum carrier deviation (half the
// channel bandwidth); both feed the shared normalization factor
// sampleRate / (2*pi*frequencyDeviation).
func NewDemodulator(kind Kind, sampleRate float64, frequencyDeviation float64) *Demodulator {
	return &Demodulator{
		kind:       kind,
		normFactor: float32(sampleRate / (2 * math.Pi * frequencyDeviation)),
	}
}

// Process demodulates one IQ sample, returning the instantaneous audio
// sample.
func (d *Demodulator) Process(s complex64) float32 {
	switch d.kind {
	case DifferentiateAndAccessPhase:
		return d.differentiateAndAccessPhase(s)
	case AccessPhaseAndDifferentiate:
		return d.accessPhaseAndDifferentiate(s)
	default:
		return d.differentiateAndDivide(s)
	}
}

func (d *Demodulator) differentiateAndDivide(s complex64) float32 {
	var output float32
	if d.delay1 == 0 {
		output = 0
	} else {
		a := (real(s) - real(d.delay2)) * imag(d.delay1)
		b := (imag(s) - imag(d.delay2)) * real(d.delay1)
		normSqr := real(d.delay1)*real(d.delay1) + imag(d.delay1)*imag(d.delay1)
		output = (b - a) / normSqr * d.normFactor
	}
	d.delay2 = d.delay1
	d.delay1 = s
	return output
}

func (d *Demodulator) differentiateAndAccessPhase(s complex64) float32 {
	phaseDifference := cmplx.Phase(complex128(cmplx.Conj(complex128(d.delay1)) * complex128(s)))
	d.delay1 = s
	return float32(phaseDifference) * d.normFactor
}

func (d *Demodulator) accessPhaseAndDifferentiate(s complex64) float32 {
	phase := float32(cmplx.Phase(complex128(s)))
	phaseDifference := phase - d.phase
	d.phase = phase
	return phaseDifference * d.normFactor
}

// Modulator accumulates a phase accumulator and emits unit-magnitude IQ
// samples at that phase, implementing narrowband/wideband FM modulation.
type Modulator struct {
	phase                     float32
	frequencyModulationFactor float32
	carrierFrequency          float32
}

// NewModulator builds a Modulator. sampleRate and frequencyDeviation share
// the same normalization factor as Demodulator; carrierFrequency offsets
// the output phase (in radians per sample, 0 for baseband output).
func NewModulator(sampleRate float64, frequencyDeviation float64) *Modulator {
	return &Modulator{
		frequencyModulationFactor: float32(sampleRate / (2 * math.Pi * frequencyDeviation)),
	}
}

// Process modulates one audio sample, returning the corresponding IQ
// sample: phi += frequencyModulationFactor*sample, emit exp(i*phi).
func (m *Modulator) Process(sample float32) complex64 {
	phase := m.phase + m.frequencyModulationFactor*sample
	m.phase = phase

	angle := float64(phase + m.carrierFrequency)
	return complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
}

// vim: foldmethod=marker
