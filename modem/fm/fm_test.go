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

package fm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrrp-sdr/mrrp/modem/fm"
)

const (
	testSampleRate = 200000.0
	testDeviation  = 75000.0
	testToneHz     = 5000.0
)

func constantFrequencyOffset(n int, sampleRate, freq float64) []complex64 {
	out := make([]complex64, n)
	phaseDelta := 2 * math.Pi * freq / sampleRate
	phase := 0.0
	for i := range out {
		out[i] = complex(float32(math.Cos(phase)), float32(math.Sin(phase)))
		phase += phaseDelta
	}
	return out
}

func TestDifferentiateAndDivideSteadyState(t *testing.T) {
	samples := constantFrequencyOffset(16, testSampleRate, testToneHz)
	d := fm.NewDemodulator(fm.DifferentiateAndDivide, testSampleRate, testDeviation)

	var last float32
	for _, s := range samples {
		last = d.Process(s)
	}

	expected := float32(testToneHz / testDeviation)
	assert.InDelta(t, expected, last, 1e-3)
}

func TestDifferentiateAndAccessPhaseSteadyState(t *testing.T) {
	samples := constantFrequencyOffset(16, testSampleRate, testToneHz)
	d := fm.NewDemodulator(fm.DifferentiateAndAccessPhase, testSampleRate, testDeviation)

	var last float32
	for _, s := range samples {
		last = d.Process(s)
	}

	expected := float32(testToneHz / testDeviation)
	assert.InDelta(t, expected, last, 1e-3)
}

func TestAccessPhaseAndDifferentiateSteadyState(t *testing.T) {
	samples := constantFrequencyOffset(16, testSampleRate, testToneHz)
	d := fm.NewDemodulator(fm.AccessPhaseAndDifferentiate, testSampleRate, testDeviation)

	var last float32
	for _, s := range samples {
		last = d.Process(s)
	}

	expected := float32(testToneHz / testDeviation)
	assert.InDelta(t, expected, last, 1e-3)
}

func TestDifferentiateAndDivideZeroOnFirstSample(t *testing.T) {
	d := fm.NewDemodulator(fm.DifferentiateAndDivide, testSampleRate, testDeviation)
	assert.Equal(t, float32(0), d.Process(1))
}

func TestModulatorEmitsUnitMagnitude(t *testing.T) {
	m := fm.NewModulator(testSampleRate, testDeviation)
	for i := 0; i < 32; i++ {
		s := m.Process(0.5)
		mag := math.Hypot(float64(real(s)), float64(imag(s)))
		assert.InDelta(t, 1.0, mag, 1e-4)
	}
}

func TestModulatorDemodulatorRoundTrip(t *testing.T) {
	mod := fm.NewModulator(testSampleRate, testDeviation)
	demod := fm.NewDemodulator(fm.DifferentiateAndDivide, testSampleRate, testDeviation)

	const audioSample = 0.3
	var last float32
	for i := 0; i < 32; i++ {
		iq := mod.Process(audioSample)
		last = demod.Process(iq)
	}

	assert.InDelta(t, audioSample, last, 1e-3)
}
