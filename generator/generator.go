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

// Package generator implements free-running signal sources as mrrp.Readers:
// real and complex sinusoids and a DC/constant source. These are the
// building blocks used to feed the stream combinators and modems in tests
// and in software-only (no hardware tuner) pipelines.
//
// White/Gaussian noise lives in mrrp/stream (stream.Noise), since it's a
// stream combinator source the teacher already modeled that way.
package generator

import (
	"math"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// SineConfig configures a complex sinusoid generator.
type SineConfig struct {
	// Frequency is the signal frequency in Hz. May be negative.
	Frequency float64

	// SampleRate is the number of samples per second this generator
	// produces.
	SampleRate uint32

	// Amplitude scales the output; defaults to 1 if zero.
	Amplitude float32
}

type sineReader struct {
	phase      float64
	phaseDelta float64
	amplitude  float32
	sampleRate uint32
}

// Sine creates an endless complex sinusoid mrrp.Reader at the configured
// frequency and sample rate.
func Sine(cfg SineConfig) mrrp.Reader {
	amplitude := cfg.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	return &sineReader{
		phaseDelta: 2 * math.Pi * cfg.Frequency / float64(cfg.SampleRate),
		amplitude:  amplitude,
		sampleRate: cfg.SampleRate,
	}
}

func (s *sineReader) Read(buf mrrp.Samples) (int, error) {
	samples, ok := buf.(mrrp.SamplesC64)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}
	for i := range samples {
		samples[i] = complex64(complex(
			float64(s.amplitude)*math.Cos(s.phase),
			float64(s.amplitude)*math.Sin(s.phase),
		))
		s.phase += s.phaseDelta
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		} else if s.phase < -2*math.Pi {
			s.phase += 2 * math.Pi
		}
	}
	return len(samples), nil
}

func (s *sineReader) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatC64
}

func (s *sineReader) SampleRate() uint32 {
	return s.sampleRate
}

// RealSineConfig configures a real-valued sinusoid generator, suitable for
// feeding an FM modulator's input or a test audio tone.
type RealSineConfig struct {
	Frequency  float64
	SampleRate uint32
	Amplitude  float32
}

type realSineReader struct {
	phase      float64
	phaseDelta float64
	amplitude  float32
	sampleRate uint32
}

// RealSine creates an endless real sinusoid mrrp.Reader (SamplesF32).
func RealSine(cfg RealSineConfig) mrrp.Reader {
	amplitude := cfg.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	return &realSineReader{
		phaseDelta: 2 * math.Pi * cfg.Frequency / float64(cfg.SampleRate),
		amplitude:  amplitude,
		sampleRate: cfg.SampleRate,
	}
}

func (s *realSineReader) Read(buf mrrp.Samples) (int, error) {
	samples, ok := buf.(mrrp.SamplesF32)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}
	for i := range samples {
		samples[i] = s.amplitude * float32(math.Sin(s.phase))
		s.phase += s.phaseDelta
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
	return len(samples), nil
}

func (s *realSineReader) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatF32
}

func (s *realSineReader) SampleRate() uint32 {
	return s.sampleRate
}

// constantReader emits the same sample forever; useful as a DC source, or
// combined with stream.ZipWith to inject a carrier offset.
type constantReader struct {
	value      complex64
	sampleRate uint32
}

// Constant creates an mrrp.Reader that emits the given complex value
// forever.
func Constant(value complex64, sampleRate uint32) mrrp.Reader {
	return &constantReader{value: value, sampleRate: sampleRate}
}

func (c *constantReader) Read(buf mrrp.Samples) (int, error) {
	samples, ok := buf.(mrrp.SamplesC64)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}
	for i := range samples {
		samples[i] = c.value
	}
	return len(samples), nil
}

func (c *constantReader) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatC64
}

func (c *constantReader) SampleRate() uint32 {
	return c.sampleRate
}

// vim: foldmethod=marker
