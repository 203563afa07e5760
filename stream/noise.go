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

package stream

import (
	"math/rand"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// NoiseConfig configures a Noise reader.
type NoiseConfig struct {
	// Source is the math/rand.Source used to generate each sample. If nil,
	// a source seeded with 1 is used, so every such reader produces the
	// same sequence.
	Source rand.Source

	// StandardDeviation is the standard deviation of the Gaussian noise
	// added to both the real and imaginary component of each sample.
	StandardDeviation float64

	// SampleRate is the nominal sample rate reported by this Reader.
	SampleRate uint32
}

type noiseReader struct {
	rand       *rand.Rand
	stdDev     float64
	sampleRate uint32
}

// Noise creates an mrrp.Reader that produces an endless stream of complex
// Gaussian noise, clamped to the valid [-1, 1] range on each component.
func Noise(cfg NoiseConfig) mrrp.Reader {
	source := cfg.Source
	if source == nil {
		source = rand.NewSource(1)
	}
	return &noiseReader{
		rand:       rand.New(source),
		stdDev:     cfg.StandardDeviation,
		sampleRate: cfg.SampleRate,
	}
}

func clampUnit(v float32) float32 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}

func (n *noiseReader) Read(s mrrp.Samples) (int, error) {
	buf, ok := s.(mrrp.SamplesC64)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}
	for i := range buf {
		re := clampUnit(float32(n.rand.NormFloat64() * n.stdDev))
		im := clampUnit(float32(n.rand.NormFloat64() * n.stdDev))
		buf[i] = complex(re, im)
	}
	return len(buf), nil
}

func (n *noiseReader) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatC64
}

func (n *noiseReader) SampleRate() uint32 {
	return n.sampleRate
}

// vim: foldmethod=marker
