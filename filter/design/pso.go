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
	"math/cmplx"
	"math/rand"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/fft"
)

// ParticleSwarmFFTConfig configures ParticleSwarmFFT. The zero value is not
// usable; NewParticleSwarmFFTConfig fills in the defaults used throughout
// this package.
type ParticleSwarmFFTConfig struct {
	// SwarmSize is the number of candidate coefficient vectors tracked.
	SwarmSize int
	// MaxIterations bounds how many swarm updates are run.
	MaxIterations int
	// TargetCost stops the search early once the best particle's cost
	// drops below this value.
	TargetCost float64
	// Bound constrains each coefficient to [-Bound, Bound].
	Bound float64
}

// NewParticleSwarmFFTConfig returns the defaults ported from the corpus's
// particle-swarm filter design: a 100-particle swarm, up to 100000
// iterations, target cost 1e-4, coefficients bounded to [-100, 100].
func NewParticleSwarmFFTConfig() ParticleSwarmFFTConfig {
	return ParticleSwarmFFTConfig{
		SwarmSize:     100,
		MaxIterations: 100000,
		TargetCost:    1e-4,
		Bound:         100,
	}
}

// ParticleSwarmFFT designs an FIR filter with particle swarm optimization:
// each particle is a candidate coefficient vector, scored by the mean
// squared error between the magnitude of its zero-padded FFT and the
// desired amplitude at each sampled frequency; particles are nudged toward
// their own best position and the swarm's best position each iteration.
//
// rng must not be nil; callers pick the source so results are reproducible
// across runs when seeded deterministically.
func ParticleSwarmFFT(spec NormalizedResponse, length, fftSize int, cfg ParticleSwarmFFTConfig, rng *rand.Rand) (Result, error) {
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

	cost := func(position []float32) (float64, error) {
		h := make(mrrp.SamplesC64, fftSize)
		freq := make([]complex64, fftSize)
		for i, c := range position {
			h[i] = complex(c, 0)
		}
		if err := transform(h, freq, fft.Forward); err != nil {
			return 0, err
		}

		var sum float64
		for i, t := range targets {
			if !t.ok {
				continue
			}
			d := t.response.Amplitude - cmplx.Abs(complex128(freq[i]))
			sum += d * d
		}
		return sum / float64(fftSize), nil
	}

	swarm := make([]particle, cfg.SwarmSize)
	for i := range swarm {
		pos := make([]float32, length)
		vel := make([]float32, length)
		for j := range pos {
			pos[j] = float32(rng.Float64()*2-1) * float32(cfg.Bound)
			vel[j] = float32(rng.Float64()*2-1) * float32(cfg.Bound)
		}
		c, err := cost(pos)
		if err != nil {
			return Result{}, err
		}
		swarm[i] = particle{position: pos, velocity: vel, bestPosition: append([]float32(nil), pos...), bestCost: c}
	}

	best := swarm[0].bestPosition
	bestCost := swarm[0].bestCost
	for _, p := range swarm[1:] {
		if p.bestCost < bestCost {
			bestCost = p.bestCost
			best = p.bestPosition
		}
	}

	const inertia = 0.7
	const cognitive = 1.5
	const social = 1.5

	iterations := 0
	for iterations = 1; iterations <= cfg.MaxIterations; iterations++ {
		if bestCost <= cfg.TargetCost {
			break
		}
		for i := range swarm {
			p := &swarm[i]
			for j := range p.position {
				rp := rng.Float64()
				rg := rng.Float64()
				p.velocity[j] = float32(inertia)*p.velocity[j] +
					float32(cognitive*rp)*(p.bestPosition[j]-p.position[j]) +
					float32(social*rg)*(best[j]-p.position[j])
				p.position[j] += p.velocity[j]
				p.position[j] = float32(clamp(float64(p.position[j]), -cfg.Bound, cfg.Bound))
			}
			c, err := cost(p.position)
			if err != nil {
				return Result{}, err
			}
			if c < p.bestCost {
				p.bestCost = c
				copy(p.bestPosition, p.position)
			}
			if c < bestCost {
				bestCost = c
				best = append([]float32(nil), p.position...)
			}
		}
	}

	return Result{Coefficients: best, Iterations: iterations, Residual: bestCost}, nil
}

type particle struct {
	position     []float32
	velocity     []float32
	bestPosition []float32
	bestCost     float64
}

// vim: foldmethod=marker
