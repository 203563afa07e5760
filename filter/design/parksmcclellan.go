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
)

// ParksMcClellanConfig configures ParksMcClellan.
type ParksMcClellanConfig struct {
	// GridDensity is how many dense-grid samples are placed per band for
	// each unit of filter length; higher values find extrema more
	// precisely at the cost of more work per iteration.
	GridDensity int
	// MaxIterations bounds the Remez exchange loop.
	MaxIterations int
	// Tolerance stops the exchange once the ripple magnitude stops
	// changing by more than this between iterations.
	Tolerance float64
}

// NewParksMcClellanConfig returns reasonable defaults.
func NewParksMcClellanConfig() ParksMcClellanConfig {
	return ParksMcClellanConfig{
		GridDensity:   16,
		MaxIterations: 50,
		Tolerance:     1e-10,
	}
}

// ParksMcClellan designs an equiripple, linear-phase (Type I: odd length,
// even-symmetric impulse response) FIR filter with the Remez exchange
// algorithm: it alternates between solving for the Chebyshev coefficients
// that place equal-magnitude, alternating-sign error at a set of extremal
// frequencies, and relocating those frequencies to the new error curve's
// actual local extrema, until the extremal set stops moving or the ripple
// magnitude changes by no more than cfg.Tolerance.
//
// spec must report a Symmetry of SymmetryPositive (Type I/II); no
// differentiator/Hilbert (Type III/IV) support is provided.
func ParksMcClellan(spec NormalizedResponse, length int, cfg ParksMcClellanConfig) (Result, error) {
	if length%2 == 0 {
		length++
	}
	if sym, ok := spec.DesiredFrequencyResponse.(IsSymmetric); ok && sym.Symmetry() != SymmetryPositive {
		return Result{}, fmt.Errorf("filter/design: ParksMcClellan only supports even-symmetric (Type I/II) responses")
	}

	m := (length - 1) / 2 // number of cosine harmonics beyond the DC term
	r := m + 1            // free parameters: a_0..a_m
	numExtrema := r + 1

	grid, desired, weight := buildGrid(spec, length, cfg.GridDensity)
	if len(grid) < numExtrema {
		return Result{}, fmt.Errorf("filter/design: grid too coarse for filter length %d", length)
	}

	extrema := initialExtrema(grid, numExtrema)

	a := make([]float64, r)
	var delta float64
	iterations := 0

	for iterations = 1; iterations <= cfg.MaxIterations; iterations++ {
		newA, newDelta, err := solveChebyshev(grid, desired, weight, extrema, r)
		if err != nil {
			return Result{}, err
		}
		prevDelta := delta
		a, delta = newA, newDelta
		if iterations > 1 && math.Abs(math.Abs(delta)-math.Abs(prevDelta)) <= cfg.Tolerance {
			break
		}

		errCurve := make([]float64, len(grid))
		for i, f := range grid {
			errCurve[i] = weight[i] * (desired[i] - evaluateResponse(a, f))
		}

		newExtrema := findExtrema(errCurve, numExtrema)
		if extremaConverged(extrema, newExtrema) {
			extrema = newExtrema
			break
		}
		extrema = newExtrema
	}

	coefficients := impulseResponseFromCoefficients(a, length)

	extremalFrequencies := make([]float64, len(extrema))
	for i, idx := range extrema {
		extremalFrequencies[i] = grid[idx]
	}

	return Result{
		Coefficients:        coefficients,
		Iterations:          iterations,
		Residual:            math.Abs(delta),
		ExtremalFrequencies: extremalFrequencies,
	}, nil
}

func buildGrid(spec NormalizedResponse, length, density int) (grid, desired, weight []float64) {
	if density <= 0 {
		density = 16
	}
	pointsPerBand := density * length
	for _, band := range spec.Bands() {
		if band.End <= band.Start {
			continue
		}
		n := pointsPerBand
		if n < 2 {
			n = 2
		}
		for i := 0; i < n; i++ {
			f := band.Start + (band.End-band.Start)*float64(i)/float64(n-1)
			resp, ok := spec.ResponseAt(f)
			if !ok {
				continue
			}
			grid = append(grid, f)
			desired = append(desired, resp.Amplitude)
			tol := resp.Tolerance
			if tol <= 0 {
				tol = 1
			}
			weight = append(weight, 1/tol)
		}
	}
	return grid, desired, weight
}

func initialExtrema(grid []float64, numExtrema int) []int {
	extrema := make([]int, numExtrema)
	n := len(grid)
	for i := range extrema {
		extrema[i] = i * (n - 1) / (numExtrema - 1)
	}
	return extrema
}

// solveChebyshev finds a_0..a_{r-1} and delta such that, at each of the
// r+1 extremal grid points k, sum_n a_n*cos(2*pi*n*f_k) + (-1)^k*delta/w_k
// = desired_k. This is a dense (r+1)x(r+1) linear system, solved by
// Gaussian elimination with partial pivoting.
func solveChebyshev(grid, desired, weight []float64, extrema []int, r int) ([]float64, float64, error) {
	n := r + 1
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n+1)
		idx := extrema[i]
		f := grid[idx]
		for j := 0; j < r; j++ {
			matrix[i][j] = math.Cos(2 * math.Pi * float64(j) * f)
		}
		sign := 1.0
		if i%2 == 1 {
			sign = -1.0
		}
		matrix[i][r] = sign / weight[idx]
		matrix[i][n] = desired[idx]
	}

	if err := gaussianEliminate(matrix); err != nil {
		return nil, 0, err
	}

	a := make([]float64, r)
	for i := 0; i < r; i++ {
		a[i] = matrix[i][n]
	}
	delta := matrix[r][n]
	return a, delta, nil
}

func gaussianEliminate(matrix [][]float64) error {
	n := len(matrix)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(matrix[row][col]) > math.Abs(matrix[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(matrix[pivot][col]) < 1e-15 {
			return fmt.Errorf("filter/design: singular system during Remez exchange")
		}
		matrix[col], matrix[pivot] = matrix[pivot], matrix[col]

		for row := col + 1; row < n; row++ {
			factor := matrix[row][col] / matrix[col][col]
			for k := col; k <= n; k++ {
				matrix[row][k] -= factor * matrix[col][k]
			}
		}
	}

	for col := n - 1; col >= 0; col-- {
		sum := matrix[col][n]
		for k := col + 1; k < n; k++ {
			sum -= matrix[col][k] * matrix[k][n]
		}
		matrix[col][n] = sum / matrix[col][col]
	}
	return nil
}

func evaluateResponse(a []float64, f float64) float64 {
	sum := 0.0
	for n, coeff := range a {
		sum += coeff * math.Cos(2*math.Pi*float64(n)*f)
	}
	return sum
}

// findExtrema picks numExtrema indices of errCurve's local extrema,
// alternating in sign, favoring the largest magnitudes. Endpoints of
// monotonic runs at the grid boundaries are included when they're
// themselves extremal.
func findExtrema(errCurve []float64, numExtrema int) []int {
	var candidates []int
	n := len(errCurve)
	if n == 0 {
		return nil
	}
	if isLocalExtremum(errCurve, 0) {
		candidates = append(candidates, 0)
	}
	for i := 1; i < n-1; i++ {
		if isLocalExtremum(errCurve, i) {
			candidates = append(candidates, i)
		}
	}
	if isLocalExtremum(errCurve, n-1) {
		candidates = append(candidates, n-1)
	}

	if len(candidates) <= numExtrema {
		for len(candidates) < numExtrema {
			candidates = append(candidates, n-1)
		}
		return candidates[:numExtrema]
	}

	for len(candidates) > numExtrema {
		worst := 0
		worstMag := math.Abs(errCurve[candidates[0]])
		for i, c := range candidates {
			if math.Abs(errCurve[c]) < worstMag {
				worst = i
				worstMag = math.Abs(errCurve[c])
			}
		}
		candidates = append(candidates[:worst], candidates[worst+1:]...)
	}
	return candidates
}

func isLocalExtremum(curve []float64, i int) bool {
	n := len(curve)
	if n == 1 {
		return true
	}
	if i == 0 {
		return sign(curve[0]-curve[1]) != 0
	}
	if i == n-1 {
		return sign(curve[n-1]-curve[n-2]) != 0
	}
	left := curve[i] - curve[i-1]
	right := curve[i+1] - curve[i]
	return sign(left) != sign(right) || (left == 0 && right == 0)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func extremaConverged(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// impulseResponseFromCoefficients expands the Chebyshev coefficients
// a_0..a_m (A(f) = a_0 + sum_{n=1}^m a_n*cos(2*pi*n*f)) back into a
// length-length, even-symmetric impulse response.
func impulseResponseFromCoefficients(a []float64, length int) []float32 {
	m := length / 2
	h := make([]float32, length)
	h[m] = float32(a[0])
	for n := 1; n < len(a); n++ {
		h[m-n] = float32(a[n] / 2)
		h[m+n] = float32(a[n] / 2)
	}
	return h
}

// vim: foldmethod=marker
