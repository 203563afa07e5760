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

// Package persist writes and reads filter-design coefficient vectors to and
// from disk, so a design computed once (a Parks-McClellan run, say) doesn't
// need to be recomputed on every process start. The on-disk format is
// intentionally minimal: a 32-bit little-endian sample count followed by
// that many 32-bit little-endian IEEE 754 floats. No version tag, no
// checksum: the coefficient vector is the only thing that needs to survive
// a restart, and a corrupt file will fail to produce a sane filter rather
// than silently misbehave.
package persist

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteCoefficients writes coefficients to w as a length-prefixed array of
// 32-bit floats.
func WriteCoefficients(w io.Writer, coefficients []float32) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(coefficients))); err != nil {
		return fmt.Errorf("persist: writing length: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, coefficients); err != nil {
		return fmt.Errorf("persist: writing coefficients: %w", err)
	}
	return nil
}

// ReadCoefficients reads a length-prefixed array of 32-bit floats from r, as
// written by WriteCoefficients.
func ReadCoefficients(r io.Reader) ([]float32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("persist: reading length: %w", err)
	}

	coefficients := make([]float32, n)
	if n == 0 {
		return coefficients, nil
	}
	if err := binary.Read(r, binary.LittleEndian, coefficients); err != nil {
		return nil, fmt.Errorf("persist: reading coefficients: %w", err)
	}
	return coefficients, nil
}

// vim: foldmethod=marker
