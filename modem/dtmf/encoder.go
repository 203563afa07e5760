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

package dtmf

import (
	"io"
	"math"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Encoder is an mrrp.Reader that emits a sequence of DTMF tones, one per
// symbol, each held for exactly round(toneDuration*sampleRate) samples
// before moving on (with fresh phase) to the next symbol.
type Encoder struct {
	symbols        []Symbol
	sampleRate     uint32
	samplesPerTone int

	symbolIndex  int
	sampleInTone int

	rowPhase         float64
	columnPhase      float64
	rowPhaseDelta    float64
	columnPhaseDelta float64
}

// NewEncoder builds an Encoder for symbols, each held for toneDuration
// seconds at sampleRate samples per second.
func NewEncoder(symbols []Symbol, sampleRate uint32, toneDuration float64) *Encoder {
	e := &Encoder{
		symbols:        symbols,
		sampleRate:     sampleRate,
		samplesPerTone: int(math.Round(toneDuration * float64(sampleRate))),
	}
	if len(symbols) > 0 {
		e.loadTone(0)
	}
	return e
}

func (e *Encoder) loadTone(index int) {
	row, column := e.symbols[index].Frequencies()
	e.rowPhaseDelta = 2 * math.Pi * row / float64(e.sampleRate)
	e.columnPhaseDelta = 2 * math.Pi * column / float64(e.sampleRate)
	e.rowPhase = 0
	e.columnPhase = 0
	e.sampleInTone = 0
}

// Read implements mrrp.Reader, filling buf with SamplesC64.
func (e *Encoder) Read(buf mrrp.Samples) (int, error) {
	samples, ok := buf.(mrrp.SamplesC64)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	var n int
	for n < len(samples) {
		if e.symbolIndex >= len(e.symbols) {
			break
		}
		if e.sampleInTone >= e.samplesPerTone {
			e.symbolIndex++
			if e.symbolIndex >= len(e.symbols) {
				break
			}
			e.loadTone(e.symbolIndex)
		}

		row := complex(math.Cos(e.rowPhase), math.Sin(e.rowPhase))
		column := complex(math.Cos(e.columnPhase), math.Sin(e.columnPhase))
		samples[n] = complex64(row + column)

		e.rowPhase += e.rowPhaseDelta
		e.columnPhase += e.columnPhaseDelta
		e.sampleInTone++
		n++
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// SampleFormat implements mrrp.Reader.
func (e *Encoder) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatC64
}

// SampleRate implements mrrp.Reader.
func (e *Encoder) SampleRate() uint32 {
	return e.sampleRate
}

// Remaining returns the exact number of samples left to emit: the
// symbols yet to start, times samples per tone, plus whatever is left of
// the tone in progress.
func (e *Encoder) Remaining() int {
	if e.symbolIndex >= len(e.symbols) {
		return 0
	}
	remainingSymbols := len(e.symbols) - e.symbolIndex - 1
	return remainingSymbols*e.samplesPerTone + (e.samplesPerTone - e.sampleInTone)
}

// vim: foldmethod=marker
