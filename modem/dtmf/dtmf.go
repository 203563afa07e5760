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

// Package dtmf implements DTMF (dual-tone multi-frequency) touch-tone
// encoding and decoding: the sixteen-symbol keypad (0-9, A-D, * and #),
// each mapped to a row tone and a column tone summed together.
package dtmf

import (
	"fmt"
	"strings"
)

// Symbol is one of the sixteen DTMF keypad symbols.
type Symbol byte

// Rows and Columns are the four tone frequencies (Hz) that make up the
// DTMF keypad matrix; a Symbol's tone is its row frequency plus its column
// frequency.
var (
	Rows    = [4]float64{697, 770, 852, 941}
	Columns = [4]float64{1209, 1336, 1477, 1633}
)

var symbolGrid = [4][4]byte{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

// ParseSymbol converts an ASCII character into a Symbol, reporting false
// if it isn't one of the sixteen valid DTMF symbols.
func ParseSymbol(c byte) (Symbol, bool) {
	c = byte(strings.ToUpper(string(c))[0])
	for _, row := range symbolGrid {
		for _, s := range row {
			if s == c {
				return Symbol(c), true
			}
		}
	}
	return 0, false
}

// ParseSymbols converts a string into a slice of Symbols, returning an
// error naming the first invalid character encountered.
func ParseSymbols(s string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(s))
	for i := 0; i < len(s); i++ {
		symbol, ok := ParseSymbol(s[i])
		if !ok {
			return nil, fmt.Errorf("modem/dtmf: invalid DTMF symbol %q", s[i])
		}
		out = append(out, symbol)
	}
	return out, nil
}

// String returns the symbol as a single-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// RowColumn returns the zero-based row and column indices of s within the
// DTMF keypad matrix.
func (s Symbol) RowColumn() (row, column int) {
	for r, cols := range symbolGrid {
		for c, sym := range cols {
			if sym == byte(s) {
				return r, c
			}
		}
	}
	panic(fmt.Sprintf("modem/dtmf: %q is not a valid DTMF symbol", byte(s)))
}

// Frequencies returns the row and column tone frequencies (Hz) for s.
func (s Symbol) Frequencies() (row, column float64) {
	r, c := s.RowColumn()
	return Rows[r], Columns[c]
}

// vim: foldmethod=marker
