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

package mrrp

import (
	"hz.tools/rf"
)

// Band represents a contiguous range of RF spectrum, from Start to End.
type Band struct {
	Start rf.Hz
	End   rf.Hz
}

// Bandwidth returns the width of this Band.
func (b Band) Bandwidth() rf.Hz {
	return b.End - b.Start
}

// Center returns the frequency exactly between Start and End.
func (b Band) Center() rf.Hz {
	return b.Start + (b.Bandwidth() / 2)
}

// Contains reports whether freq falls within this Band, treating the Band
// as half-open ([Start, End)).
func (b Band) Contains(freq rf.Hz) bool {
	return freq >= b.Start && freq < b.End
}

// vim: foldmethod=marker
