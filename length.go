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
	"fmt"
	"time"
)

// Duration returns how long the samples in s last when played at
// sampleRate samples per second.
func Duration(s Samples, sampleRate uint) time.Duration {
	return time.Duration(s.Length()) * time.Second / time.Duration(sampleRate)
}

// Length describes how many samples a Reader is expected to produce before
// it returns io.EOF, if that's known ahead of time at all.
//
// This mirrors the Order/Direction pattern the fft package uses for small,
// closed sets of tagged values, rather than an untyped -1/0/positive int
// sentinel.
type Length struct {
	kind  lengthKind
	count int
}

type lengthKind uint8

const (
	lengthKindUnknown lengthKind = iota
	lengthKindInfinite
	lengthKindFinite
)

// LengthUnknown indicates the Reader doesn't know how many samples remain.
var LengthUnknown = Length{kind: lengthKindUnknown}

// LengthInfinite indicates the Reader never terminates on its own (a live
// hardware capture, a signal generator, and so on).
var LengthInfinite = Length{kind: lengthKindInfinite}

// LengthFinite indicates the Reader will produce exactly n more samples
// before returning io.EOF.
func LengthFinite(n int) Length {
	return Length{kind: lengthKindFinite, count: n}
}

// Known reports whether this Length carries any information at all.
func (l Length) Known() bool {
	return l.kind != lengthKindUnknown
}

// Finite reports whether this Length is a concrete sample count, returning
// that count and true if so.
func (l Length) Finite() (int, bool) {
	if l.kind != lengthKindFinite {
		return 0, false
	}
	return l.count, true
}

// Infinite reports whether this Length indicates a stream with no natural
// end.
func (l Length) Infinite() bool {
	return l.kind == lengthKindInfinite
}

// String implements fmt.Stringer.
func (l Length) String() string {
	switch l.kind {
	case lengthKindInfinite:
		return "infinite"
	case lengthKindFinite:
		return fmt.Sprintf("%d samples remaining", l.count)
	default:
		return "unknown"
	}
}

// LengthReader is an optional capability interface: Readers that know how
// many samples they have left (or that they'll never terminate) can
// implement this, and callers discover it the way rtltcp discovers
// Tunerable - with a type assertion.
type LengthReader interface {
	StreamLength() Length
}

// vim: foldmethod=marker
