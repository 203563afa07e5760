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
	"unsafe"
)

// SamplesF32 indicates that the samples are a vector of single-channel,
// real-valued float32 numbers, ranging from -1 to +1.
//
// Unlike the other Samples types, this isn't IQ data - it's used for
// demodulated baseband audio and other real-valued signals that come out
// the far end of a demodulator (FM, DTMF, SSTV tone detection, and so on).
type SamplesF32 []float32

// Format returns the type of this vector, as exported by the SampleFormat
// enum.
func (s SamplesF32) Format() SampleFormat {
	return SampleFormatF32
}

// Size will return the size of this mrrp.Samples in *bytes*.
func (s SamplesF32) Size() int {
	return int(unsafe.Sizeof(float32(0))) * len(s)
}

// Length will return the number of samples in this vector.
func (s SamplesF32) Length() int {
	return len(s)
}

// Slice will return a slice of the sample buffer from the provided
// starting position until the ending position.
func (s SamplesF32) Slice(start, end int) Samples {
	return s[start:end]
}

// vim: foldmethod=marker
