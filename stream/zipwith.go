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
	"fmt"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// ZippedError wraps an error returned by one of the two Readers passed to
// ZipWith, identifying which side (0 for A, 1 for B) produced it.
type ZippedError struct {
	Side int
	Err  error
}

func (ze *ZippedError) Error() string {
	return fmt.Sprintf("stream.ZipWith: side %d: %s", ze.Side, ze.Err)
}

func (ze *ZippedError) Unwrap() error {
	return ze.Err
}

// ZipFunc combines one sample read from A with the corresponding sample
// read from B, writing the result into out.
type ZipFunc func(a, b mrrp.Samples, out mrrp.Samples)

type zipWithReader struct {
	a, b         mrrp.Reader
	f            ZipFunc
	outFormat    mrrp.SampleFormat
	sampleRate   uint32
	err          error
}

// ZipWith reads matching-length buffers independently from a and b (each
// must be at least as long as the caller's requested length before either
// side's data is combined) and writes f(aSample, bSample) into the output
// for every index. a and b must share a SampleRate; they need not share a
// SampleFormat, since f is free to combine heterogeneous sample types.
//
// Each side is read until it holds the caller's requested count or ends,
// and f is applied to every index both sides filled.
//
// Errors from either side are wrapped in a ZippedError identifying which
// side (0 for a, 1 for b) failed.
func ZipWith(a, b mrrp.Reader, outFormat mrrp.SampleFormat, f ZipFunc) (mrrp.Reader, error) {
	if a.SampleRate() != b.SampleRate() {
		return nil, fmt.Errorf("stream.ZipWith: sample rate mismatch")
	}
	return &zipWithReader{
		a:          a,
		b:          b,
		f:          f,
		outFormat:  outFormat,
		sampleRate: a.SampleRate(),
	}, nil
}

func (zr *zipWithReader) SampleFormat() mrrp.SampleFormat {
	return zr.outFormat
}

func (zr *zipWithReader) SampleRate() uint32 {
	return zr.sampleRate
}

func (zr *zipWithReader) StreamLength() mrrp.Length {
	al, aok := lengthOf(zr.a)
	if !aok {
		return mrrp.LengthUnknown
	}
	bl, bok := lengthOf(zr.b)
	if !bok {
		return mrrp.LengthUnknown
	}
	n := al
	if bl < n {
		n = bl
	}
	return mrrp.LengthFinite(n)
}

func (zr *zipWithReader) Read(s mrrp.Samples) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}

	want := s.Length()

	aBuf, err := mrrp.MakeSamples(zr.a.SampleFormat(), want)
	if err != nil {
		return 0, err
	}
	aN, aErr := mrrp.ReadFull(zr.a, aBuf)
	if aErr != nil && aN == 0 {
		zr.err = &ZippedError{Side: 0, Err: aErr}
		return 0, zr.err
	}

	bBuf, err := mrrp.MakeSamples(zr.b.SampleFormat(), want)
	if err != nil {
		return 0, err
	}
	bN, bErr := mrrp.ReadFull(zr.b, bBuf)
	if bErr != nil && bN == 0 {
		zr.err = &ZippedError{Side: 1, Err: bErr}
		return 0, zr.err
	}

	n := aN
	if bN < n {
		n = bN
	}

	for i := 0; i < n; i++ {
		zr.f(aBuf.Slice(i, i+1), bBuf.Slice(i, i+1), s.Slice(i, i+1))
	}

	if n < want {
		if aErr != nil {
			zr.err = &ZippedError{Side: 0, Err: aErr}
		} else if bErr != nil {
			zr.err = &ZippedError{Side: 1, Err: bErr}
		}
	}

	return n, nil
}

// vim: foldmethod=marker
