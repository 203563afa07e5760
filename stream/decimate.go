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
	mrrp "github.com/mrrp-sdr/mrrp"
)

// DecimateReader will take even Nth sample (where N is the `factor` argument)
// from an mrrp.Reader, and provide the downsampled or compressed iq stream
// through the returned Reader.
//
// This will reduce the sample rate by the provided factor (so if the input
// Reader is at 18 Msps, and we apply a factor of 10 Decimation, we'll get
// an output Reader of 1.8 Msps.
func DecimateReader(in mrrp.Reader, factor uint32) (mrrp.Reader, error) {
	var offset = 0

	return ReadTransformer(in, ReadTransformerConfig{
		InputBufferLength:  32 * 1024,
		OutputBufferLength: 32 * 1024,
		OutputSampleRate:   in.SampleRate() / factor,
		OutputSampleFormat: in.SampleFormat(),
		Proc: func(inBuf mrrp.Samples, outBuf mrrp.Samples) (int, error) {
			n, err := DecimateBuffer(outBuf, inBuf, factor, offset)
			offset += inBuf.Length()
			return n, err
		},
	})
}

// DecimateBuffer will take every Nth sample, reducing the number of samples per
// second on the other end by the same factor.
//
// This is sometimes also called "Downsamping" or "Compression", but a lot
// of other tools use the term decimation, even though it's not always
// a downsample of a factor of 100.
func DecimateBuffer(to, from mrrp.Samples, factor uint32, offset int) (int, error) {
	if from.Format() != to.Format() {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	dFactor := int(factor)
	toLength := to.Length()
	fromLength := from.Length()

	if toLength < fromLength/dFactor {
		return 0, mrrp.ErrDstTooSmall
	}

	// TOMBSTONE FOR FUTURE HACKERS
	//
	// Here we don't use the generic mrrp.Iq Interface because we need to
	// both get and set at index offsets. THe Iq interface has enough for
	// most copy/io operations (for both the sdr library and users), but
	// in this case, we need to be doing some fairly detailed manipulation
	// of the IQ data.
	//
	// This means if you add a new sample format, this particular code
	// will need to become aware on how to get/set specific indexes.

	var i int
	for i = 0; i < fromLength/dFactor; i++ {
		switch from := from.(type) {
		case mrrp.SamplesU8:
			to := to.(mrrp.SamplesU8)
			to[i] = from[dFactor*i]
		case mrrp.SamplesI16:
			to := to.(mrrp.SamplesI16)
			to[i] = from[dFactor*i]
		case mrrp.SamplesC64:
			to := to.(mrrp.SamplesC64)
			to[i] = from[dFactor*i]
		case mrrp.SamplesF32:
			to := to.(mrrp.SamplesF32)
			to[i] = from[dFactor*i]
		default:
			return 0, mrrp.ErrSampleFormatUnknown
		}
	}

	return int(i), nil
}

// AverageDecimateReader reduces the sample rate of in by factor the same way
// DecimateReader does, but averages each run of factor samples together
// instead of keeping only the first of each run. This trades DecimateReader's
// aliasing for a shallow low-pass response.
func AverageDecimateReader(in mrrp.Reader, factor uint32) (mrrp.Reader, error) {
	var offset = 0

	return ReadTransformer(in, ReadTransformerConfig{
		InputBufferLength:  32 * 1024,
		OutputBufferLength: 32 * 1024,
		OutputSampleRate:   in.SampleRate() / factor,
		OutputSampleFormat: in.SampleFormat(),
		Proc: func(inBuf mrrp.Samples, outBuf mrrp.Samples) (int, error) {
			n, err := AverageDecimateBuffer(outBuf, inBuf, factor, offset)
			offset += inBuf.Length()
			return n, err
		},
	})
}

// AverageDecimateBuffer reduces the number of samples per second by factor,
// writing the mean of each run of factor input samples to the next output
// slot. offset is accepted for symmetry with DecimateBuffer but is currently
// unused, since averaging needs no phase state across calls.
func AverageDecimateBuffer(to, from mrrp.Samples, factor uint32, offset int) (int, error) {
	if from.Format() != to.Format() {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	dFactor := int(factor)
	toLength := to.Length()
	fromLength := from.Length()

	if toLength < fromLength/dFactor {
		return 0, mrrp.ErrDstTooSmall
	}

	var i int
	for i = 0; i < fromLength/dFactor; i++ {
		switch from := from.(type) {
		case mrrp.SamplesC64:
			to := to.(mrrp.SamplesC64)
			var acc complex64
			for _, s := range from[dFactor*i : dFactor*(i+1)] {
				acc += s
			}
			to[i] = acc / complex64(complex(float32(dFactor), 0))
		case mrrp.SamplesF32:
			to := to.(mrrp.SamplesF32)
			var acc float32
			for _, s := range from[dFactor*i : dFactor*(i+1)] {
				acc += s
			}
			to[i] = acc / float32(dFactor)
		default:
			return 0, mrrp.ErrSampleFormatUnknown
		}
	}

	return int(i), nil
}

// vim: foldmethod=marker
