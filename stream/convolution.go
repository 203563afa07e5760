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
	"github.com/mrrp-sdr/mrrp/fft"
)

// ConvolutionReader will perform an fft against a window of samples,
// and multiply those sampls in frequency-space against the provided window.
//
// This can do things like apply a filter, etc. The fun really is endless.
//
// The `filter` slice is expected to be in the frequency domain, not time
// domain. This should *not* be a mrrp.SamplesC64, it will yield absurd
// results.
func ConvolutionReader(
	r mrrp.Reader,
	planner fft.Planner,
	filter []complex64,
) (mrrp.Reader, error) {
	switch r.SampleFormat() {
	case mrrp.SampleFormatC64:
	default:
		return nil, mrrp.ErrSampleFormatUnknown
	}

	var (
		fftLength = len(filter)
		iq        = make(mrrp.SamplesC64, fftLength)
	)

	conv, err := fft.ConvolveFreq(planner, iq, iq, filter)
	if err != nil {
		return nil, err
	}

	return ReadTransformer(r, ReadTransformerConfig{
		InputBufferLength:  fftLength,
		OutputBufferLength: fftLength,
		OutputSampleFormat: mrrp.SampleFormatC64,
		OutputSampleRate:   r.SampleRate(),
		Proc: func(inI mrrp.Samples, outI mrrp.Samples) (int, error) {
			in, ok := inI.(mrrp.SamplesC64)
			if !ok {
				return 0, mrrp.ErrSampleFormatUnknown
			}
			out, ok := outI.(mrrp.SamplesC64)
			if !ok {
				return 0, mrrp.ErrSampleFormatUnknown
			}
			out = out[:in.Length()]
			copy(iq, in)

			if err := conv(); err != nil {
				return 0, err
			}

			copy(out, iq)
			return in.Length(), nil
		},
	})
}

// vim: foldmethod=marker
