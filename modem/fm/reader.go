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

package fm

import (
	"fmt"
	"io"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// Demodulate wraps in (a SamplesC64 IQ stream) with a Demodulator of the
// given kind, returning a SamplesF32 audio Reader at the same sample rate.
func Demodulate(in mrrp.Reader, kind Kind, frequencyDeviation float64) (mrrp.Reader, error) {
	if in.SampleFormat() != mrrp.SampleFormatC64 {
		return nil, mrrp.ErrSampleFormatMismatch
	}

	demod := NewDemodulator(kind, float64(in.SampleRate()), frequencyDeviation)

	return stream.ReadTransformer(in, stream.ReadTransformerConfig{
		InputBufferLength:  32 * 1024,
		OutputBufferLength: 32 * 1024,
		OutputSampleFormat: mrrp.SampleFormatF32,
		OutputSampleRate:   in.SampleRate(),
		Proc: func(inI mrrp.Samples, outI mrrp.Samples) (int, error) {
			in, ok := inI.(mrrp.SamplesC64)
			if !ok {
				return 0, mrrp.ErrSampleFormatMismatch
			}
			out := outI.(mrrp.SamplesF32)
			for i, s := range in {
				out[i] = demod.Process(s)
			}
			return len(in), nil
		},
	})
}

// Modulate reads audio samples from in (a SamplesF32 stream) and writes the
// frequency-modulated IQ equivalent to out, running until in returns an
// error (io.EOF included). bufferLength controls the chunk size used for
// each Read/Write round trip.
func Modulate(out mrrp.Writer, in mrrp.Reader, frequencyDeviation float64, bufferLength int) error {
	if in.SampleFormat() != mrrp.SampleFormatF32 {
		return mrrp.ErrSampleFormatMismatch
	}
	if out.SampleFormat() != mrrp.SampleFormatC64 {
		return mrrp.ErrSampleFormatMismatch
	}

	mod := NewModulator(float64(out.SampleRate()), frequencyDeviation)

	audioBuf := make(mrrp.SamplesF32, bufferLength)
	iqBuf := make(mrrp.SamplesC64, bufferLength)

	for {
		n, err := in.Read(audioBuf)
		if n > 0 {
			for i := 0; i < n; i++ {
				iqBuf[i] = mod.Process(audioBuf[i])
			}
			wn, werr := out.Write(iqBuf[:n])
			if werr != nil {
				return werr
			}
			if wn != n {
				return fmt.Errorf("modem/fm: Modulate: short write, wrote %d of %d samples", wn, n)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// vim: foldmethod=marker
