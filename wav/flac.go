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

package wav

import (
	"io"

	"github.com/mewkiz/flac"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// flacSource adapts a FLAC stream to an mrrp.Reader of SamplesF32,
// mixing down to mono (averaging channels) when the file is not already
// single-channel: a compressed capture source is audio, not IQ, and
// everything downstream of it already expects one real channel.
type flacSource struct {
	stream     *flac.Stream
	sampleRate uint32
	scale      float64

	pending []float32
}

// OpenFLACSource opens path as a FLAC file and returns it as a
// SamplesF32 mrrp.Reader, an alternate compressed capture source to
// raw/WAV files.
func OpenFLACSource(path string) (mrrp.ReadCloser, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, err
	}
	return &flacSource{
		stream:     stream,
		sampleRate: stream.Info.SampleRate,
		scale:      float64(int64(1) << (stream.Info.BitsPerSample - 1)),
	}, nil
}

func (f *flacSource) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatF32
}

func (f *flacSource) SampleRate() uint32 {
	return f.sampleRate
}

func (f *flacSource) Close() error {
	return f.stream.Close()
}

func (f *flacSource) Read(buf mrrp.Samples) (int, error) {
	out, ok := buf.(mrrp.SamplesF32)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	n := 0
	for n < len(out) {
		if len(f.pending) == 0 {
			if err := f.fill(); err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
		}
		copied := copy(out[n:], f.pending)
		f.pending = f.pending[copied:]
		n += copied
	}
	return n, nil
}

// fill decodes the next FLAC frame into f.pending, mixing multiple
// channels down to mono.
func (f *flacSource) fill() error {
	frame, err := f.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return err
	}

	nChan := len(frame.Subframes)
	nSamples := int(frame.BlockSize)
	samples := make([]float32, nSamples)
	for ch := 0; ch < nChan; ch++ {
		sub := frame.Subframes[ch]
		for i := 0; i < nSamples && i < len(sub.Samples); i++ {
			samples[i] += float32(float64(sub.Samples[i]) / f.scale / float64(nChan))
		}
	}
	f.pending = samples
	return nil
}

// vim: foldmethod=marker
