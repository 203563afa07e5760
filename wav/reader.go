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
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Reader decodes a WAV file into an mrrp sample stream.
type Reader struct {
	dec        *wav.Decoder
	format     mrrp.SampleFormat
	sampleRate uint32
	channels   int
	scratch    *audio.IntBuffer
}

// NewReader opens a WAV decoder over r, expecting the stream to carry
// format's channel layout (one channel for SamplesF32, two otherwise).
// Any other channel count in the file is rejected.
func NewReader(r io.Reader, format mrrp.SampleFormat) (*Reader, error) {
	channels, _, _, err := formatInfo(format)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid WAV file")
	}
	dec.ReadInfo()
	dec.FwdToPCM()

	if int(dec.NumChans) != channels {
		return nil, fmt.Errorf("wav: file has %d channels, expected %d for %s", dec.NumChans, channels, format)
	}

	return &Reader{
		dec:        dec,
		format:     format,
		sampleRate: dec.SampleRate,
		channels:   channels,
	}, nil
}

// SampleFormat implements mrrp.Reader.
func (r *Reader) SampleFormat() mrrp.SampleFormat {
	return r.format
}

// SampleRate implements mrrp.Reader.
func (r *Reader) SampleRate() uint32 {
	return r.sampleRate
}

// Read implements mrrp.Reader.
func (r *Reader) Read(buf mrrp.Samples) (int, error) {
	if buf.Format() != r.format {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	frames := buf.Length()
	need := frames * r.channels
	if r.scratch == nil || cap(r.scratch.Data) < need {
		r.scratch = &audio.IntBuffer{
			Format: &audio.Format{NumChannels: r.channels, SampleRate: int(r.sampleRate)},
			Data:   make([]int, need),
		}
	}
	r.scratch.Data = r.scratch.Data[:need]

	n, err := r.dec.PCMBuffer(r.scratch)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	framesRead := n / r.channels
	data := r.scratch.Data[:n]

	switch s := buf.(type) {
	case mrrp.SamplesU8:
		for i := 0; i < framesRead; i++ {
			s[i][0] = uint8(data[i*2])
			s[i][1] = uint8(data[i*2+1])
		}
	case mrrp.SamplesI8:
		for i := 0; i < framesRead; i++ {
			s[i][0] = int8(data[i*2] - 128)
			s[i][1] = int8(data[i*2+1] - 128)
		}
	case mrrp.SamplesI16:
		for i := 0; i < framesRead; i++ {
			s[i][0] = int16(data[i*2])
			s[i][1] = int16(data[i*2+1])
		}
	case mrrp.SamplesC64:
		for i := 0; i < framesRead; i++ {
			re := float32(float64(data[i*2]) / maxInt32Scale)
			im := float32(float64(data[i*2+1]) / maxInt32Scale)
			s[i] = complex(re, im)
		}
	case mrrp.SamplesF32:
		for i := 0; i < framesRead; i++ {
			s[i] = math.Float32frombits(uint32(int32(data[i])))
		}
	default:
		return 0, mrrp.ErrSampleFormatMismatch
	}

	return framesRead, err
}

// vim: foldmethod=marker
