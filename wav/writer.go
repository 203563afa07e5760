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
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Writer encodes an mrrp sample stream to a WAV file.
type Writer struct {
	enc        *wav.Encoder
	format     mrrp.SampleFormat
	sampleRate uint32
	channels   int
	bitDepth   int
}

// NewWriter opens a WAV encoder over w, declared at sampleRate and
// format. The underlying file format (bit depth, channel count) is
// derived from format per the package doc.
func NewWriter(w io.WriteSeeker, sampleRate uint32, format mrrp.SampleFormat) (*Writer, error) {
	channels, bitDepth, audioFormat, err := formatInfo(format)
	if err != nil {
		return nil, err
	}
	enc := wav.NewEncoder(w, int(sampleRate), bitDepth, channels, audioFormat)
	return &Writer{
		enc:        enc,
		format:     format,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}, nil
}

// SampleFormat implements mrrp.Writer.
func (w *Writer) SampleFormat() mrrp.SampleFormat {
	return w.format
}

// SampleRate implements mrrp.Writer.
func (w *Writer) SampleRate() uint32 {
	return w.sampleRate
}

// Write implements mrrp.Writer.
func (w *Writer) Write(buf mrrp.Samples) (int, error) {
	if buf.Format() != w.format {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	var data []int
	switch s := buf.(type) {
	case mrrp.SamplesU8:
		data = make([]int, 0, len(s)*2)
		for _, pair := range s {
			data = append(data, int(pair[0]), int(pair[1]))
		}
	case mrrp.SamplesI8:
		data = make([]int, 0, len(s)*2)
		for _, pair := range s {
			data = append(data, int(pair[0])+128, int(pair[1])+128)
		}
	case mrrp.SamplesI16:
		data = make([]int, 0, len(s)*2)
		for _, pair := range s {
			data = append(data, int(pair[0]), int(pair[1]))
		}
	case mrrp.SamplesC64:
		data = make([]int, 0, len(s)*2)
		for _, sample := range s {
			data = append(data,
				int(float64(real(sample))*maxInt32Scale),
				int(float64(imag(sample))*maxInt32Scale),
			)
		}
	case mrrp.SamplesF32:
		data = make([]int, 0, len(s))
		for _, sample := range s {
			data = append(data, int(int32(math.Float32bits(sample))))
		}
	default:
		return 0, mrrp.ErrSampleFormatMismatch
	}

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: w.channels,
			SampleRate:  int(w.sampleRate),
		},
		Data:           data,
		SourceBitDepth: w.bitDepth,
	}
	if err := w.enc.Write(intBuf); err != nil {
		return 0, err
	}
	return buf.Length(), nil
}

// Close flushes the WAV header and trailer. It must be called before the
// underlying writer is closed.
func (w *Writer) Close() error {
	return w.enc.Close()
}

// vim: foldmethod=marker
