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

package tuner

import (
	"hz.tools/rf"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Mock is a Tuner backed by a caller-provided sample source, recording
// every call made to it. Rx, if nil, makes Samples return
// mrrp.ErrNotSupported, mirroring mock.Config's Rx/Tx convention.
type Mock struct {
	Rx func() (mrrp.Reader, error)

	Opened          bool
	DeviceIndex     uint
	SampleRate      uint32
	CenterFrequency rf.Hz
	Gain            Gain
}

// NewMock builds a Mock that streams from rx when Samples is called.
func NewMock(rx func() (mrrp.Reader, error)) *Mock {
	return &Mock{Rx: rx}
}

// NewGeneratorMock builds a Mock whose Samples() quantizes an
// mrrp/generator-style SamplesC64 source down to the SamplesU8 wire
// format Tuner.Samples promises, the same 0..255 <-> (-1,+1) mapping a
// real tuner's ADC would produce. Useful for exercising the rest of the
// pipeline (rtltcp, waterfall, ADS-B/SSTV decoders) without hardware.
func NewGeneratorMock(source mrrp.Reader) *Mock {
	return NewMock(func() (mrrp.Reader, error) {
		return &quantizingReader{source: source}, nil
	})
}

// quantizingReader adapts a SamplesC64 mrrp.Reader to SamplesU8 by
// reading into a same-sized complex64 scratch buffer and converting.
type quantizingReader struct {
	source  mrrp.Reader
	scratch mrrp.SamplesC64
}

func (q *quantizingReader) Read(buf mrrp.Samples) (int, error) {
	out, ok := buf.(mrrp.SamplesU8)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}
	if cap(q.scratch) < len(out) {
		q.scratch = make(mrrp.SamplesC64, len(out))
	}
	scratch := q.scratch[:len(out)]

	n, err := q.source.Read(scratch)
	if n > 0 {
		if convErr := scratch[:n].ToU8(out[:n]); convErr != nil {
			return 0, convErr
		}
	}
	return n, err
}

func (q *quantizingReader) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatU8
}

func (q *quantizingReader) SampleRate() uint32 {
	return q.source.SampleRate()
}

func (m *Mock) Open(deviceIndex uint) error {
	m.Opened = true
	m.DeviceIndex = deviceIndex
	return nil
}

func (m *Mock) SetSampleRate(hz uint32) error {
	m.SampleRate = hz
	return nil
}

func (m *Mock) SetCenterFrequency(freq rf.Hz) error {
	m.CenterFrequency = freq
	return nil
}

func (m *Mock) SetTunerGain(gain Gain) error {
	m.Gain = gain
	return nil
}

func (m *Mock) Samples() (mrrp.Reader, error) {
	if m.Rx == nil {
		return nil, mrrp.ErrNotSupported
	}
	return m.Rx()
}

// vim: foldmethod=marker
