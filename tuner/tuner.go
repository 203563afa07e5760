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

// Package tuner exposes the small capability set that the rest of this
// module programs a receiver against: open, set sample rate, set center
// frequency, set gain, and pull IQ. It is deliberately narrower than
// mrrp.Sdr/Receiver — callers that only need to tune and stream samples
// (the CLI, rtltcp's server) should depend on this instead of the full
// hardware-control surface.
package tuner

import (
	"fmt"

	"hz.tools/rf"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// GainMode selects whether a Tuner manages its own gain or is given an
// explicit value.
type GainMode int

const (
	// GainAuto lets the tuner's AGC pick a gain.
	GainAuto GainMode = iota
	// GainManual applies a caller-chosen gain.
	GainManual
)

// Gain is a tuner gain setting: either automatic, or a manual value in
// tenths of a dB (the unit rtl_tcp and its clients have historically
// used on the wire).
type Gain struct {
	Mode       GainMode
	TenthsOfDB int
}

// Tuner is the capability set a receiver driver must expose.
type Tuner interface {
	// Open connects to the device at deviceIndex.
	Open(deviceIndex uint) error

	// SetSampleRate sets the IQ sample rate in Hz.
	SetSampleRate(hz uint32) error

	// SetCenterFrequency tunes the receiver.
	SetCenterFrequency(freq rf.Hz) error

	// SetTunerGain sets the gain, automatic or manual.
	SetTunerGain(gain Gain) error

	// Samples begins streaming and returns a Reader of SamplesU8: each
	// element is one (I, Q) unsigned-byte pair, 0..255 mapping linearly
	// to (-1, +1).
	Samples() (mrrp.Reader, error)
}

// FromReceiver adapts a generic mrrp.Receiver (an already-open hardware
// or mock SDR) to the narrower Tuner interface. Open is a no-op, since a
// Receiver is assumed already open by the time it's handed in; deviceIndex
// is ignored.
func FromReceiver(sdr mrrp.Receiver) Tuner {
	return &receiverTuner{sdr: sdr}
}

type receiverTuner struct {
	sdr mrrp.Receiver
	rx  mrrp.ReadCloser
}

func (r *receiverTuner) Open(uint) error {
	return nil
}

func (r *receiverTuner) SetSampleRate(hz uint32) error {
	return r.sdr.SetSampleRate(hz)
}

func (r *receiverTuner) SetCenterFrequency(freq rf.Hz) error {
	return r.sdr.SetCenterFrequency(freq)
}

// SetTunerGain implements GainAuto via SetAutomaticGain, and GainManual by
// applying the requested dB value (tenths-of-dB / 10) to the gain stage
// closest to the antenna. Devices with no gain stages reject manual gain
// with mrrp.ErrNotSupported.
func (r *receiverTuner) SetTunerGain(gain Gain) error {
	if gain.Mode == GainAuto {
		return r.sdr.SetAutomaticGain(true)
	}

	stages, err := r.sdr.GetGainStages()
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		return mrrp.ErrNotSupported
	}

	if err := r.sdr.SetAutomaticGain(false); err != nil && err != mrrp.ErrNotSupported {
		return err
	}
	return r.sdr.SetGain(stages[0], float32(gain.TenthsOfDB)/10.0)
}

func (r *receiverTuner) Samples() (mrrp.Reader, error) {
	if r.sdr.SampleFormat() != mrrp.SampleFormatU8 {
		return nil, fmt.Errorf("tuner: device sample format %s is not U8", r.sdr.SampleFormat())
	}
	rx, err := r.sdr.StartRx()
	if err != nil {
		return nil, err
	}
	r.rx = rx
	return rx, nil
}

// Close closes the underlying receive stream, if one was started.
func (r *receiverTuner) Close() error {
	if r.rx == nil {
		return nil
	}
	return r.rx.Close()
}

// vim: foldmethod=marker
