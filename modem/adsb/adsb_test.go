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

package adsb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrrp-sdr/mrrp/modem/adsb"
)

// modulate builds an ideal power-detected sample stream for data: the
// 16-sample preamble (highs at 0,2,7,9) followed by one raising or
// falling half-bit transition per data bit, exactly as a real Mode S
// transponder keys its 1090 MHz pulse position modulation.
func modulate(data []byte) []float32 {
	sample := func(high bool) float32 {
		if high {
			return 1.0
		}
		return 0.0
	}

	var samples []float32
	const preamble = 0b1010_0001_0100_0000
	for i := 15; i >= 0; i-- {
		samples = append(samples, sample((preamble>>uint(i))&1 != 0))
	}

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			if (b>>uint(i))&1 == 0 {
				samples = append(samples, sample(false), sample(true))
			} else {
				samples = append(samples, sample(true), sample(false))
			}
		}
	}
	return samples
}

func TestDemodulatesLongFrame(t *testing.T) {
	input := []byte{0x8d, 0x40, 0x74, 0xb5, 0x23, 0x15, 0xa6, 0x76, 0xdd, 0x13, 0xa0, 0x66, 0x29, 0x67}
	samples := modulate(input)

	demod := adsb.NewDemodulator(adsb.NoChecks, 0)
	cursor := &adsb.Cursor{Samples: samples}

	frame, ok := demod.Next(cursor)
	require.True(t, ok, "expected a demodulated frame")
	assert.Equal(t, adsb.FrameKindModeSLong, frame.Kind)
	assert.Equal(t, input, frame.Data)
	assert.True(t, frame.CRCValid())
}

func TestDemodulatesShortFrame(t *testing.T) {
	// Top bit of the first byte clear selects the 7-byte short reply.
	input := []byte{0x02, 0xe1, 0x97, 0x55, 0xaa, 0x10, 0x20}
	samples := modulate(input)

	demod := adsb.NewDemodulator(adsb.NoChecks, 0)
	cursor := &adsb.Cursor{Samples: samples}

	frame, ok := demod.Next(cursor)
	require.True(t, ok)
	assert.Equal(t, adsb.FrameKindModeSShort, frame.Kind)
	assert.Equal(t, input, frame.Data)
}

func TestDemodulatorSkipsNoise(t *testing.T) {
	input := []byte{0x8d, 0x40, 0x74, 0xb5, 0x23, 0x15, 0xa6, 0x76, 0xdd, 0x13, 0xa0, 0x66, 0x29, 0x67}
	noise := []float32{0, 1, 0, 1, 1, 0, 0, 1, 0, 0, 1, 0, 1, 1, 0, 0, 0.3, 0.7}
	samples := append(noise, modulate(input)...)

	demod := adsb.NewDemodulator(adsb.NoChecks, 0)
	cursor := &adsb.Cursor{Samples: samples}

	frame, ok := demod.Next(cursor)
	require.True(t, ok)
	assert.Equal(t, input, frame.Data)
}

func TestDecoderAccumulatesAcrossChunks(t *testing.T) {
	input := []byte{0x8d, 0x40, 0x74, 0xb5, 0x23, 0x15, 0xa6, 0x76, 0xdd, 0x13, 0xa0, 0x66, 0x29, 0x67}
	samples := modulate(input)

	dec := adsb.NewDecoder(adsb.NoChecks, 0)

	var frames []adsb.Frame
	for i := 0; i < len(samples); i += 7 {
		end := i + 7
		if end > len(samples) {
			end = len(samples)
		}
		frames = append(frames, dec.Process(samples[i:end])...)
	}

	require.Len(t, frames, 1)
	assert.Equal(t, input, frames[0].Data)
}

func TestTwoBitsQualityAcceptsCleanSignal(t *testing.T) {
	input := []byte{0x8d, 0x40, 0x74, 0xb5, 0x23, 0x15, 0xa6, 0x76, 0xdd, 0x13, 0xa0, 0x66, 0x29, 0x67}
	samples := modulate(input)

	demod := adsb.NewDemodulator(adsb.TwoBits, 0)
	cursor := &adsb.Cursor{Samples: samples}

	frame, ok := demod.Next(cursor)
	require.True(t, ok)
	assert.Equal(t, input, frame.Data)
}

func TestCRCValidDetectsCorruption(t *testing.T) {
	input := []byte{0x8d, 0x40, 0x74, 0xb5, 0x23, 0x15, 0xa6, 0x76, 0xdd, 0x13, 0xa0, 0x66, 0x29, 0x67}
	frame := adsb.Frame{Kind: adsb.FrameKindModeSLong, Data: append([]byte(nil), input...)}
	assert.True(t, frame.CRCValid())

	frame.Data[3] ^= 0x01
	assert.False(t, frame.CRCValid())
}

func TestQualityString(t *testing.T) {
	assert.Equal(t, "NoChecks", adsb.NoChecks.String())
	assert.Equal(t, "TwoBits", adsb.TwoBits.String())
}

// vim: foldmethod=marker
