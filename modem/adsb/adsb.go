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

// Package adsb demodulates 1090 MHz Mode S / ADS-B squitters: preamble
// search over a power-detected sample stream, PPM bit slicing at four
// selectable strictness levels, and frame-length dispatch on the first
// byte.
//
// <https://www.radartutorial.eu/13.ssr/sr24.en.html>
// <https://www.idc-online.com/technical_references/pdfs/electronic_engineering/Mode_S_Reply_Encoding.pdf>
package adsb

import (
	"errors"
	"math"
)

// preambleSamples is the preamble's length: 8 microseconds at 2 Msa/s.
const preambleSamples = 16

// SampleRate is the sample rate Mode S demodulation is defined at: 2
// samples per microsecond.
const SampleRate = 2_000_000

// DownlinkFrequency is the Mode S downlink (transponder reply) frequency.
const DownlinkFrequency = 1_090_000_000

// UplinkFrequency is the Mode S uplink (interrogation) frequency.
const UplinkFrequency = 1_030_000_000

// Quality selects how strictly a bit slice is validated against its
// neighboring half-bits before being accepted.
type Quality int

const (
	// NoChecks accepts the raw half-bit comparison unconditionally.
	NoChecks Quality = iota
	// HalfBit rejects a bit whose midpoint sample is ambiguous given the
	// previous half-bit.
	HalfBit
	// OneBit requires a four-point monotonic pattern confirming the edge
	// direction before accepting a bit.
	OneBit
	// TwoBits additionally requires consistency with the half-bit before
	// that. The strictest, and default, level.
	TwoBits
)

func (q Quality) String() string {
	switch q {
	case NoChecks:
		return "NoChecks"
	case HalfBit:
		return "HalfBit"
	case OneBit:
		return "OneBit"
	case TwoBits:
		return "TwoBits"
	default:
		return "Quality(?)"
	}
}

// FrameKind distinguishes the two Mode S reply lengths.
type FrameKind int

const (
	// FrameKindModeSShort is a 7-byte (56-bit) reply.
	FrameKindModeSShort FrameKind = iota
	// FrameKindModeSLong is a 14-byte (112-bit) extended squitter.
	FrameKindModeSLong
)

// Frame is a demodulated Mode S reply.
type Frame struct {
	Kind FrameKind
	Data []byte
}

// Cursor walks a slice of power-detected samples. Bit slicing only moves
// it forward and looks two samples behind the current position, at
// samples it has already passed over.
type Cursor struct {
	Samples []float32
	Position int
}

// Advance moves the cursor forward by n samples.
func (c *Cursor) Advance(n int) {
	c.Position += n
}

// Remaining returns the unconsumed tail of the sample buffer.
func (c *Cursor) Remaining() []float32 {
	return c.Samples[c.Position:]
}

var (
	errNotEnoughSamples = errors.New("modem/adsb: not enough samples to complete frame")
	errInvalidFrame     = errors.New("modem/adsb: too many bit errors")
)

// isPreamble reports whether samples[0:16] matches the Mode S preamble:
// highs at {0, 2, 7, 9}, lows everywhere else, every high strictly above
// every low seen so far.
func isPreamble(samples []float32) bool {
	low := float32(math.Inf(-1))
	high := float32(math.Inf(1))

	for i := 0; i < preambleSamples; i++ {
		switch i {
		case 0, 2, 7, 9:
			if samples[i] < high {
				high = samples[i]
			}
		default:
			if samples[i] > low {
				low = samples[i]
			}
		}
		if high <= low {
			return false
		}
	}
	return true
}

// findPreamble advances cursor sample-by-sample until a preamble is found
// (leaving the cursor just past it) or the buffer runs out (leaving the
// cursor at the first position that could not yet be ruled out).
func findPreamble(cursor *Cursor) bool {
	for {
		remaining := cursor.Remaining()
		if len(remaining) < preambleSamples {
			return false
		}
		if isPreamble(remaining) {
			cursor.Advance(preambleSamples)
			return true
		}
		cursor.Advance(1)
	}
}

// Demodulator turns a power-detected Mode S sample stream into Frames.
type Demodulator struct {
	quality   Quality
	numErrors int
	maxErrors int
}

// NewDemodulator builds a Demodulator at the given quality level,
// tolerating up to maxErrors bit slicing errors per frame before
// abandoning it.
func NewDemodulator(quality Quality, maxErrors int) *Demodulator {
	return &Demodulator{quality: quality, maxErrors: maxErrors}
}

// Next searches cursor for the next preamble and attempts to demodulate
// the frame that follows it. On success, cursor is left just past the
// frame. If no complete frame could be read because the buffer ran out,
// Next returns false with cursor left at the start of the preamble that
// was being attempted, so a caller can retry once more samples arrive.
// Invalid frames are skipped silently and the search resumes.
func (d *Demodulator) Next(cursor *Cursor) (Frame, bool) {
	for findPreamble(cursor) {
		frameCursor := *cursor

		frame, err := d.readFrame(&frameCursor)
		switch {
		case err == nil:
			cursor.Position = frameCursor.Position
			return frame, true
		case errors.Is(err, errNotEnoughSamples):
			cursor.Position -= preambleSamples
			return Frame{}, false
		default:
			// Invalid: keep searching from just past this preamble.
		}
	}
	return Frame{}, false
}

func (d *Demodulator) readFrame(cursor *Cursor) (Frame, error) {
	d.numErrors = 0

	first, err := d.readByte(cursor)
	if err != nil {
		return Frame{}, err
	}

	if first&0x80 == 0 {
		data, err := d.readFrameRest(first, cursor, 7)
		if err != nil {
			return Frame{}, err
		}
		return Frame{Kind: FrameKindModeSShort, Data: data}, nil
	}

	data, err := d.readFrameRest(first, cursor, 14)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Kind: FrameKindModeSLong, Data: data}, nil
}

func (d *Demodulator) readFrameRest(first byte, cursor *Cursor, n int) ([]byte, error) {
	data := make([]byte, n)
	data[0] = first
	for i := 1; i < n; i++ {
		b, err := d.readByte(cursor)
		if err != nil {
			return nil, err
		}
		data[i] = b
	}
	return data, nil
}

func (d *Demodulator) readByte(cursor *Cursor) (byte, error) {
	if len(cursor.Remaining()) < 2*8 {
		return 0, errNotEnoughSamples
	}

	var b byte
	for i := 0; i < 8; i++ {
		b <<= 1
		bit, ok := d.readBit(cursor)
		if !ok {
			d.numErrors++
			if d.numErrors > d.maxErrors {
				return 0, errInvalidFrame
			}
		}
		if bit {
			b |= 1
		}
	}
	return b, nil
}

// readBit reads one PPM bit (two samples) at cursor.Position, reporting
// the bit and whether it passed the configured quality check. On a
// failed check the raw comparison is still returned as the best guess.
func (d *Demodulator) readBit(cursor *Cursor) (bit bool, ok bool) {
	s0 := cursor.Samples[cursor.Position-2]
	s1 := cursor.Samples[cursor.Position-1]
	s2 := cursor.Samples[cursor.Position]
	s3 := cursor.Samples[cursor.Position+1]
	cursor.Advance(2)

	prevBit := s0 > s1
	rawBit := s2 > s3

	switch d.quality {
	case NoChecks:
		return rawBit, true

	case HalfBit:
		if rawBit && prevBit && s1 > s2 {
			return rawBit, false
		}
		if !rawBit && !prevBit && s1 < s2 {
			return rawBit, false
		}
		return rawBit, true

	case OneBit:
		switch {
		case rawBit && prevBit && s2 > s1:
			return true, true
		case rawBit && !prevBit && s3 < s1:
			return true, true
		case !rawBit && prevBit && s3 > s1:
			return false, true
		case !rawBit && !prevBit && s2 < s1:
			return false, true
		default:
			return rawBit, false
		}

	default: // TwoBits
		switch {
		case rawBit && prevBit && s2 > s1 && s3 < s0:
			return true, true
		case rawBit && !prevBit && s2 > s0 && s3 < s1:
			return true, true
		case !rawBit && prevBit && s2 < s0 && s3 > s1:
			return false, true
		case !rawBit && !prevBit && s2 < s1 && s3 > s0:
			return false, true
		default:
			return rawBit, false
		}
	}
}

// vim: foldmethod=marker
