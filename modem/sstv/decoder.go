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

package sstv

import (
	"github.com/mrrp-sdr/mrrp/filter"
	"github.com/mrrp-sdr/mrrp/modem/fm"
)

// DecoderConfig configures a Decoder.
type DecoderConfig struct {
	// SampleRate is the stream's sample rate in Hz.
	SampleRate uint32

	// LeaderThreshold is the Goertzel magnitude above which the leader
	// tone is considered present.
	LeaderThreshold float64
}

// edgeWindowTime is the Goertzel window used to look for the leader
// tone's rising edge: short relative to a VIS bit so the trigger lands
// promptly once the leader starts.
const edgeWindowTime = 10e-3

// Decoder receives a continuous-phase SSTV signal (an mrrp.SamplesC64
// stream, sample by sample) and reconstructs the VIS header and the
// scanned Image, mirroring Encoder's state machine in reverse.
type Decoder struct {
	cfg DecoderConfig

	leaderDet             *filter.Goertzel
	visHighDet, visLowDet *filter.Goertzel
	edgeWindowLen         int
	edgePos               int

	stage        decStage
	stageSamples int
	stageTotal   int

	visBits  [8]bool
	visIndex int

	mode      Mode
	modeKnown bool

	demod *fm.Demodulator

	image        *Image
	line         int
	channelIdx   int
	pixelIdx     int
	pixelSamples int
	pixelTotal   int
	freqSum      float64
	freqCount    int

	done bool
	err  error
}

type decStage int

const (
	decWaitLeader decStage = iota
	decBreak
	decLeader2
	decVisStart
	decVisBit
	decVisStop
	decSync
	decPorch
	decScan
	decSep
	decDone
)

// NewDecoder builds a Decoder from cfg.
func NewDecoder(cfg DecoderConfig) *Decoder {
	edgeWindowLen := samplesFor(edgeWindowTime, cfg.SampleRate)
	d := &Decoder{
		cfg:           cfg,
		leaderDet:     filter.NewGoertzel(cfg.SampleRate, leaderTone, edgeWindowLen),
		visHighDet:    filter.NewGoertzel(cfg.SampleRate, visToneHigh, samplesFor(visBitTime, cfg.SampleRate)),
		visLowDet:     filter.NewGoertzel(cfg.SampleRate, visToneLow, samplesFor(visBitTime, cfg.SampleRate)),
		edgeWindowLen: edgeWindowLen,
		demod:         fm.NewDemodulator(fm.DifferentiateAndDivide, float64(cfg.SampleRate), 1.0),
		stage:         decWaitLeader,
	}
	return d
}

// Mode reports the mode decoded from the VIS header, once known.
func (d *Decoder) Mode() (Mode, bool) {
	return d.mode, d.modeKnown
}

// Image returns the (possibly still in-progress) decoded image.
func (d *Decoder) Image() *Image {
	return d.image
}

// Done reports whether every line of the mode's image has been received.
func (d *Decoder) Done() bool {
	return d.done
}

// Err returns the error that ended decoding, if any (a VIS parity
// mismatch or an unrecognized VIS code).
func (d *Decoder) Err() error {
	return d.err
}

// Process feeds one complex baseband sample into the decoder.
func (d *Decoder) Process(sample complex64) error {
	if d.done || d.err != nil {
		return d.err
	}

	switch d.stage {
	case decWaitLeader:
		d.leaderDet.Process(real(complex128(sample)))
		d.edgePos++
		if d.edgePos >= d.edgeWindowLen {
			d.edgePos = 0
			if d.leaderDet.Magnitude() > d.cfg.LeaderThreshold {
				// The trigger fires one edge window into the first leader,
				// so the rest of that leader is timed out with the break.
				d.enterHeaderStage(decBreak, leaderTime-edgeWindowTime+breakTime)
			}
		}

	case decBreak:
		d.advanceHeaderTimer(decLeader2, leaderTime)
	case decLeader2:
		d.advanceHeaderTimer(decVisStart, visBitTime)
	case decVisStart:
		d.advanceHeaderTimer(decVisBit, visBitTime)

	case decVisBit:
		d.visHighDet.Process(real(complex128(sample)))
		d.visLowDet.Process(real(complex128(sample)))
		d.stageSamples++
		if d.stageSamples >= d.stageTotal {
			d.visBits[d.visIndex] = d.visHighDet.Magnitude() > d.visLowDet.Magnitude()
			d.visIndex++
			if d.visIndex >= 8 {
				return d.finishHeader()
			}
			d.enterHeaderStage(decVisBit, visBitTime)
		}

	case decVisStop:
		d.advanceHeaderTimer(decSync, d.mode.SyncTime)

	case decSync:
		d.stageSamples++
		if d.stageSamples >= d.stageTotal {
			d.enterLineStage(decPorch)
		}

	case decPorch:
		d.stageSamples++
		if d.stageSamples >= d.stageTotal {
			d.enterLineStage(decScan)
		}

	case decScan:
		freq := d.demod.Process(sample)
		d.freqSum += float64(freq)
		d.freqCount++
		d.pixelSamples++

		if d.pixelSamples >= d.pixelTotal {
			d.recordPixel()
			d.advanceScanPosition()
		}

	case decSep:
		d.stageSamples++
		if d.stageSamples >= d.stageTotal {
			d.nextLine()
		}
	}

	return nil
}

func (d *Decoder) enterHeaderStage(stage decStage, duration float64) {
	d.stage = stage
	d.stageSamples = 0
	d.stageTotal = samplesFor(duration, d.cfg.SampleRate)
	if stage == decVisBit {
		d.visHighDet.Magnitude()
		d.visLowDet.Magnitude()
	}
}

func (d *Decoder) advanceHeaderTimer(next decStage, nextDuration float64) {
	d.stageSamples++
	if d.stageSamples >= d.stageTotal {
		d.enterHeaderStage(next, nextDuration)
	}
}

func (d *Decoder) finishHeader() error {
	var code uint8
	for i := 0; i < 7; i++ {
		if d.visBits[i] {
			code |= 1 << uint(i)
		}
	}
	mode, err := ModeByVisCode(VisCode(code), d.visBits[7])
	if err != nil {
		d.err = err
		d.done = true
		return err
	}

	d.mode = mode
	d.modeKnown = true
	d.image = NewImage(mode.PixelsPerLine, mode.NumLines*mode.LineHeight)
	d.enterHeaderStage(decVisStop, visBitTime)
	return nil
}

func (d *Decoder) enterLineStage(stage decStage) {
	d.stage = stage
	d.stageSamples = 0
	switch stage {
	case decPorch:
		d.stageTotal = samplesFor(d.mode.PorchTime, d.cfg.SampleRate)
	case decScan:
		d.channelIdx = 0
		d.pixelIdx = 0
		d.enterPixel()
	case decSep:
		d.stageTotal = samplesFor(d.mode.SepTime, d.cfg.SampleRate)
	}
}

func (d *Decoder) enterPixel() {
	d.pixelSamples = 0
	d.pixelTotal = samplesFor(d.mode.PixelTime, d.cfg.SampleRate)
	d.freqSum = 0
	d.freqCount = 0
}

func (d *Decoder) recordPixel() {
	if d.freqCount == 0 {
		return
	}
	avg := d.freqSum / float64(d.freqCount)
	value := clampByte((avg - scanToneLo) / (scanToneHi - scanToneLo) * 255)
	imgRow := d.line * d.mode.LineHeight
	if imgRow < d.image.Height && d.pixelIdx < d.image.Width {
		setChannelValue(d.mode.ColorFormat, d.image, d.pixelIdx, imgRow, d.channelIdx, value)
	}
}

func (d *Decoder) advanceScanPosition() {
	d.pixelIdx++
	if d.pixelIdx >= d.mode.PixelsPerLine {
		d.pixelIdx = 0
		d.channelIdx++
		if d.channelIdx >= d.mode.ColorFormat.channelCount() {
			if d.mode.SepTime > 0 {
				d.enterLineStage(decSep)
			} else {
				d.nextLine()
			}
			return
		}
	}
	d.enterPixel()
}

func (d *Decoder) nextLine() {
	d.line++
	if d.line >= d.mode.NumLines {
		d.done = true
		d.stage = decDone
		return
	}
	d.enterHeaderStage(decSync, d.mode.SyncTime)
}

// vim: foldmethod=marker
