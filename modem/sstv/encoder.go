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
	"io"
	"math"

	mrrp "github.com/mrrp-sdr/mrrp"
)

const (
	visBitTime   = 30e-3
	visToneHigh  = 1100.0
	visToneLow   = 1300.0
	visSyncTone  = 1200.0
	leaderTone   = 1900.0
	leaderTime   = 300e-3
	breakTime    = 10e-3
	scanToneLo   = 1500.0
	scanToneHi   = 2300.0
	porchTone    = 1500.0
	separatorHz  = 1500.0
)

type encStage int

const (
	stageLeader1 encStage = iota
	stageBreak
	stageLeader2
	stageVisStart
	stageVisBit
	stageVisStop
	stageSync
	statePorch
	stageScan
	stageSep
	stageDone
)

// headerSegment is one constant-frequency tone in the VIS header.
type headerSegment struct {
	freq    float64
	samples int
}

// Encoder is an mrrp.Reader that renders an Image through a Mode's VIS
// header and line-scan tones into a continuous-phase audio signal,
// avoiding the spectral splatter a phase discontinuity at each frequency
// change would cause.
type Encoder struct {
	mode       Mode
	image      *Image
	sampleRate uint32

	phase     float64
	phaseStep float64 // 2*pi/sampleRate, reused every sample

	header     []headerSegment
	headerIdx  int
	headerPos  int

	line         int
	lineStage    encStage
	lineSamples  int
	lineTotal    int
	channelIdx   int
	pixelIdx     int
	pixelSamples int
	pixelTotal   int

	done bool
}

// NewEncoder builds an Encoder transmitting image in mode at sampleRate
// samples per second. image's dimensions need not match mode's exactly;
// rows beyond image.Height are sent black, and mode.LineHeight rows of
// the original picture are represented by a single transmitted scan line.
func NewEncoder(mode Mode, image *Image, sampleRate uint32) *Encoder {
	e := &Encoder{
		mode:       mode,
		image:      image,
		sampleRate: sampleRate,
		phaseStep:  2 * math.Pi / float64(sampleRate),
		header:     buildHeader(mode.VisCode, sampleRate),
		lineStage:  stageSync,
	}
	e.enterLineStage(stageSync)
	return e
}

func buildHeader(vis VisCode, sampleRate uint32) []headerSegment {
	segs := []headerSegment{
		{leaderTone, samplesFor(leaderTime, sampleRate)},
		{visSyncTone, samplesFor(breakTime, sampleRate)},
		{leaderTone, samplesFor(leaderTime, sampleRate)},
		{visSyncTone, samplesFor(visBitTime, sampleRate)},
	}
	for bit := 0; bit < 7; bit++ {
		segs = append(segs, headerSegment{toneFor(vis.Bit(bit)), samplesFor(visBitTime, sampleRate)})
	}
	segs = append(segs, headerSegment{toneFor(vis.Parity()), samplesFor(visBitTime, sampleRate)})
	segs = append(segs, headerSegment{visSyncTone, samplesFor(visBitTime, sampleRate)})
	return segs
}

func toneFor(bit bool) float64 {
	if bit {
		return visToneHigh
	}
	return visToneLow
}

func samplesFor(seconds float64, sampleRate uint32) int {
	n := int(math.Round(seconds * float64(sampleRate)))
	if n < 1 {
		n = 1
	}
	return n
}

func (e *Encoder) enterLineStage(stage encStage) {
	e.lineStage = stage
	e.lineSamples = 0
	switch stage {
	case stageSync:
		e.lineTotal = samplesFor(e.mode.SyncTime, e.sampleRate)
	case statePorch:
		e.lineTotal = samplesFor(e.mode.PorchTime, e.sampleRate)
	case stageScan:
		e.channelIdx = 0
		e.pixelIdx = 0
		e.enterPixel()
	case stageSep:
		e.lineTotal = samplesFor(e.mode.SepTime, e.sampleRate)
	}
}

func (e *Encoder) enterPixel() {
	e.pixelSamples = 0
	e.pixelTotal = samplesFor(e.mode.PixelTime, e.sampleRate)
}

// frequency returns the instantaneous carrier frequency for the sample
// about to be emitted, and advances the encoder's internal position by
// one sample. ok is false once the whole transmission is complete.
func (e *Encoder) frequency() (freq float64, ok bool) {
	if e.headerIdx < len(e.header) {
		seg := e.header[e.headerIdx]
		freq = seg.freq
		e.headerPos++
		if e.headerPos >= seg.samples {
			e.headerIdx++
			e.headerPos = 0
		}
		return freq, true
	}

	if e.done {
		return 0, false
	}

	switch e.lineStage {
	case stageSync:
		freq = visSyncTone
		e.lineSamples++
		if e.lineSamples >= e.lineTotal {
			e.enterLineStage(statePorch)
		}
	case statePorch:
		freq = porchTone
		e.lineSamples++
		if e.lineSamples >= e.lineTotal {
			e.enterLineStage(stageScan)
		}
	case stageScan:
		imgRow := e.line * e.mode.LineHeight
		value := e.samplePixelValue(imgRow, e.pixelIdx, e.channelIdx)
		freq = scanToneLo + (float64(value)/255.0)*(scanToneHi-scanToneLo)
		e.pixelSamples++
		if e.pixelSamples >= e.pixelTotal {
			e.pixelIdx++
			if e.pixelIdx >= e.mode.PixelsPerLine {
				e.pixelIdx = 0
				e.channelIdx++
				if e.channelIdx >= e.mode.ColorFormat.channelCount() {
					if e.mode.SepTime > 0 {
						e.enterLineStage(stageSep)
					} else {
						e.nextLine()
					}
					return freq, true
				}
			}
			e.enterPixel()
		}
	case stageSep:
		freq = separatorHz
		e.lineSamples++
		if e.lineSamples >= e.lineTotal {
			e.nextLine()
		}
	}
	return freq, true
}

func (e *Encoder) samplePixelValue(imgRow, x, ch int) uint8 {
	if imgRow >= e.image.Height || x >= e.image.Width {
		return 0
	}
	return channelValue(e.mode.ColorFormat, e.image, x, imgRow, ch)
}

func (e *Encoder) nextLine() {
	e.line++
	if e.line >= e.mode.NumLines {
		e.done = true
		return
	}
	e.enterLineStage(stageSync)
}

// Read implements mrrp.Reader, filling buf with continuous-phase SamplesC64.
func (e *Encoder) Read(buf mrrp.Samples) (int, error) {
	samples, ok := buf.(mrrp.SamplesC64)
	if !ok {
		return 0, mrrp.ErrSampleFormatMismatch
	}

	var n int
	for n < len(samples) {
		freq, ok := e.frequency()
		if !ok {
			break
		}
		samples[n] = complex64(complex(math.Cos(e.phase), math.Sin(e.phase)))
		e.phase += e.phaseStep * freq
		if e.phase > math.Pi {
			e.phase -= 2 * math.Pi
		}
		n++
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// SampleFormat implements mrrp.Reader.
func (e *Encoder) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatC64
}

// SampleRate implements mrrp.Reader.
func (e *Encoder) SampleRate() uint32 {
	return e.sampleRate
}

// vim: foldmethod=marker
