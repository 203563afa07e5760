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

// Package sstv implements analog slow-scan television: the VIS header
// handshake that announces a transmission mode, and the line-by-line
// scan encoding used by that mode's catalog entry.
//
// Mode timings and VIS codes are adapted from the mode table long
// maintained at http://www.tima.com/~djones/vis.txt and echoed by most
// SSTV software (slowrx, QSSTV, MMSSTV and so on); this package's catalog
// matches that table entry for entry.
package sstv

import "fmt"

// ColorFormat is the channel layout a mode scans each line in.
type ColorFormat int

const (
	// ColorFormatGBR scans green, then blue, then red, each as a full
	// scan line (Martin/Scottie family).
	ColorFormatGBR ColorFormat = iota
	// ColorFormatRGB scans red, green, blue in that order (Wraase/Pasokon
	// family).
	ColorFormatRGB
	// ColorFormatYUV scans luma and two chroma channels, the chroma
	// channels shared across a pair of lines (PD/Robot color family).
	ColorFormatYUV
	// ColorFormatGray scans a single luma channel (Robot B/W family).
	ColorFormatGray
)

// VisCode is a 7-bit Vis Start code identifying an SSTV mode.
type VisCode uint8

// Parity returns the parity bit transmitted as VIS bit 7: the XOR of bits
// 1 through 6 of the code (bit 0 does not participate).
func (v VisCode) Parity() bool {
	x := uint8(v)
	parity := false
	for bit := uint(1); bit <= 6; bit++ {
		if (x>>bit)&1 != 0 {
			parity = !parity
		}
	}
	return parity
}

// Bit returns the n'th bit (0-6) of the VIS code, LSB-first.
func (v VisCode) Bit(n int) bool {
	return (uint8(v)>>uint(n))&1 != 0
}

// Mode is a complete SSTV transmission mode specification: how long each
// part of a scan line takes, how many lines and pixels it has, and which
// channel layout it scans in.
type Mode struct {
	Name          string
	ShortName     string
	SyncTime      float64
	PorchTime     float64
	SepTime       float64
	PixelTime     float64
	LineTime      float64
	PixelsPerLine int
	NumLines      int
	LineHeight    int
	ColorFormat   ColorFormat
	VisCode       VisCode
}

// The full mode catalog, timings and VIS codes as published by N7CXI and
// KB4YZ and adopted industry-wide.
var (
	MartinM1 = Mode{Name: "Martin M1", ShortName: "M1", SyncTime: 4.862e-3, PorchTime: 0.572e-3, SepTime: 0.572e-3, PixelTime: 0.4576e-3, LineTime: 446.446e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatGBR, VisCode: 0x2c}
	MartinM2 = Mode{Name: "Martin M2", ShortName: "M2", SyncTime: 4.862e-3, PorchTime: 0.572e-3, SepTime: 0.572e-3, PixelTime: 0.2288e-3, LineTime: 226.7986e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatGBR, VisCode: 0x28}
	MartinM3 = Mode{Name: "Martin M3", ShortName: "M3", SyncTime: 4.862e-3, PorchTime: 0.572e-3, SepTime: 0.572e-3, PixelTime: 0.2288e-3, LineTime: 446.446e-3, PixelsPerLine: 320, NumLines: 128, LineHeight: 2, ColorFormat: ColorFormatGBR, VisCode: 0x24}
	MartinM4 = Mode{Name: "Martin M4", ShortName: "M4", SyncTime: 4.862e-3, PorchTime: 0.572e-3, SepTime: 0.572e-3, PixelTime: 0.2288e-3, LineTime: 226.7986e-3, PixelsPerLine: 320, NumLines: 128, LineHeight: 2, ColorFormat: ColorFormatGBR, VisCode: 0x20}

	ScottieS1  = Mode{Name: "Scottie S1", ShortName: "S1", SyncTime: 9e-3, PorchTime: 1.5e-3, SepTime: 1.5e-3, PixelTime: 0.4320e-3, LineTime: 428.38e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatGBR, VisCode: 0x3c}
	ScottieS2  = Mode{Name: "Scottie S2", ShortName: "S2", SyncTime: 9e-3, PorchTime: 1.5e-3, SepTime: 1.5e-3, PixelTime: 0.2752e-3, LineTime: 277.692e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatGBR, VisCode: 0x38}
	ScottieDX  = Mode{Name: "Scottie DX", ShortName: "SDX", SyncTime: 9e-3, PorchTime: 1.5e-3, SepTime: 1.5e-3, PixelTime: 1.08053e-3, LineTime: 1050.3e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatGBR, VisCode: 0x4c}

	Robot72   = Mode{Name: "Robot 72", ShortName: "R72", SyncTime: 9e-3, PorchTime: 3e-3, SepTime: 4.7e-3, PixelTime: 0.2875e-3, LineTime: 300e-3, PixelsPerLine: 320, NumLines: 240, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x0c}
	Robot36   = Mode{Name: "Robot 36", ShortName: "R36", SyncTime: 9e-3, PorchTime: 3e-3, SepTime: 6e-3, PixelTime: 0.1375e-3, LineTime: 150e-3, PixelsPerLine: 320, NumLines: 240, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x08}
	Robot24   = Mode{Name: "Robot 24", ShortName: "R24", SyncTime: 9e-3, PorchTime: 3e-3, SepTime: 6e-3, PixelTime: 0.1375e-3, LineTime: 150e-3, PixelsPerLine: 320, NumLines: 240, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x04}
	Robot24BW = Mode{Name: "Robot 24 B/W", ShortName: "R24Gray", SyncTime: 7e-3, PorchTime: 0, SepTime: 0, PixelTime: 0.291e-3, LineTime: 100e-3, PixelsPerLine: 320, NumLines: 240, LineHeight: 1, ColorFormat: ColorFormatGray, VisCode: 0x0a}
	Robot12BW = Mode{Name: "Robot 12 B/W", ShortName: "R12Gray", SyncTime: 7e-3, PorchTime: 0, SepTime: 0, PixelTime: 0.291e-3, LineTime: 100e-3, PixelsPerLine: 320, NumLines: 120, LineHeight: 2, ColorFormat: ColorFormatGray, VisCode: 0x06}
	Robot8BW  = Mode{Name: "Robot 8 B/W", ShortName: "R8Gray", SyncTime: 7e-3, PorchTime: 0, SepTime: 0, PixelTime: 0.1871875e-3, LineTime: 66.9e-3, PixelsPerLine: 320, NumLines: 120, LineHeight: 2, ColorFormat: ColorFormatGray, VisCode: 0x02}

	Wraase2120 = Mode{Name: "Wraase SC-2 120", ShortName: "W2120", SyncTime: 5.5225e-3, PorchTime: 0.5e-3, SepTime: 0, PixelTime: 0.489039081e-3, LineTime: 475.530018e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatRGB, VisCode: 0x3f}
	Wraase2180 = Mode{Name: "Wraase SC-2 180", ShortName: "W2180", SyncTime: 5.5225e-3, PorchTime: 0.5e-3, SepTime: 0, PixelTime: 0.734532e-3, LineTime: 711.0225e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatRGB, VisCode: 0x37}

	PD50  = Mode{Name: "PD-50", ShortName: "PD50", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.286e-3, LineTime: 388.16e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x5d}
	PD90  = Mode{Name: "PD-90", ShortName: "PD90", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.532e-3, LineTime: 703.04e-3, PixelsPerLine: 320, NumLines: 256, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x63}
	PD120 = Mode{Name: "PD-120", ShortName: "PD120", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.19e-3, LineTime: 508.48e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x5f}
	PD160 = Mode{Name: "PD-160", ShortName: "PD160", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.382e-3, LineTime: 804.416e-3, PixelsPerLine: 512, NumLines: 400, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x62}
	PD180 = Mode{Name: "PD-180", ShortName: "PD180", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.286e-3, LineTime: 754.24e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x60}
	PD240 = Mode{Name: "PD-240", ShortName: "PD240", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.382e-3, LineTime: 1000e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x61}
	PD290 = Mode{Name: "PD-290", ShortName: "PD290", SyncTime: 20e-3, PorchTime: 2.08e-3, SepTime: 0, PixelTime: 0.286e-3, LineTime: 937.28e-3, PixelsPerLine: 800, NumLines: 616, LineHeight: 1, ColorFormat: ColorFormatYUV, VisCode: 0x5e}

	PasokonP3 = Mode{Name: "Pasokon P3", ShortName: "P3", SyncTime: 5.208e-3, PorchTime: 1.042e-3, SepTime: 1.042e-3, PixelTime: 0.2083e-3, LineTime: 409.375e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatRGB, VisCode: 0x71}
	PasokonP5 = Mode{Name: "Pasokon P5", ShortName: "P5", SyncTime: 7.813e-3, PorchTime: 1.563e-3, SepTime: 1.563e-3, PixelTime: 0.3125e-3, LineTime: 614.065e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatRGB, VisCode: 0x72}
	PasokonP7 = Mode{Name: "Pasokon P7", ShortName: "P7", SyncTime: 10.417e-3, PorchTime: 2.083e-3, SepTime: 2.083e-3, PixelTime: 0.4167e-3, LineTime: 818.747e-3, PixelsPerLine: 640, NumLines: 496, LineHeight: 1, ColorFormat: ColorFormatRGB, VisCode: 0x73}
)

var catalog = map[VisCode]Mode{
	Robot8BW.VisCode:   Robot8BW,
	Robot24.VisCode:    Robot24,
	Robot12BW.VisCode:  Robot12BW,
	Robot36.VisCode:    Robot36,
	Robot24BW.VisCode:  Robot24BW,
	Robot72.VisCode:    Robot72,
	MartinM4.VisCode:   MartinM4,
	MartinM3.VisCode:   MartinM3,
	MartinM2.VisCode:   MartinM2,
	MartinM1.VisCode:   MartinM1,
	Wraase2180.VisCode: Wraase2180,
	ScottieS2.VisCode:  ScottieS2,
	ScottieS1.VisCode:  ScottieS1,
	Wraase2120.VisCode: Wraase2120,
	ScottieDX.VisCode:  ScottieDX,
	PD50.VisCode:       PD50,
	PD290.VisCode:      PD290,
	PD120.VisCode:      PD120,
	PD180.VisCode:      PD180,
	PD240.VisCode:      PD240,
	PD160.VisCode:      PD160,
	PD90.VisCode:       PD90,
	PasokonP3.VisCode:  PasokonP3,
	PasokonP5.VisCode:  PasokonP5,
	PasokonP7.VisCode:  PasokonP7,
}

// ErrUnknownMode is returned when a VIS code doesn't match any mode in the
// catalog.
type ErrUnknownMode struct{ VisCode VisCode }

func (e ErrUnknownMode) Error() string {
	return fmt.Sprintf("modem/sstv: unknown VIS code 0x%02x", uint8(e.VisCode))
}

// ErrParity is returned when a received VIS code's parity bit doesn't
// match the code's computed parity.
type ErrParity struct{ VisCode VisCode }

func (e ErrParity) Error() string {
	return fmt.Sprintf("modem/sstv: VIS parity mismatch for code 0x%02x", uint8(e.VisCode))
}

// ModeByVisCode resolves visCode to its catalog Mode, checking parity
// first: a parity mismatch is reported as ErrParity even if the code
// would otherwise resolve, matching how a real decoder can't trust a
// VIS code it already knows failed its parity check.
func ModeByVisCode(visCode VisCode, parity bool) (Mode, error) {
	if visCode.Parity() != parity {
		return Mode{}, ErrParity{VisCode: visCode}
	}
	mode, ok := catalog[visCode]
	if !ok {
		return Mode{}, ErrUnknownMode{VisCode: visCode}
	}
	return mode, nil
}

// vim: foldmethod=marker
