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

import "math"

// Image is an 8-bit-per-channel RGB raster, the common currency between an
// Encoder's source picture and a Decoder's reconstructed one.
type Image struct {
	Width, Height int
	Pix           []uint8 // 3 bytes (R, G, B) per pixel, row-major.
}

// NewImage allocates a black Image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// At returns the red, green and blue channel values of the pixel at (x, y).
func (img *Image) At(x, y int) (r, g, b uint8) {
	i := (y*img.Width + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Set assigns the red, green and blue channel values of the pixel at (x, y).
func (img *Image) Set(x, y int, r, g, b uint8) {
	i := (y*img.Width + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}

// channelValue returns the byte value transmitted for channel index ch
// (0-based, within the number of channels ColorFormat.channelCount()
// reports) of the pixel at (x, y), in the scan order a real decoder
// expects for that format.
func channelValue(cf ColorFormat, img *Image, x, y int, ch int) uint8 {
	r, g, b := img.At(x, y)
	switch cf {
	case ColorFormatGBR:
		return [3]uint8{g, b, r}[ch]
	case ColorFormatRGB:
		return [3]uint8{r, g, b}[ch]
	case ColorFormatYUV:
		yy, u, v := rgbToYUV(r, g, b)
		return [3]uint8{yy, v, u}[ch]
	case ColorFormatGray:
		yy, _, _ := rgbToYUV(r, g, b)
		return yy
	default:
		return 0
	}
}

// setChannelValue is the decode-side inverse of channelValue: it folds one
// channel's received byte value into the pixel at (x, y), building up the
// final RGB value across the channels a mode scans.
func setChannelValue(cf ColorFormat, img *Image, x, y int, ch int, value uint8) {
	r, g, b := img.At(x, y)
	switch cf {
	case ColorFormatGBR:
		switch ch {
		case 0:
			g = value
		case 1:
			b = value
		case 2:
			r = value
		}
		img.Set(x, y, r, g, b)
	case ColorFormatRGB:
		switch ch {
		case 0:
			r = value
		case 1:
			g = value
		case 2:
			b = value
		}
		img.Set(x, y, r, g, b)
	case ColorFormatYUV:
		yy, u, v := rgbToYUV(r, g, b)
		switch ch {
		case 0:
			yy = value
		case 1:
			v = value
		case 2:
			u = value
		}
		r, g, b = yuvToRGB(yy, u, v)
		img.Set(x, y, r, g, b)
	case ColorFormatGray:
		img.Set(x, y, value, value, value)
	}
}

// channelCount returns how many channels cf scans per line.
func (cf ColorFormat) channelCount() int {
	if cf == ColorFormatGray {
		return 1
	}
	return 3
}

// rgbToYUV converts 8-bit RGB to 8-bit Y'UV using the ITU-R BT.601
// coefficients, with U and V offset by 128 to fit an unsigned byte.
func rgbToYUV(r, g, b uint8) (y, u, v uint8) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	yf := 0.299*rf + 0.587*gf + 0.114*bf
	uf := -0.168736*rf - 0.331264*gf + 0.5*bf + 128
	vf := 0.5*rf - 0.418688*gf - 0.081312*bf + 128
	return clampByte(yf), clampByte(uf), clampByte(vf)
}

// yuvToRGB is the inverse of rgbToYUV.
func yuvToRGB(y, u, v uint8) (r, g, b uint8) {
	yf, uf, vf := float64(y), float64(u)-128, float64(v)-128
	rf := yf + 1.402*vf
	gf := yf - 0.344136*uf - 0.714136*vf
	bf := yf + 1.772*uf
	return clampByte(rf), clampByte(gf), clampByte(bf)
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// vim: foldmethod=marker
