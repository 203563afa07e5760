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

package adsb

// modeSCRCPoly is the standard 24-bit Mode S CRC generator polynomial.
const modeSCRCPoly = 0xFFF409

// crc24Remainder runs data through the Mode S CRC shift register and
// returns the 24-bit remainder. For a DF17/DF18 extended squitter, the
// remainder over the whole frame (message bytes followed by its own
// 3-byte check value) is zero exactly when the frame is uncorrupted: the
// check bytes were chosen by the transmitter to make it so.
func crc24Remainder(data []byte) uint32 {
	var reg uint32
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bit := uint32(b>>uint(i)) & 1
			topBit := (reg >> 23) & 1
			reg = ((reg << 1) | bit) & 0xFFFFFF
			if topBit != 0 {
				reg ^= modeSCRCPoly
			}
		}
	}
	return reg
}

// CRCValid reports whether the frame's trailing 24-bit CRC field
// validates against the rest of its bytes. Only meaningful for extended
// squitters (DF17/DF18); other downlink formats XOR the check field with
// the transmitter's ICAO address, which this does not attempt to
// recover.
func (f Frame) CRCValid() bool {
	return crc24Remainder(f.Data) == 0
}

// vim: foldmethod=marker
