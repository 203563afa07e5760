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

// Package wav reads and writes interleaved-PCM WAV files as mrrp sample
// streams. Real-valued formats (SamplesF32) use one WAV channel; complex
// formats (SamplesU8, SamplesI8, SamplesI16, SamplesC64) use two, the
// real part first, matching the rest of this module's IQ byte order.
package wav

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// formatInfo reports the WAV channel count, bit depth, and WAVE audio
// format tag (1 = integer PCM, 3 = IEEE float) for an mrrp.SampleFormat.
func formatInfo(format mrrp.SampleFormat) (channels, bitDepth, audioFormat int, err error) {
	switch format {
	case mrrp.SampleFormatU8, mrrp.SampleFormatI8:
		return 2, 8, 1, nil
	case mrrp.SampleFormatI16:
		return 2, 16, 1, nil
	case mrrp.SampleFormatC64:
		return 2, 32, 1, nil
	case mrrp.SampleFormatF32:
		return 1, 32, 3, nil
	default:
		return 0, 0, 0, fmt.Errorf("wav: unsupported sample format %s", format)
	}
}

const maxInt32Scale = float64(math.MaxInt32)

// vim: foldmethod=marker
