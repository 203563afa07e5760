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

package waterfall

// Downsampling picks how several adjacent FFT bins are combined into a
// single rendered column, when the canvas is narrower than the FFT size.
type Downsampling int

const (
	// DownsampleAverage averages the bins. The default: it's the only mode
	// that keeps the dBFS scale meaningful under the colormap's min/max
	// auto-ranging.
	DownsampleAverage Downsampling = iota
	DownsampleSum
	DownsampleMin
	DownsampleMax
	// DownsampleFirst takes the first bin in the group, skipping the rest.
	DownsampleFirst
)

// Apply combines samples per the downsampling mode. Panics if samples is
// empty; callers are expected to only call this on non-empty bin groups.
func (d Downsampling) Apply(samples []float32) float32 {
	if len(samples) == 0 {
		panic("waterfall: Downsampling.Apply called with no samples")
	}
	switch d {
	case DownsampleSum:
		var sum float32
		for _, s := range samples {
			sum += s
		}
		return sum
	case DownsampleAverage:
		var sum float32
		for _, s := range samples {
			sum += s
		}
		return sum / float32(len(samples))
	case DownsampleMin:
		min := samples[0]
		for _, s := range samples[1:] {
			if s < min {
				min = s
			}
		}
		return min
	case DownsampleMax:
		max := samples[0]
		for _, s := range samples[1:] {
			if s > max {
				max = s
			}
		}
		return max
	case DownsampleFirst:
		return samples[0]
	default:
		return samples[0]
	}
}

// vim: foldmethod=marker
