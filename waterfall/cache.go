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

// cacheCell is one resampled column of a cached row. Valid is false where
// the view band extends past the data the source line actually covers.
type cacheCell struct {
	Value float32
	Valid bool
}

type cacheLine struct {
	cells []cacheCell
}

func (c *cacheLine) fill(width int, sample func(x int) (float32, bool)) {
	if len(c.cells) == width {
		return
	}
	c.cells = make([]cacheCell, width)
	for x := 0; x < width; x++ {
		v, ok := sample(x)
		c.cells[x] = cacheCell{Value: v, Valid: ok}
	}
}

// renderCache memoizes resampled rows keyed by the view band and canvas
// width the previous render used; a change in either invalidates the whole
// cache, since every row's resampling depends on both.
type renderCache struct {
	lines      []cacheLine
	viewBand   FrequencyBand
	width      int
	haveViewed bool
}

// scroll makes room for a new row at the front (most recent) of the cache,
// dropping the oldest row beyond history, mirroring how Waterfall.lines
// itself scrolls.
func (c *renderCache) scroll(history int) {
	c.lines = append([]cacheLine{{}}, c.lines...)
	if len(c.lines) > history {
		c.lines = c.lines[:history]
	}
}

func (c *renderCache) invalidateIfChanged(viewBand FrequencyBand, width int) {
	if !c.haveViewed || c.viewBand != viewBand || c.width != width {
		c.lines = nil
		c.viewBand = viewBand
		c.width = width
		c.haveViewed = true
	}
}

func (c *renderCache) getOrSample(row, width int, sample func(x int) (float32, bool)) *cacheLine {
	for row >= len(c.lines) {
		c.lines = append(c.lines, cacheLine{})
	}
	line := &c.lines[row]
	line.fill(width, sample)
	return line
}

// vim: foldmethod=marker
