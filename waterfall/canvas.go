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

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DrawMode picks how many logical waterfall pixels are packed into each
// terminal cell. Terminal cells are roughly twice as tall as they are
// wide, so the half-block modes use the foreground/background split of a
// single cell to double the effective resolution along one axis.
type DrawMode int

const (
	// DrawFullBlock renders one logical pixel per cell, using only the
	// cell's background color.
	DrawFullBlock DrawMode = iota
	// DrawHalfBlockHorizontal packs two logical columns into each cell
	// using U+258C LEFT HALF BLOCK.
	DrawHalfBlockHorizontal
	// DrawHalfBlockVertical packs two logical rows into each cell using
	// U+2580 UPPER HALF BLOCK.
	DrawHalfBlockVertical
)

const (
	halfBlockLeft = '▌'
	halfBlockTop  = '▀'
)

// canvasSize is the logical pixel grid a DrawMode exposes over a terminal
// area of (cols, rows) cells.
func (m DrawMode) canvasSize(cols, rows int) (width, height int) {
	switch m {
	case DrawHalfBlockHorizontal:
		return cols * 2, rows
	case DrawHalfBlockVertical:
		return cols, rows * 2
	default:
		return cols, rows
	}
}

type cell struct {
	fg, bg lipgloss.Color
	r      rune
	set    bool
}

// canvas is a terminal-cell grid that DrawMode's Plot resolves logical
// (x, y) pixels down into, packing two logical pixels per cell in the
// half-block modes.
type canvas struct {
	mode       DrawMode
	cols, rows int
	cells      []cell
}

func newCanvas(mode DrawMode, cols, rows int) *canvas {
	return &canvas{
		mode:  mode,
		cols:  cols,
		rows:  rows,
		cells: make([]cell, cols*rows),
	}
}

func (c *canvas) at(col, row int) *cell {
	return &c.cells[row*c.cols+col]
}

// plot draws a logical (x, y) pixel in the given color.
func (c *canvas) plot(x, y int, color lipgloss.Color) {
	switch c.mode {
	case DrawHalfBlockHorizontal:
		cell := c.at(x/2, y)
		cell.set = true
		if x%2 == 0 {
			cell.fg = color
			cell.r = halfBlockLeft
		} else {
			cell.bg = color
			if cell.r == 0 {
				cell.r = ' '
			}
		}
	case DrawHalfBlockVertical:
		cell := c.at(x, y/2)
		cell.set = true
		if y%2 == 0 {
			cell.fg = color
			cell.r = halfBlockTop
		} else {
			cell.bg = color
			if cell.r == 0 {
				cell.r = ' '
			}
		}
	default:
		cell := c.at(x, y)
		cell.set = true
		cell.bg = color
		cell.r = ' '
	}
}

// render flattens the grid into terminal text, one styled rune per cell.
func (c *canvas) render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			cl := c.at(col, row)
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle()
			if cl.bg != "" {
				style = style.Background(cl.bg)
			}
			if cl.fg != "" {
				style = style.Foreground(cl.fg)
			}
			r := cl.r
			if r == 0 {
				r = ' '
			}
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// vim: foldmethod=marker
