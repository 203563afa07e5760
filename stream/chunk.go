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

package stream

import (
	"io"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Chunk is one owned buffer pulled off (or to be fed into) a chunk iterator.
type Chunk struct {
	Samples mrrp.Samples
	Err     error
}

// ChunkSource is a finite or infinite iterator of owned sample buffers, the
// other side of the ChunkStream <-> Stream adaptation: a channel of Chunk is
// the Go rendering of "an iterator of owned sample buffers".
type ChunkSource <-chan Chunk

type chunkReader struct {
	format mrrp.SampleFormat
	rate   uint32
	source ChunkSource
	cur    mrrp.Samples
	err    error
}

// ChunkReader adapts a ChunkSource (a channel of owned sample buffers, e.g.
// one fed by a decoder running on its own goroutine) into an mrrp.Reader.
// Each Read drains the current chunk before pulling the next one off
// source; once source is closed, Read returns io.EOF.
func ChunkReader(format mrrp.SampleFormat, rate uint32, source ChunkSource) mrrp.Reader {
	return &chunkReader{format: format, rate: rate, source: source}
}

func (cr *chunkReader) SampleFormat() mrrp.SampleFormat {
	return cr.format
}

func (cr *chunkReader) SampleRate() uint32 {
	return cr.rate
}

func (cr *chunkReader) Read(s mrrp.Samples) (int, error) {
	if cr.err != nil {
		return 0, cr.err
	}

	for cr.cur == nil || cr.cur.Length() == 0 {
		chunk, ok := <-cr.source
		if !ok {
			cr.err = io.EOF
			return 0, io.EOF
		}
		if chunk.Err != nil {
			cr.err = chunk.Err
			return 0, chunk.Err
		}
		cr.cur = chunk.Samples
	}

	n, err := mrrp.CopySamples(s, cr.cur.Slice(0, min(s.Length(), cr.cur.Length())))
	cr.cur = cr.cur.Slice(n, cr.cur.Length())
	return n, err
}

// ReaderChunks adapts r into a ChunkSource: a goroutine repeatedly reads
// fixed-size chunks of chunkLen samples from r and sends them on the
// returned channel, closing it once r returns a terminal error (io.EOF is
// swallowed; any other error is delivered as a final Chunk with Err set).
func ReaderChunks(r mrrp.Reader, chunkLen int) ChunkSource {
	ch := make(chan Chunk)
	go func() {
		defer close(ch)
		for {
			buf, err := mrrp.MakeSamples(r.SampleFormat(), chunkLen)
			if err != nil {
				ch <- Chunk{Err: err}
				return
			}
			n, rerr := r.Read(buf)
			if n > 0 {
				ch <- Chunk{Samples: buf.Slice(0, n)}
			}
			if rerr == io.EOF {
				return
			}
			if rerr != nil {
				ch <- Chunk{Err: rerr}
				return
			}
		}
	}()
	return ch
}

// vim: foldmethod=marker
