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

// Package audio bridges an mrrp.Reader of demodulated audio (SamplesF32) to
// a speaker, via github.com/ebitengine/oto/v3.
//
// oto pulls PCM bytes from an io.Reader on its own callback goroutine, and
// that callback must never block: if upstream has nothing ready, the
// callback should hand back silence rather than wait. Bridge keeps a
// background goroutine pulling from the upstream Reader into a single-slot
// buffered channel, and its io.Read method (the one oto calls) does a
// non-blocking select against that channel. The channel's buffered slot
// plays the role of "next chunk is ready"; the goroutine blocked in
// upstream.Read plays the role of the thing that makes it ready.
package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	mrrp "github.com/mrrp-sdr/mrrp"
)

const chunkSamples = 2048

// chunk is one pulled buffer in flight between the puller goroutine and
// Bridge.Read.
type chunk struct {
	samples mrrp.SamplesF32
	err     error
}

// Bridge adapts an mrrp.Reader of SamplesF32 audio into an io.Reader of
// float32 little-endian PCM bytes, the wire format oto.NewContext is
// configured for in this package.
type Bridge struct {
	src        mrrp.Reader
	sampleRate uint32

	chunks chan chunk
	done   chan struct{}
	once   sync.Once

	mu        sync.Mutex
	err       error
	rem       []byte
	totalRead int64
}

// NewBridge starts a background goroutine pulling SamplesF32 audio from src
// and returns a Bridge ready to be handed to oto.Context.NewPlayer.
func NewBridge(src mrrp.Reader) (*Bridge, error) {
	if src.SampleFormat() != mrrp.SampleFormatF32 {
		return nil, mrrp.ErrSampleFormatMismatch
	}

	b := &Bridge{
		src:        src,
		sampleRate: src.SampleRate(),
		chunks:     make(chan chunk, 1),
		done:       make(chan struct{}),
	}
	go b.pull()
	return b, nil
}

func (b *Bridge) pull() {
	for {
		buf := make(mrrp.SamplesF32, chunkSamples)
		n, err := b.src.Read(buf)
		select {
		case b.chunks <- chunk{samples: buf[:n], err: err}:
		case <-b.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Read implements io.Reader, the shape github.com/ebitengine/oto/v3 expects
// of a player source. It never blocks on upstream directly: if the puller
// goroutine has nothing ready yet, Read hands back silence for this call
// and tries again on the next one.
func (b *Bridge) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil && len(b.rem) == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) {
		if len(b.rem) > 0 {
			c := copy(p[n:], b.rem)
			b.rem = b.rem[c:]
			n += c
			continue
		}

		select {
		case ch := <-b.chunks:
			b.rem = encodeF32LE(ch.samples)
			if ch.err != nil {
				b.err = ch.err
			}
		default:
			// Nothing pulled yet: emit silence for the rest of this call
			// rather than block the audio callback.
			for ; n < len(p); n++ {
				p[n] = 0
			}
			b.totalRead += int64(n)
			return n, nil
		}
	}

	b.totalRead += int64(n)
	if n == 0 && b.err != nil {
		return 0, io.EOF
	}
	return n, nil
}

func encodeF32LE(samples mrrp.SamplesF32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// SampleFormat reports the float32 wire format Bridge always decodes to.
func (b *Bridge) SampleFormat() mrrp.SampleFormat {
	return mrrp.SampleFormatF32
}

// SampleRate implements the Audio Sink contract.
func (b *Bridge) SampleRate() uint32 {
	return b.sampleRate
}

// Channels implements the Audio Sink contract. This bridge always carries a
// single demodulated audio channel.
func (b *Bridge) Channels() uint16 {
	return 1
}

// TotalDuration reports how much audio has been pulled through the bridge
// so far. The bool is false, with a zero duration, when the bridge's sample
// rate is 0; otherwise it is true.
func (b *Bridge) TotalDuration() (time.Duration, bool) {
	b.mu.Lock()
	samples := b.totalRead / 4
	b.mu.Unlock()
	if b.sampleRate == 0 {
		return 0, false
	}
	seconds := float64(samples) / float64(b.sampleRate)
	return time.Duration(seconds * float64(time.Second)), true
}

// Err returns the first error encountered pulling from the upstream
// Reader, or nil. Read itself always terminates with io.EOF per io.Reader
// convention; Err is the side-channel for distinguishing a clean upstream
// io.EOF from an actual failure.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == io.EOF {
		return nil
	}
	return b.err
}

// Close stops the background puller goroutine. It does not close the
// underlying oto player or context; callers manage those lifetimes
// themselves, matching how github.com/ebitengine/oto/v3 structures
// ownership.
func (b *Bridge) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

// vim: foldmethod=marker
