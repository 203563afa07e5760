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

package audio_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/audio"
	"github.com/mrrp-sdr/mrrp/generator"
)

func TestBridgeNeedsF32Source(t *testing.T) {
	_, err := audio.NewBridge(generator.Sine(generator.SineConfig{Frequency: 1000, SampleRate: 48000}))
	assert.ErrorIs(t, err, mrrp.ErrSampleFormatMismatch)
}

func TestBridgeReadProducesPCMBytes(t *testing.T) {
	src := generator.RealSine(generator.RealSineConfig{Frequency: 440, SampleRate: 48000})
	b, err := audio.NewBridge(src)
	require.NoError(t, err)
	defer b.Close()

	assert.EqualValues(t, 48000, b.SampleRate())
	assert.EqualValues(t, 1, b.Channels())

	p := make([]byte, 64)
	deadline := time.After(time.Second)
	var total int
	for total < len(p) {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for bridge to produce bytes")
		default:
		}
		n, err := b.Read(p[total:])
		require.NoError(t, err)
		total += n
	}
	assert.Equal(t, len(p), total)
}

func TestBridgeReadSurfacesEOFAndErr(t *testing.T) {
	src := &eofReader{}
	b, err := audio.NewBridge(src)
	require.NoError(t, err)
	defer b.Close()

	p := make([]byte, 16)
	deadline := time.After(time.Second)
	for {
		n, err := b.Read(p)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		select {
		case <-deadline:
			t.Fatal("timed out waiting for EOF")
		default:
		}
	}
	assert.NoError(t, b.Err())
}

// eofReader is an mrrp.Reader that immediately reports end-of-stream.
type eofReader struct{}

func (e *eofReader) Read(mrrp.Samples) (int, error) { return 0, io.EOF }
func (e *eofReader) SampleFormat() mrrp.SampleFormat { return mrrp.SampleFormatF32 }
func (e *eofReader) SampleRate() uint32              { return 48000 }

// vim: foldmethod=marker
