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

package audio

import (
	"time"

	"github.com/ebitengine/oto/v3"

	mrrp "github.com/mrrp-sdr/mrrp"
)

// Player owns an oto playback context and the Bridge feeding it, the two
// resources a caller needs to start and stop hearing demodulated audio.
type Player struct {
	bridge *Bridge
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens an oto context for src's sample rate, starts a Bridge
// pulling from src, and begins playback. It blocks until the platform audio
// backend is ready.
func NewPlayer(src mrrp.Reader) (*Player, error) {
	bridge, err := NewBridge(src)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(bridge.SampleRate()),
		ChannelCount: int(bridge.Channels()),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		bridge.Close()
		return nil, err
	}
	<-ready

	otoPlayer := ctx.NewPlayer(bridge)
	otoPlayer.Play()

	return &Player{
		bridge: bridge,
		ctx:    ctx,
		player: otoPlayer,
	}, nil
}

// TotalDuration reports how much audio has played so far.
func (p *Player) TotalDuration() (time.Duration, bool) {
	return p.bridge.TotalDuration()
}

// Err returns the first error the bridge hit pulling from upstream, distinct
// from a clean end-of-stream.
func (p *Player) Err() error {
	return p.bridge.Err()
}

// IsPlaying reports whether the underlying oto player is still running.
func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Close stops playback and tears down the bridge's puller goroutine. Per
// github.com/ebitengine/oto/v3's own documented limitation, the context
// itself cannot be fully closed and is reclaimed only when the process
// exits.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return err
	}
	p.bridge.Close()
	return p.ctx.Suspend()
}

// vim: foldmethod=marker
