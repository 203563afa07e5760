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

// Command mrrp is the CLI entry point: it can serve a synthetic sine
// source over the RTL-TCP protocol, play a WAV/FLAC file out
// the local audio device, or look up what a frequency is conventionally
// used for.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"hz.tools/rf"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/audio"
	"github.com/mrrp-sdr/mrrp/bandplan"
	"github.com/mrrp-sdr/mrrp/generator"
	"github.com/mrrp-sdr/mrrp/mock"
	"github.com/mrrp-sdr/mrrp/rtltcp"
	"github.com/mrrp-sdr/mrrp/wav"
)

func main() {
	configFile := pflag.String("config", "", "Path to a YAML config file.")
	mode := pflag.String("mode", "serve", "One of: serve, play, band.")
	listen := pflag.String("listen", "", "RTL-TCP listen address (serve mode). Overrides the config file.")
	advertise := pflag.Bool("advertise", false, "Advertise the RTL-TCP server over mDNS/DNS-SD (serve mode).")
	frequency := pflag.Uint64("frequency", 0, "Center frequency in Hz (serve mode: synthetic source; band mode: lookup frequency).")
	sampleRate := pflag.Uint32("sample-rate", 0, "IQ sample rate in Hz (serve mode).")
	toneFrequency := pflag.Float64("tone-frequency", 0, "Synthetic tone offset from frequency, in Hz (serve mode).")
	file := pflag.String("file", "", "WAV or FLAC file to play (play mode). FLAC is assumed for a .flac extension.")
	bandplanFile := pflag.String("bandplan", "", "Path to a custom CSV band registry (band mode). Defaults to the built-in international registry.")
	logLevel := pflag.String("log-level", "", "One of debug, info, warn, error. Overrides the config file.")
	pflag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mrrp: loading config: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *advertise {
		cfg.Advertise = true
	}
	if *frequency != 0 {
		cfg.Frequency = *frequency
	}
	if *sampleRate != 0 {
		cfg.SampleRate = *sampleRate
	}
	if *toneFrequency != 0 {
		cfg.ToneFrequency = *toneFrequency
	}
	if *bandplanFile != "" {
		cfg.BandplanFile = *bandplanFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err != nil {
		log.Warnf("unrecognized log level %q, leaving default", cfg.LogLevel)
	} else {
		log.SetLevel(level)
	}

	switch *mode {
	case "serve":
		err = runServe(cfg)
	case "play":
		err = runPlay(*file)
	case "band":
		err = runBand(cfg, *frequency)
	default:
		err = fmt.Errorf("mrrp: unknown mode %q, expected serve, play, or band", *mode)
	}
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// runServe streams a synthetic sinusoid over the RTL-TCP protocol, so
// rtl_tcp-compatible clients have something to point at without real
// hardware.
func runServe(cfg Config) error {
	source := generator.Sine(generator.SineConfig{
		Frequency:  cfg.ToneFrequency,
		SampleRate: cfg.SampleRate,
	})

	dev := mock.New(mock.Config{
		CenterFrequency: rf.Hz(cfg.Frequency),
		SampleRate:      cfg.SampleRate,
		SampleFormat:    mrrp.SampleFormatC64,
		Rx: mock.ThisRx(mrrp.ReaderWithCloser(source, func() error {
			return nil
		})),
	})

	server := rtltcp.Server{
		Addr: cfg.Listen,
		Handler: func(ctx context.Context) (mrrp.Receiver, error) {
			return dev, nil
		},
		Advertise: cfg.Advertise,
	}

	log.Infof("serving synthetic IQ on %s (center %d Hz, tone %.1f Hz)", cfg.Listen, cfg.Frequency, cfg.ToneFrequency)
	return server.ListenAndServe()
}

// runPlay decodes a WAV or FLAC file and plays it out the local audio
// device until it ends.
func runPlay(path string) error {
	if path == "" {
		return fmt.Errorf("mrrp: play mode requires --file")
	}

	var source mrrp.Reader
	if isFLAC(path) {
		rc, err := wav.OpenFLACSource(path)
		if err != nil {
			return err
		}
		defer rc.Close()
		source = rc
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		r, err := wav.NewReader(f, mrrp.SampleFormatF32)
		if err != nil {
			return err
		}
		source = r
	}

	player, err := audio.NewPlayer(source)
	if err != nil {
		return err
	}
	defer player.Close()

	log.Infof("playing %s", path)
	for player.IsPlaying() {
		time.Sleep(100 * time.Millisecond)
	}
	return player.Err()
}

func isFLAC(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".flac"
}

// runBand looks up which band a frequency falls in and prints it.
func runBand(cfg Config, frequency uint64) error {
	if frequency == 0 {
		return fmt.Errorf("mrrp: band mode requires --frequency")
	}

	var bp *bandplan.Bandplan
	var err error
	if cfg.BandplanFile != "" {
		f, openErr := os.Open(cfg.BandplanFile)
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		bp, err = bandplan.FromReader(f)
	} else {
		bp, err = bandplan.International()
	}
	if err != nil {
		return err
	}

	band, ok := bp.Get(frequency)
	if !ok {
		fmt.Printf("%d Hz: no registered band\n", frequency)
		return nil
	}
	fmt.Printf("%d Hz: %s (%s, %d-%d Hz)\n", frequency, band.Name, band.Mode, band.Start, band.End)
	return nil
}

// vim: foldmethod=marker
