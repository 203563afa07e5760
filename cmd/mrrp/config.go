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

package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for the mrrp CLI: everything that's
// awkward to pass as a flag every invocation (a fixed listen address, a
// custom bandplan file) lives here instead. Flags, when given, override the
// matching config field.
type Config struct {
	// Listen is the address the RTL-TCP-compatible server binds to, in
	// "serve" mode.
	Listen string `yaml:"listen"`

	// Advertise, if true, announces the server over mDNS/DNS-SD.
	Advertise bool `yaml:"advertise"`

	// Frequency is the synthetic source's center frequency, in Hz.
	Frequency uint64 `yaml:"frequency"`

	// SampleRate is the synthetic source's IQ sample rate, in Hz.
	SampleRate uint32 `yaml:"sampleRate"`

	// ToneFrequency is the offset, in Hz, of the synthetic tone from
	// Frequency.
	ToneFrequency float64 `yaml:"toneFrequency"`

	// BandplanFile, if set, overrides the built-in international band
	// registry used by the "band" mode.
	BandplanFile string `yaml:"bandplanFile"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no config file is given
// and no overriding flags are set.
func DefaultConfig() Config {
	return Config{
		Listen:        "127.0.0.1:1234",
		Advertise:     false,
		Frequency:     100_000_000,
		SampleRate:    2_048_000,
		ToneFrequency: 1_000,
		LogLevel:      "info",
	}
}

// LoadConfig reads and parses a YAML config file, starting from
// DefaultConfig so unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// vim: foldmethod=marker
