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

// Package bandplan loads a registry of named frequency allocations (ham
// bands, broadcast bands, and the like) from CSV, so a waterfall or CLI can
// label what's being looked at without the operator having to memorize band
// edges. This is CLI-scope plumbing, not part of the receive pipeline
// itself.
package bandplan

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

//go:embed international.csv
var internationalCSV embed.FS

// Band is one row of a band registry: a frequency range and how it's
// conventionally used.
type Band struct {
	Start uint64
	End   uint64
	Mode  string
	Step  uint64
	Color string // "#rrggbb", as given in the CSV
	Name  string
}

// Contains reports whether frequency falls within [Start, End).
func (b Band) Contains(frequency uint64) bool {
	return b.Start <= frequency && frequency < b.End
}

// Bandplan is a registry of Bands, sorted and indexed for range queries.
type Bandplan struct {
	bands []Band
}

// FromReader parses a CSV band registry: start,end,mode,step,color,name.
// Lines starting with '#' and blank lines are skipped. Fields are
// whitespace-trimmed. Rows with an empty name are skipped, matching how an
// operator comments out or reserves a row without deleting it.
func FromReader(r io.Reader) (*Bandplan, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var bands []Band
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		band, err := parseBand(record)
		if err != nil {
			return nil, err
		}
		if band.Name == "" {
			continue
		}
		bands = append(bands, band)
	}

	sort.Slice(bands, func(i, j int) bool { return bands[i].Start < bands[j].Start })
	return &Bandplan{bands: bands}, nil
}

func parseBand(record []string) (Band, error) {
	if len(record) != 6 {
		return Band{}, fmt.Errorf("bandplan: expected 6 fields, got %d: %v", len(record), record)
	}
	start, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return Band{}, fmt.Errorf("bandplan: invalid start frequency %q: %w", record[0], err)
	}
	end, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return Band{}, fmt.Errorf("bandplan: invalid end frequency %q: %w", record[1], err)
	}
	step, err := strconv.ParseUint(strings.TrimSpace(record[3]), 10, 64)
	if err != nil {
		return Band{}, fmt.Errorf("bandplan: invalid step %q: %w", record[3], err)
	}
	return Band{
		Start: start,
		End:   end,
		Mode:  strings.TrimSpace(record[2]),
		Step:  step,
		Color: strings.TrimSpace(record[4]),
		Name:  strings.TrimSpace(record[5]),
	}, nil
}

// International returns the built-in international band registry embedded
// into the binary.
func International() (*Bandplan, error) {
	f, err := internationalCSV.Open("international.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}

// Get returns the first registered band containing frequency, if any.
func (b *Bandplan) Get(frequency uint64) (Band, bool) {
	for _, band := range b.Range(frequency, frequency+1) {
		return band, true
	}
	return Band{}, false
}

// Range returns every band that overlaps [start, end), in ascending order
// of start frequency. Bands are sorted by start frequency; since a band
// registry may legitimately contain overlapping rows (a broad allocation
// with a narrower one nested inside it), this scans rather than assuming
// End is monotonic too.
func (b *Bandplan) Range(start, end uint64) []Band {
	var out []Band
	for _, band := range b.bands {
		if band.Start >= end {
			break
		}
		if band.End > start {
			out = append(out, band)
		}
	}
	return out
}

// vim: foldmethod=marker
