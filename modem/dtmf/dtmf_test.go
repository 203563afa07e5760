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

package dtmf_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/modem/dtmf"
)

func TestParseSymbols(t *testing.T) {
	symbols, err := dtmf.ParseSymbols("017*#AB")
	require.NoError(t, err)
	require.Len(t, symbols, 7)
	assert.Equal(t, "0", symbols[0].String())
	assert.Equal(t, "B", symbols[6].String())
}

func TestParseSymbolsRejectsInvalid(t *testing.T) {
	_, err := dtmf.ParseSymbols("12X")
	assert.Error(t, err)
}

func TestSymbolFrequencies(t *testing.T) {
	symbol, ok := dtmf.ParseSymbol('5')
	require.True(t, ok)
	row, column := symbol.Frequencies()
	assert.Equal(t, 770.0, row)
	assert.Equal(t, 1336.0, column)
}

func TestEncoderStreamLength(t *testing.T) {
	const sampleRate = 8000
	symbols, err := dtmf.ParseSymbols("123")
	require.NoError(t, err)

	enc := dtmf.NewEncoder(symbols, sampleRate, 0.1)
	samples, err := mrrp.ReadToEnd(enc)
	require.NoError(t, err)
	assert.Equal(t, 3*800, samples.Length())
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	const sampleRate = 8000
	symbols, err := dtmf.ParseSymbols("1590")
	require.NoError(t, err)

	enc := dtmf.NewEncoder(symbols, sampleRate, 0.2)

	decoder := dtmf.NewDecoder(dtmf.DecoderConfig{
		SampleRate:        sampleRate,
		WindowLength:      400,
		Threshold:         50,
		MinSilenceWindows: 1,
	})

	var decoded []dtmf.Symbol
	buf := make(mrrp.SamplesC64, 256)
	for {
		n, err := enc.Read(buf)
		for i := 0; i < n; i++ {
			if symbol, ok := decoder.Process(real(buf[i])); ok {
				decoded = append(decoded, symbol)
			}
		}
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}

	require.Len(t, decoded, len(symbols))
	for i, symbol := range symbols {
		assert.Equal(t, symbol, decoded[i])
	}
}
