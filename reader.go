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

package mrrp

import (
	"fmt"
	"io"

	"hz.tools/rf"
)

var (
	// ErrShortBuffer will return if the number of bytes read was less than the
	// minimum required by the callee.
	ErrShortBuffer error = fmt.Errorf("mrrp: short read")

	// ErrUnexpectedEOF will return if the EOF was reached before parsing was
	// completed.
	ErrUnexpectedEOF error = fmt.Errorf("mrrp: unexpected EOF")
)

// Reader is the interface that wraps the basic Read method.
type Reader interface {
	// Read IQ Samples into the target Samples buffer. There are two return
	// values, an int representing the **IQ** samples (not bytes) read by this
	// function, and any error conditions encountered.
	Read(Samples) (int, error)

	// Get the mrrp.SampleFormat
	SampleFormat() SampleFormat

	// SampleRate will get the number of samples per second that this
	// stream is communicating at.
	SampleRate() uint32
}

// CenterFrequencyReader is an optional capability interface for Readers
// that are tied to a tunable front-end and can report what frequency
// they're currently centered on, without needing the full Sdr interface.
type CenterFrequencyReader interface {
	GetCenterFrequency() (rf.Hz, error)
}

// Closer is the interface that wraps the basic Close method.
type Closer interface {
	Close() error
}

// ReadCloser is the interface that groups the basic Read and Close methods.
type ReadCloser interface {
	Reader
	Closer
}

// ReadFull reads exactly buf.Length() samples from r into buf.
func ReadFull(r Reader, buf Samples) (int, error) {
	return ReadAtLeast(r, buf, buf.Length())
}

type readerWithCloser struct {
	Reader
	closer func() error
}

func (rwc readerWithCloser) Close() error {
	return rwc.closer()
}

// ReaderWithCloser will add a closer to a reader to make an mrrp.ReadCloser
func ReaderWithCloser(r Reader, c func() error) ReadCloser {
	return readerWithCloser{
		Reader: r,
		closer: c,
	}
}

// ReadAtLeast reads from r into buf until it has read at least min samples.
func ReadAtLeast(r Reader, buf Samples, min int) (int, error) {
	if buf.Length() < min {
		return 0, ErrShortBuffer
	}
	var (
		n   int
		err error
	)
	for n < min && err == nil {
		var nn int
		nn, err = r.Read(buf.Slice(n, buf.Length()))
		n += nn
	}
	if n >= min {
		return n, err
	} else if n > 0 && err == io.EOF {
		return n, ErrUnexpectedEOF
	}
	return n, err
}

type multiReader struct {
	readers      []Reader
	idx          int
	err          error
	sampleFormat SampleFormat
	sampleRate   uint32
}

func (mr *multiReader) Read(s Samples) (int, error) {
	if mr.err != nil {
		return 0, mr.err
	}
	i, err := mr.readers[mr.idx].Read(s)
	if err == io.EOF {
		if mr.idx+1 >= len(mr.readers) {
			mr.err = io.EOF
			return i, err
		}
		mr.idx++
		return i, nil
	}

	if err != nil {
		mr.err = err
	}
	return i, err
}

func (mr *multiReader) SampleFormat() SampleFormat {
	return mr.sampleFormat
}

func (mr *multiReader) SampleRate() uint32 {
	return mr.sampleRate
}

// MultiReader will act like `cat`, passing Reads through from one reader
// to the next until the end of the streams.
//
// An io.EOF will be returned if they all return EOF, otherwise the first error
// to be hit will be returned.
func MultiReader(readers ...Reader) (Reader, error) {
	switch len(readers) {
	case 0:
		return nil, fmt.Errorf("mrrp.MultiReader: Must have at least one reader")
	case 1:
		return readers[0], nil
	}

	var (
		sampleFormat SampleFormat = readers[0].SampleFormat()
		sampleRate   uint32       = readers[0].SampleRate()
	)

	for _, reader := range readers[1:] {
		if reader.SampleFormat() != sampleFormat {
			return nil, ErrSampleFormatMismatch
		}
		if reader.SampleRate() != sampleRate {
			return nil, fmt.Errorf("mrrp.MultiReader: Sample rate mismatch")
		}
	}

	return &multiReader{
		readers:      readers,
		idx:          0,
		err:          nil,
		sampleFormat: sampleFormat,
		sampleRate:   sampleRate,
	}, nil
}

// ReadSample reads exactly one sample from r, returning it as a
// single-element Samples buffer of r's native format.
func ReadSample(r Reader) (Samples, error) {
	buf, err := MakeSamples(r.SampleFormat(), 1)
	if err != nil {
		return nil, err
	}
	if _, err := ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadExactly reads exactly n samples from r, returning ErrUnexpectedEOF if
// the stream ends before n samples have been read.
func ReadExactly(r Reader, n int) (Samples, error) {
	buf, err := MakeSamples(r.SampleFormat(), n)
	if err != nil {
		return nil, err
	}
	if _, err := ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadToEnd reads from r until io.EOF, returning every sample read.
func ReadToEnd(r Reader) (Samples, error) {
	const chunk = 32 * 1024

	out, err := MakeSamples(r.SampleFormat(), 0)
	if err != nil {
		return nil, err
	}

	for {
		buf, err := MakeSamples(r.SampleFormat(), chunk)
		if err != nil {
			return nil, err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			grown, cerr := MakeSamples(r.SampleFormat(), out.Length()+n)
			if cerr != nil {
				return nil, cerr
			}
			if _, cerr := CopySamples(grown, out); cerr != nil {
				return nil, cerr
			}
			if _, cerr := CopySamples(grown.Slice(out.Length(), out.Length()+n), buf.Slice(0, n)); cerr != nil {
				return nil, cerr
			}
			out = grown
		}
		if rerr == io.EOF {
			return out, nil
		}
		if rerr != nil {
			return out, rerr
		}
	}
}

// CopyN copies n samples (or until an error) from src to dst.
func CopyN(dst Writer, src Reader, n int64) (int64, error) {
	written, err := copyBuffer(dst, &limitedReader{r: src, n: n}, nil)
	if written == n {
		return n, nil
	}
	if written < n && err == nil {
		err = io.EOF
	}
	return written, err
}

type limitedReader struct {
	r Reader
	n int64
}

func (l *limitedReader) Read(s Samples) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if int64(s.Length()) > l.n {
		s = s.Slice(0, int(l.n))
	}
	n, err := l.r.Read(s)
	l.n -= int64(n)
	return n, err
}

func (l *limitedReader) SampleFormat() SampleFormat {
	return l.r.SampleFormat()
}

func (l *limitedReader) SampleRate() uint32 {
	return l.r.SampleRate()
}

// vim: foldmethod=marker
