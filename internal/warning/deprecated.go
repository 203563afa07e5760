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

package warning

import (
	"log"
	"runtime"
)

// Deprecated marks something as subject to removal.
func Deprecated(name string) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "<unknown>"
	}

	log.Printf(
		"%s:%d: %s is deprecated! It's subject to removal, please migrate off this API",
		file, line,
		name,
	)
}

// Experimental marks something as not yet stable, gated behind a build tag.
func Experimental(name string) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "<unknown>"
	}

	log.Printf(
		"%s:%d: %s is experimental! It may change or be removed without notice",
		file, line,
		name,
	)
}

// vim: foldmethod=marker
