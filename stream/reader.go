/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stream implements the streaming driver (spec.md §4.5): a
// single-threaded, single-line-buffered cooperative reader over one or
// more input byte streams, with transparent gzip decompression and
// configurable error recovery.
package stream

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/gbv/pica"
)

// InvalidLine reports a line that failed to decode (spec.md §4.5).
type InvalidLine struct {
	Bytes  []byte
	Reason error
}

func (e *InvalidLine) Error() string {
	return "stream: invalid line: " + e.Reason.Error()
}

func (e *InvalidLine) Unwrap() error {
	return e.Reason
}

// Item is one value produced by Reader.Next: either a successfully
// decoded record or a decode failure, never both.
type Item struct {
	Record pica.BorrowedRecord
	Err    *InvalidLine
}

// Ok reports whether Item carries a successfully decoded record.
func (it Item) Ok() bool {
	return it.Err == nil
}

// Options configures a Reader.
type Options struct {
	// SkipInvalid swallows decode errors and continues with the next
	// line, instead of surfacing them as Items.
	SkipInvalid bool
	// HaltOnFirstError, the default streaming mode, stops iteration
	// after the first decode error is yielded.
	HaltOnFirstError bool
	// Decoder configures the underlying pica.Decoder.
	Decoder pica.DecoderOptions
}

// DefaultOptions mirrors spec.md §4.5's documented default: halt on
// the first decode error.
var DefaultOptions = Options{HaltOnFirstError: true}

// Reader decodes one normalized PICA+ record per line from an
// underlying byte stream. It buffers at most one line at a time and
// is driven by a single-threaded cooperative loop — no concurrency is
// used in the core (spec.md §5).
type Reader struct {
	sc     *bufio.Scanner
	dec    *pica.Decoder
	opts   Options
	closer io.Closer
	halted bool
	err    error
}

// NewReader wraps r, decoding one line at a time.
func NewReader(r io.Reader, opts Options) *Reader {
	sc := bufio.NewScanner(r)
	max := opts.Decoder.MaxLineLength
	if max == 0 {
		max = pica.DefaultMaxLineLength
	}
	sc.Buffer(make([]byte, 0, 64*1024), max)
	return &Reader{sc: sc, dec: pica.NewDecoder(opts.Decoder), opts: opts}
}

// Open opens path for streaming: "-" denotes stdin, and a ".gz" suffix
// transparently gzip-decompresses the stream (spec.md §4.5).
func Open(path string, opts Options) (*Reader, error) {
	var rc io.ReadCloser
	if path == "-" {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rc = f
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r := NewReader(gz, opts)
		r.closer = closerFunc(func() error {
			gzErr := gz.Close()
			fileErr := rc.Close()
			if gzErr != nil {
				return gzErr
			}
			return fileErr
		})
		return r, nil
	}

	r := NewReader(rc, opts)
	r.closer = rc
	return r, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Close releases the underlying stream, if Open opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Next advances the reader and returns the next Item, or (Item{},
// false) once the stream is exhausted or halted. Empty lines decode
// as EmptyLine and are silently skipped, per spec.md §4.1.
func (r *Reader) Next() (Item, bool) {
	if r.halted {
		return Item{}, false
	}
	for r.sc.Scan() {
		line := r.sc.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := r.dec.Decode(line)
		if err == nil {
			return Item{Record: rec}, true
		}
		if r.opts.SkipInvalid {
			continue
		}
		invalid := &InvalidLine{Bytes: append([]byte(nil), line...), Reason: err}
		if r.opts.HaltOnFirstError {
			r.halted = true
		}
		return Item{Err: invalid}, true
	}
	r.err = r.sc.Err()
	return Item{}, false
}

// Err returns the underlying I/O error that stopped iteration, if any
// (distinct from decode errors, which are reported via Item.Err).
func (r *Reader) Err() error {
	return r.err
}
