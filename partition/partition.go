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

// Package partition implements the file-per-key writer shared by the
// `partition` and `split` commands (SPEC_FULL.md §4.11): records are
// routed to one output file per key, opened lazily on first use and
// kept open for the remainder of the run, matching the
// single-threaded, one-file-descriptor-per-partition model the
// commands need for deterministic write order (spec.md §5).
package partition

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gbv/pica"
)

// Keyer assigns a partition key to a record. `partition` keys by a
// matched path/matcher value; `split --by` keys by a path's first
// value; `split --size` keys by a rotating record counter (SizeKeyer).
type Keyer interface {
	Key(r pica.Record) string
}

// KeyerFunc adapts a function to a Keyer.
type KeyerFunc func(r pica.Record) string

func (f KeyerFunc) Key(r pica.Record) string { return f(r) }

// SizeKeyer assigns sequential records to numbered partitions of at
// most Size records each, for `split --size` (SPEC_FULL.md §4.11).
type SizeKeyer struct {
	Size int

	count int
	part  int
}

// Key implements Keyer.
func (k *SizeKeyer) Key(pica.Record) string {
	if k.Size <= 0 {
		return "0"
	}
	if k.count == k.Size {
		k.count = 0
		k.part++
	}
	k.count++
	return strconv.Itoa(k.part)
}

// Encoder writes a single record to w.
type Encoder func(w io.Writer, r pica.Record) error

// NormalizedEncoder is an Encoder that writes r in the normalized wire
// format via pica.Encode.
func NormalizedEncoder(w io.Writer, r pica.Record) error {
	_, err := pica.Encode(w, r)
	return err
}

// Writer routes records to one file per partition key under Dir,
// naming each file by substituting the (sanitized) key into Pattern
// (a fmt verb, e.g. "part-%s.pica"). Files are created lazily and
// stay open until Close.
type Writer struct {
	Dir     string
	Pattern string
	Encode  Encoder

	files map[string]*os.File
}

// NewWriter constructs a Writer. pattern must contain exactly one "%s"
// verb for the sanitized key.
func NewWriter(dir, pattern string, encode Encoder) *Writer {
	return &Writer{Dir: dir, Pattern: pattern, Encode: encode, files: make(map[string]*os.File)}
}

// sanitizeKey replaces path separators and other filesystem-hostile
// bytes in a partition key, since keys are often derived from
// arbitrary subfield values.
func sanitizeKey(key string) string {
	if key == "" {
		key = "_"
	}
	replacer := strings.NewReplacer(
		"/", "_",
		string(filepath.Separator), "_",
		"\x00", "_",
	)
	return replacer.Replace(key)
}

func (w *Writer) fileFor(key string) (*os.File, error) {
	if f, ok := w.files[key]; ok {
		return f, nil
	}
	name := fmt.Sprintf(w.Pattern, sanitizeKey(key))
	f, err := os.Create(filepath.Join(w.Dir, name))
	if err != nil {
		return nil, err
	}
	w.files[key] = f
	return f, nil
}

// Write encodes r into the file for key, creating it if this is the
// first record for that key.
func (w *Writer) Write(key string, r pica.Record) error {
	f, err := w.fileFor(key)
	if err != nil {
		return err
	}
	return w.Encode(f, r)
}

// WriteKeyed routes r through k to determine its key, then Writes it.
func (w *Writer) WriteKeyed(k Keyer, r pica.Record) error {
	return w.Write(k.Key(r), r)
}

// Close closes every open partition file, returning the first error
// encountered, if any, after attempting to close them all.
func (w *Writer) Close() error {
	var first error
	for _, f := range w.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Keys returns the partition keys seen so far, in no particular order.
func (w *Writer) Keys() []string {
	keys := make([]string, 0, len(w.files))
	for k := range w.files {
		keys = append(keys, k)
	}
	return keys
}
