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

// Package filterset implements the allow/deny list files of spec.md
// §6.4: a CSV (optionally gzip-compressed) file with a "ppn" or "idn"
// column, loaded once into a set membership test.
package filterset

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode selects whether a Set's membership test is an allow list or a
// deny list (spec.md §6.4).
type Mode int

const (
	// Allow admits a record iff its key IS in the set.
	Allow Mode = iota
	// Deny admits a record iff its key is NOT in the set.
	Deny
)

// Set is a loaded allow/deny list.
type Set struct {
	Mode   Mode
	values map[string]struct{}
}

// Eligible reports whether key (typically a record's PPN) passes the
// set under its configured Mode.
func (s *Set) Eligible(key []byte) bool {
	_, in := s.values[string(key)]
	if s.Mode == Allow {
		return in
	}
	return !in
}

// Len returns the number of distinct keys loaded.
func (s *Set) Len() int {
	return len(s.values)
}

// Load reads a CSV allow/deny list from path (transparently
// gzip-decompressed if it ends in ".gz") into a Set. column overrides
// the column name to use; if empty, "ppn" is preferred and "idn" used
// as a fallback (spec.md §6.4).
func Load(path string, mode Mode, column string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	return LoadFrom(r, mode, column)
}

// LoadFrom reads a CSV allow/deny list from an already-open reader,
// for callers that have their own file/decompression handling.
func LoadFrom(r io.Reader, mode Mode, column string) (*Set, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("filterset: reading header: %w", err)
	}

	col, err := columnIndex(header, column)
	if err != nil {
		return nil, err
	}

	values := make(map[string]struct{})
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(record) {
			continue
		}
		values[record[col]] = struct{}{}
	}

	return &Set{Mode: mode, values: values}, nil
}

// columnIndex resolves the column to key on: an explicit override if
// given, else "ppn" if present, else "idn" (spec.md §6.4).
func columnIndex(header []string, override string) (int, error) {
	if override != "" {
		for i, h := range header {
			if h == override {
				return i, nil
			}
		}
		return 0, fmt.Errorf("filterset: column %q not found in header %v", override, header)
	}
	for i, h := range header {
		if h == "ppn" {
			return i, nil
		}
	}
	for i, h := range header {
		if h == "idn" {
			return i, nil
		}
	}
	return 0, fmt.Errorf("filterset: neither %q nor %q column found in header %v", "ppn", "idn", header)
}
