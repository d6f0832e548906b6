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

// Package selection implements the selection engine (spec.md §4.4): a
// comma-separated list of literal or path selectors, evaluated against
// a record as the Cartesian product of their per-selector value
// sequences.
package selection

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gbv/pica"
	"github.com/gbv/pica/path"
)

// DefaultSeparator is the default join separator for --squash/--merge.
const DefaultSeparator = "|"

// Selector is either a literal byte-string, emitted verbatim, or a
// compiled path (spec.md §4.4).
type Selector interface {
	// Source returns the original selector text, for diagnostics.
	Source() string
	Values(r pica.Record, opts path.Options) [][]byte
}

// Literal is a selector that always emits its Value once, regardless
// of the record.
type Literal struct {
	Value []byte
}

func (l Literal) Source() string { return string(l.Value) }

func (l Literal) Values(pica.Record, path.Options) [][]byte {
	return [][]byte{l.Value}
}

// PathSelector wraps a compiled path.Path as a Selector.
type PathSelector struct {
	Path path.Path
	Src  string
}

func (p PathSelector) Source() string { return p.Src }

func (p PathSelector) Values(r pica.Record, opts path.Options) [][]byte {
	return p.Path.Values(r, opts)
}

// EmptyPolicy governs what Selection.Rows does when a selector yields
// zero values for a given record (spec.md §4.4).
type EmptyPolicy int

const (
	// SuppressRow drops the record's row entirely ("no-empty-columns").
	SuppressRow EmptyPolicy = iota
	// EmptyRowsOK emits one row with an empty cell for that selector.
	EmptyRowsOK
)

// Selection is a compiled comma-separated selector list plus its
// modifiers.
type Selection struct {
	Selectors   []Selector
	EmptyPolicy EmptyPolicy
	Squash      bool
	SquashSep   string
	Merge       bool
	MergeSep    string
}

func (s Selection) squashSep() []byte {
	if s.SquashSep == "" {
		return []byte(DefaultSeparator)
	}
	return []byte(s.SquashSep)
}

func (s Selection) mergeSep() []byte {
	if s.MergeSep == "" {
		return []byte(DefaultSeparator)
	}
	return []byte(s.MergeSep)
}

// Rows evaluates the selection against r, returning the Cartesian
// product of its selectors' value sequences, after applying --squash
// and --merge if configured.
func (s Selection) Rows(r pica.Record, opts path.Options) [][][]byte {
	if len(s.Selectors) == 0 {
		return nil
	}
	columns := make([][][]byte, len(s.Selectors))
	for i, sel := range s.Selectors {
		vals := sel.Values(r, opts)
		if len(vals) == 0 {
			if s.EmptyPolicy != EmptyRowsOK {
				return nil
			}
			vals = [][]byte{{}}
		}
		if s.Squash {
			vals = [][]byte{bytes.Join(vals, s.squashSep())}
		}
		columns[i] = vals
	}

	it := NewRowIterator(columns)
	var rows [][][]byte
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		rows = append(rows, row)
	}

	if s.Merge {
		rows = s.mergeRows(rows)
	}
	return rows
}

func (s Selection) mergeRows(rows [][][]byte) [][][]byte {
	if len(rows) <= 1 {
		return rows
	}
	width := len(rows[0])
	merged := make([][]byte, width)
	sep := s.mergeSep()
	for col := 0; col < width; col++ {
		parts := make([][]byte, len(rows))
		for i, row := range rows {
			parts[i] = row[col]
		}
		merged[col] = bytes.Join(parts, sep)
	}
	return [][][]byte{merged}
}

// Parse compiles a comma-separated selection expression. A selector
// token quoted with "'" or "\"" is a Literal; anything else is parsed
// as a path expression.
func Parse(expr string) (Selection, error) {
	tokens, err := splitTopLevel(expr)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Selectors: make([]Selector, len(tokens))}
	for i, tok := range tokens {
		s, err := parseSelector(tok)
		if err != nil {
			return Selection{}, err
		}
		sel.Selectors[i] = s
	}
	return sel, nil
}

func parseSelector(tok string) (Selector, error) {
	trimmed := strings.TrimSpace(tok)
	if len(trimmed) >= 2 && (trimmed[0] == '\'' || trimmed[0] == '"') && trimmed[len(trimmed)-1] == trimmed[0] {
		return Literal{Value: []byte(trimmed[1 : len(trimmed)-1])}, nil
	}
	p, err := path.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	return PathSelector{Path: p, Src: trimmed}, nil
}

// splitTopLevel splits expr on commas that are not nested inside
// quotes, parens or braces.
func splitTopLevel(expr string) ([]string, error) {
	var tokens []string
	depth := 0
	start := 0
	i := 0
	for i < len(expr) {
		switch expr[i] {
		case '\'', '"':
			quote := expr[i]
			i++
			for i < len(expr) && expr[i] != quote {
				if expr[i] == '\\' {
					i++
				}
				i++
			}
		case '(', '{':
			depth++
		case ')', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("selection: unbalanced %q in %q", expr[i], expr)
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, expr[start:i])
				start = i + 1
			}
		}
		i++
	}
	if depth != 0 {
		return nil, fmt.Errorf("selection: unbalanced groups in %q", expr)
	}
	tokens = append(tokens, expr[start:])
	return tokens, nil
}
