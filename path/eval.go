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

package path

import (
	"github.com/gbv/pica"
	"github.com/gbv/pica/fieldsel"
	"github.com/gbv/pica/matcher"
)

// Options carries matcher options used to evaluate an embedded "|
// Matcher" filter; the zero value applies matcher's documented
// defaults (spec.md §9: 0.75 similarity threshold, no normalization).
type Options = matcher.Options

// matchingFields returns, in document order, the fields that satisfy
// p's tag/occurrence constraints and, if present, its embedded filter
// (spec.md §4.2 rules 1-2).
func (p Path) matchingFields(r pica.Record, opts Options) []pica.Field {
	var out []pica.Field
	for _, f := range r.Fields() {
		if !p.Tag.Matches(f.Tag) {
			continue
		}
		if p.HasOccurrence {
			if !p.Occurrence.Matches(f.Occurrence) {
				continue
			}
		} else if f.Occurrence.Value() != 0 {
			continue
		}
		if p.Filter != nil && !p.Filter.Eval([]pica.Field{f}, opts) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Tuples evaluates p against r, returning, in order, one row per
// emission. A bare (non-parenthesised) selector yields one
// single-element row per matching subfield value (rule 3); a
// parenthesised selector yields the Cartesian product, within each
// matching field, of its per-position value lists, padding absent
// positions with an empty value to preserve tuple arity (rule 4).
func (p Path) Tuples(r pica.Record, opts Options) [][][]byte {
	var out [][][]byte
	for _, f := range p.matchingFields(r, opts) {
		out = append(out, tupleRowsForField(f, p.Selector.Tuple)...)
	}
	return out
}

// Values is a convenience for single-selector (non-tuple) paths: it
// returns the first column of Tuples, i.e. one value per emission.
func (p Path) Values(r pica.Record, opts Options) [][]byte {
	rows := p.Tuples(r, opts)
	out := make([][]byte, len(rows))
	for i, row := range rows {
		out[i] = row[0]
	}
	return out
}

func tupleRowsForField(f pica.Field, tuple []fieldsel.CodeSet) [][][]byte {
	if len(tuple) == 1 {
		var rows [][][]byte
		for _, sf := range f.Subfields {
			if tuple[0].Matches(sf.Code) {
				rows = append(rows, [][]byte{sf.Value})
			}
		}
		return rows
	}

	columns := make([][][]byte, len(tuple))
	for i, cs := range tuple {
		for _, sf := range f.Subfields {
			if cs.Matches(sf.Code) {
				columns[i] = append(columns[i], sf.Value)
			}
		}
		if len(columns[i]) == 0 {
			columns[i] = [][]byte{{}}
		}
	}
	return cartesianProduct(columns)
}

// cartesianProduct computes the Cartesian product of columns,
// preserving lexicographic row order over the per-column emission
// orders (spec.md §4.4's row-ordering rule, reused here for tuples).
func cartesianProduct(columns [][][]byte) [][][]byte {
	rows := [][][]byte{{}}
	for _, col := range columns {
		var next [][][]byte
		for _, row := range rows {
			for _, v := range col {
				r := make([][]byte, len(row)+1)
				copy(r, row)
				r[len(row)] = v
				next = append(next, r)
			}
		}
		rows = next
	}
	return rows
}
