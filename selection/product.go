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

package selection

// RowIterator lazily walks the Cartesian product of a set of
// per-selector value columns, producing one row at a time — spec.md
// §4.4's "lazy value streams" design note. Only the current odometer
// position is kept between calls; no intermediate row slice beyond
// the one returned is ever materialized.
type RowIterator struct {
	columns [][][]byte
	idx     []int
	done    bool
}

// NewRowIterator builds an iterator over columns; if any column is
// empty the product is empty and the iterator is immediately done.
func NewRowIterator(columns [][][]byte) *RowIterator {
	for _, c := range columns {
		if len(c) == 0 {
			return &RowIterator{done: true}
		}
	}
	return &RowIterator{columns: columns, idx: make([]int, len(columns))}
}

// Next returns the next row and true, or (nil, false) once the
// product is exhausted. Rows are emitted in lexicographic order over
// the product of per-selector emission orders (spec.md §4.4), the
// last selector varying fastest.
func (it *RowIterator) Next() ([][]byte, bool) {
	if it.done {
		return nil, false
	}
	row := make([][]byte, len(it.columns))
	for i, c := range it.columns {
		row[i] = c[it.idx[i]]
	}
	if len(it.idx) == 0 {
		it.done = true
		return row, true
	}
	for i := len(it.idx) - 1; i >= 0; i-- {
		it.idx[i]++
		if it.idx[i] < len(it.columns[i]) {
			break
		}
		it.idx[i] = 0
		if i == 0 {
			it.done = true
		}
	}
	return row, true
}
