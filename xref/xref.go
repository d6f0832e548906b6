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

// Package xref implements the cross-reference (link) checker: given
// the set of values a source path produces across a stream (e.g. every
// "065R$9") and the set a target path produces (e.g. every "003@$0"),
// it reports which source values have no matching target — a pure set
// operation, no cycle detection needed (spec.md §9).
package xref

import (
	"bytes"
	"sort"
)

// sortedUnique returns values sorted and de-duplicated; values is not
// mutated.
func sortedUnique(values [][]byte) [][]byte {
	out := make([][]byte, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i], out[j]) < 0 })

	deduped := out[:0:0]
	for i, v := range out {
		if i == 0 || !bytes.Equal(v, out[i-1]) {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

// Missing returns the sorted, de-duplicated subset of sourceValues
// that does not occur anywhere in targetValues — the dangling
// references a link check surfaces (spec.md §9).
func Missing(sourceValues, targetValues [][]byte) [][]byte {
	src := sortedUnique(sourceValues)
	tgt := sortedUnique(targetValues)

	var missing [][]byte
	i, j := 0, 0
	for i < len(src) {
		if j >= len(tgt) {
			missing = append(missing, src[i])
			i++
			continue
		}
		switch c := bytes.Compare(src[i], tgt[j]); {
		case c == 0:
			i++
			j++
		case c < 0:
			missing = append(missing, src[i])
			i++
		default:
			j++
		}
	}
	return missing
}

// Collector accumulates values across a stream for one side of a
// cross-reference check (either the source or the target path), so
// callers don't need to know the final slice size up front.
type Collector struct {
	values [][]byte
}

// Add appends one record's path.Path.Values result.
func (c *Collector) Add(values [][]byte) {
	c.values = append(c.values, values...)
}

// Values returns every value accumulated so far.
func (c *Collector) Values() [][]byte {
	return c.values
}
