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

// Package frequency implements the frequency counter (spec.md §4.7):
// an ordered count of value tuples produced by the selection engine,
// with --unique, --limit, --threshold and --reverse semantics.
package frequency

import (
	"bytes"
	"sort"
)

const keySep = "\x00"

// Row is one value tuple, as produced by selection.Selection.Rows.
type Row = [][]byte

// Counter accumulates value tuples into an ordered frequency table. The
// zero value is ready to use.
type Counter struct {
	// Unique de-duplicates rows within a single call to Add before
	// incrementing, so a record whose Cartesian product repeats a row
	// (e.g. via squash/merge) contributes at most once per distinct
	// row, per spec.md §4.7.
	Unique bool

	counts map[string]int
	values map[string]Row
	order  []string // first-seen order, for a stable initial ordering
}

func (c *Counter) ensure() {
	if c.counts == nil {
		c.counts = make(map[string]int)
		c.values = make(map[string]Row)
	}
}

func rowKey(row Row) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = string(v)
	}
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += keySep
		}
		key += p
	}
	return key
}

// Add accumulates the rows produced for a single record. In Unique
// mode, rows are first de-duplicated against each other (not against
// rows from earlier Add calls) before each distinct row increments its
// count by one.
func (c *Counter) Add(rows []Row) {
	c.ensure()
	if c.Unique {
		seen := make(map[string]bool, len(rows))
		deduped := rows[:0:0]
		for _, row := range rows {
			k := rowKey(row)
			if seen[k] {
				continue
			}
			seen[k] = true
			deduped = append(deduped, row)
		}
		rows = deduped
	}
	for _, row := range rows {
		k := rowKey(row)
		if _, ok := c.counts[k]; !ok {
			c.values[k] = row
			c.order = append(c.order, k)
		}
		c.counts[k]++
	}
}

// Entry is one row of frequency output.
type Entry struct {
	Value Row
	Count int
}

// Options governs how Results post-processes the accumulated counts.
type Options struct {
	// Limit caps the number of rows returned to the top N, 0 meaning
	// unlimited.
	Limit int
	// Threshold drops rows whose count is below this value.
	Threshold int
	// Reverse sorts by count ascending instead of descending.
	Reverse bool
}

// Results returns the accumulated entries sorted by count descending
// (ascending if Reverse), then by value ascending lexicographically,
// stably, after applying Threshold and Limit.
func (c *Counter) Results(opts Options) []Entry {
	c.ensure()
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		count := c.counts[k]
		if count < opts.Threshold {
			continue
		}
		entries = append(entries, Entry{Value: c.values[k], Count: count})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			if opts.Reverse {
				return entries[i].Count < entries[j].Count
			}
			return entries[i].Count > entries[j].Count
		}
		return compareRows(entries[i].Value, entries[j].Value) < 0
	})

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries
}

// compareRows orders two rows lexicographically, column by column.
func compareRows(a, b Row) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := bytes.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
