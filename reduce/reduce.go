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

// Package reduce implements the post-match field reducer (spec.md
// §4.6): rewriting a record to keep or discard fields matching a list
// of (tag-matcher, occurrence-matcher) pairs, preserving field order.
package reduce

import (
	"github.com/gbv/pica"
	"github.com/gbv/pica/fieldsel"
)

// Rule is one (tag-matcher, occurrence-matcher) pair. An absent
// Occurrence matches any occurrence — unlike matcher.FieldMatcher and
// path.Path, a reduce Rule has no subfield- or value-level selection,
// so there is no ambiguity to resolve by falling back to "absent
// only"; the reducer is purely structural.
type Rule struct {
	Tag        fieldsel.TagMatcher
	Occurrence fieldsel.OccMatcher
}

func (r Rule) matches(f pica.Field) bool {
	if !r.Tag.Matches(f.Tag) {
		return false
	}
	if r.Occurrence == (fieldsel.OccMatcher{}) {
		return true
	}
	return r.Occurrence.Matches(f.Occurrence)
}

// Reducer rewrites a record's field list under exactly one mode: Keep
// retains only matching fields, Discard drops them.
type Reducer struct {
	Rules []Rule
	// Discard selects discard mode; otherwise the reducer operates in
	// keep mode.
	Discard bool
}

// matchesAny reports whether any rule matches f.
func (red Reducer) matchesAny(f pica.Field) bool {
	for _, r := range red.Rules {
		if r.matches(f) {
			return true
		}
	}
	return false
}

// Apply rewrites r per the reducer's rules, preserving field order. It
// returns (rewritten, true) normally, or (zero, false) when the result
// would have no fields at all — such records are dropped from the
// output, per spec.md §4.6.
func (red Reducer) Apply(r pica.Record) (pica.OwnedRecord, bool) {
	fields := r.Fields()
	kept := make([]pica.Field, 0, len(fields))
	for _, f := range fields {
		matched := red.matchesAny(f)
		if matched == !red.Discard {
			kept = append(kept, f.Clone())
		}
	}
	out, err := pica.NewOwnedRecord(kept)
	if err != nil {
		return pica.OwnedRecord{}, false
	}
	return out, true
}
