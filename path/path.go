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

// Package path implements the path language (spec.md §4.2): a compact
// expression DSL addressing subfield values within a record, with tag
// wildcards, occurrence ranges, subfield code sets and an optional
// inline field filter.
package path

import (
	"github.com/gbv/pica/fieldsel"
	"github.com/gbv/pica/matcher"
)

// Selector is a single parenthesised-or-bare subfield-code production:
// SubfieldCodes | "(" SubfieldCodes ("," SubfieldCodes)* ")". A bare
// selector has exactly one element in Tuple; a parenthesised one has
// one per comma-separated position, and Eval emits value tuples
// (spec.md §4.2 rule 3) across them.
type Selector struct {
	Tuple []fieldsel.CodeSet
}

// Path is one compiled path expression.
type Path struct {
	Tag        fieldsel.TagMatcher
	Occurrence fieldsel.OccMatcher
	// HasOccurrence reports whether an OccMatcher was given explicitly.
	// When false, the path matches only fields whose occurrence is
	// absent or equivalent to "00" — see DESIGN.md's "omitted
	// OccMatcher default" decision.
	HasOccurrence bool
	Selector      Selector
	// Filter is the optional embedded "{ sel | matcher }" predicate,
	// evaluated against a single matching field's subfields. Nil when
	// absent.
	Filter matcher.FieldPredicate
}
