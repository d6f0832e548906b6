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

// Package matcher implements the boolean predicate language over
// records (spec.md §4.3): tag/occurrence-scoped field matchers,
// subfield comparison operators, existential/universal quantifiers,
// cardinality constraints, and boolean connectives over all of the
// above. Grounded on the compiled-AST filter compilers in
// other_examples/4c1c293a_rumere-ldap__filter.go.go (LDAP filter tree)
// and the sourcegraph searcher's matcher composition.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gbv/pica"
	"github.com/gbv/pica/fieldsel"
)

// CompareOp is one of the leaf comparison operators of spec.md §4.3's
// Op production.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpPrefix
	OpNotPrefix
	OpSuffix
	OpNotSuffix
	OpContains
	OpRegexMatch
	OpRegexNotMatch
	OpSimilar
	OpIn
	OpNotIn
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpPrefix:
		return "=^"
	case OpNotPrefix:
		return "!^"
	case OpSuffix:
		return "=$"
	case OpNotSuffix:
		return "!$"
	case OpContains:
		return "=?"
	case OpRegexMatch:
		return "=~"
	case OpRegexNotMatch:
		return "!~"
	case OpSimilar:
		return "=*"
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// CmpOp is the ordering comparator used by cardinality constraints
// ("#CODE op N").
type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpLe
	CmpGt
	CmpGe
	CmpEq
	CmpNe
)

func (op CmpOp) apply(count, n int) bool {
	switch op {
	case CmpLt:
		return count < n
	case CmpLe:
		return count <= n
	case CmpGt:
		return count > n
	case CmpGe:
		return count >= n
	case CmpEq:
		return count == n
	case CmpNe:
		return count != n
	default:
		return false
	}
}

// RecordMatcher is a compiled predicate over a whole record.
type RecordMatcher interface {
	Eval(r pica.Record, opts Options) bool
}

// FieldPredicate is a compiled predicate over the subfields of the set
// of fields an enclosing FieldMatcher selected.
type FieldPredicate interface {
	Eval(fields []pica.Field, opts Options) bool
}

// --- record-level boolean connectives ---

type andMatcher struct{ left, right RecordMatcher }

func (m andMatcher) Eval(r pica.Record, opts Options) bool {
	return m.left.Eval(r, opts) && m.right.Eval(r, opts)
}

type orMatcher struct{ left, right RecordMatcher }

func (m orMatcher) Eval(r pica.Record, opts Options) bool {
	return m.left.Eval(r, opts) || m.right.Eval(r, opts)
}

type xorMatcher struct{ left, right RecordMatcher }

func (m xorMatcher) Eval(r pica.Record, opts Options) bool {
	return m.left.Eval(r, opts) != m.right.Eval(r, opts)
}

type notMatcher struct{ inner RecordMatcher }

func (m notMatcher) Eval(r pica.Record, opts Options) bool {
	return !m.inner.Eval(r, opts)
}

// And combines two matchers with "&&", for CLI composability
// (spec.md §4.3's "Composability" paragraph: --and/--or/--not).
func And(a, b RecordMatcher) RecordMatcher { return andMatcher{a, b} }

// Or combines two matchers with "||".
func Or(a, b RecordMatcher) RecordMatcher { return orMatcher{a, b} }

// Not negates a matcher, used to implement CLI "--not <expr>" as
// "A && !B" per spec.md §4.3.
func Not(a RecordMatcher) RecordMatcher { return notMatcher{a} }

// --- field matcher (leaf of RecordMatcher) ---

// FieldMatcher selects fields by tag/occurrence and applies either a
// bare existence check or a FieldPredicate to their subfields.
type FieldMatcher struct {
	Tag           fieldsel.TagMatcher
	Occurrence    fieldsel.OccMatcher
	HasOccurrence bool
	Exists        bool // true for the bare "?" form
	Body          FieldPredicate
}

func (m FieldMatcher) selectFields(r pica.Record) []pica.Field {
	var out []pica.Field
	for _, f := range r.Fields() {
		if !m.Tag.Matches(f.Tag) {
			continue
		}
		if m.HasOccurrence {
			if !m.Occurrence.Matches(f.Occurrence) {
				continue
			}
		} else if f.Occurrence.Value() != 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (m FieldMatcher) Eval(r pica.Record, opts Options) bool {
	fields := m.selectFields(r)
	if m.Exists {
		return len(fields) > 0
	}
	return m.Body.Eval(fields, opts)
}

// --- subfield-level boolean connectives ---

type andPredicate struct{ left, right FieldPredicate }

func (p andPredicate) Eval(fields []pica.Field, opts Options) bool {
	return p.left.Eval(fields, opts) && p.right.Eval(fields, opts)
}

type orPredicate struct{ left, right FieldPredicate }

func (p orPredicate) Eval(fields []pica.Field, opts Options) bool {
	return p.left.Eval(fields, opts) || p.right.Eval(fields, opts)
}

type xorPredicate struct{ left, right FieldPredicate }

func (p xorPredicate) Eval(fields []pica.Field, opts Options) bool {
	return p.left.Eval(fields, opts) != p.right.Eval(fields, opts)
}

type notPredicate struct{ inner FieldPredicate }

func (p notPredicate) Eval(fields []pica.Field, opts Options) bool {
	return !p.inner.Eval(fields, opts)
}

// --- subfield-level leaves ---

type existsPredicate struct{ code pica.SubfieldCode }

func (p existsPredicate) Eval(fields []pica.Field, opts Options) bool {
	for _, f := range fields {
		if f.Count(p.code) > 0 {
			return true
		}
	}
	return false
}

// comparePredicate implements the bare "CODE Op Literal" form: true
// if some subfield of that code, in some matching field, satisfies Op
// (spec.md §4.3's operator table, "some subfield ... has value").
type comparePredicate struct {
	code     pica.SubfieldCode
	op       CompareOp
	literals []string
	regex    *regexp.Regexp
}

func (p comparePredicate) Eval(fields []pica.Field, opts Options) bool {
	for _, f := range fields {
		for _, v := range f.All(p.code) {
			if compareValue(v, p.op, p.literals, p.regex, opts) {
				return true
			}
		}
	}
	return false
}

// forallPredicate implements "∀CODE: Op Literal": every subfield of
// that code, in every matching field, must satisfy Op. Vacuously true
// when no such subfield exists.
type forallPredicate struct {
	code     pica.SubfieldCode
	op       CompareOp
	literals []string
	regex    *regexp.Regexp
}

func (p forallPredicate) Eval(fields []pica.Field, opts Options) bool {
	for _, f := range fields {
		for _, v := range f.All(p.code) {
			if !compareValue(v, p.op, p.literals, p.regex, opts) {
				return false
			}
		}
	}
	return true
}

// cardinalityPredicate implements "#CODE op N": the total count of
// subfields with that code, summed across every matching field,
// stands in relation op to n.
type cardinalityPredicate struct {
	code pica.SubfieldCode
	cmp  CmpOp
	n    int
}

func (p cardinalityPredicate) Eval(fields []pica.Field, opts Options) bool {
	count := 0
	for _, f := range fields {
		count += f.Count(p.code)
	}
	return p.cmp.apply(count, p.n)
}

// --- comparison evaluation ---

// requiresValidUTF8 reports whether opts' pre-processing (normalization
// and/or case folding) assumes valid UTF-8 input.
func requiresValidUTF8(opts Options) bool {
	return opts.Normalization != nil || opts.CaseIgnore
}

func compareValue(value []byte, op CompareOp, literals []string, re *regexp.Regexp, opts Options) bool {
	if requiresValidUTF8(opts) && !utf8.Valid(value) {
		pica.Log.V(1).Info("non-UTF-8 subfield value under normalization/case_ignore, treating comparison as non-match", "op", op.String(), "value", value)
		return false
	}
	sval := prepare(value, opts)
	switch op {
	case OpEq:
		return sval == prepareLiteral(literals[0], opts)
	case OpNe:
		return sval != prepareLiteral(literals[0], opts)
	case OpPrefix:
		return strings.HasPrefix(sval, prepareLiteral(literals[0], opts))
	case OpNotPrefix:
		return !strings.HasPrefix(sval, prepareLiteral(literals[0], opts))
	case OpSuffix:
		return strings.HasSuffix(sval, prepareLiteral(literals[0], opts))
	case OpNotSuffix:
		return !strings.HasSuffix(sval, prepareLiteral(literals[0], opts))
	case OpContains:
		for _, l := range literals {
			if strings.Contains(sval, prepareLiteral(l, opts)) {
				return true
			}
		}
		return false
	case OpRegexMatch:
		return re.MatchString(sval)
	case OpRegexNotMatch:
		return !re.MatchString(sval)
	case OpSimilar:
		return jaroWinkler(sval, prepareLiteral(literals[0], opts)) >= opts.threshold()
	case OpIn:
		for _, l := range literals {
			if sval == prepareLiteral(l, opts) {
				return true
			}
		}
		return false
	case OpNotIn:
		for _, l := range literals {
			if sval == prepareLiteral(l, opts) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func prepareLiteral(s string, opts Options) string {
	return prepare([]byte(s), opts)
}
