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

// Package fieldsel implements the TagMatcher/OccMatcher sub-grammar
// shared, byte-for-byte, by both the path language (spec.md §4.2) and
// the matcher language's FieldMatcher prefix (spec.md §4.3). Factoring
// it out means the two parsers agree on tag/occurrence semantics by
// construction rather than by convention.
package fieldsel

import (
	"fmt"

	"github.com/gbv/pica"
)

// TagPosition matches one of the 4 positions of a Tag: a literal byte,
// a character class ("[...]"), or the wildcard (".").
type TagPosition struct {
	Wildcard bool
	Literal  byte
	Class    []byte // non-nil for a "[...]" class
}

func (p TagPosition) Matches(b byte) bool {
	if p.Wildcard {
		return true
	}
	if p.Class != nil {
		for _, c := range p.Class {
			if c == b {
				return true
			}
		}
		return false
	}
	return p.Literal == b
}

// TagMatcher matches a Tag's 4 positions independently.
type TagMatcher [4]TagPosition

// Matches reports whether t satisfies every position of m.
func (m TagMatcher) Matches(t pica.Tag) bool {
	for i := 0; i < 4; i++ {
		if !m[i].Matches(t[i]) {
			return false
		}
	}
	return true
}

func (m TagMatcher) String() string {
	s := make([]byte, 0, 4)
	for _, p := range m {
		switch {
		case p.Wildcard:
			s = append(s, '.')
		case p.Class != nil:
			s = append(s, '[')
			s = append(s, p.Class...)
			s = append(s, ']')
		default:
			s = append(s, p.Literal)
		}
	}
	return string(s)
}

// ParseTagMatcher parses a 4-character tag matcher expression.
func ParseTagMatcher(s string) (TagMatcher, error) {
	m, pos, err := ScanTagMatcher(s, 0)
	if err != nil {
		return m, err
	}
	if pos != len(s) {
		return m, fmt.Errorf("fieldsel: trailing characters in tag matcher %q", s)
	}
	return m, nil
}

// ScanTagMatcher scans exactly one TagMatcher (4 positions) starting
// at byte offset pos in s, returning the matcher and the offset of the
// first byte after it. Used by parsers that embed a TagMatcher inline
// within a larger expression (path selectors, field matchers) and need
// to know where it ends.
func ScanTagMatcher(s string, pos int) (TagMatcher, int, error) {
	var m TagMatcher
	for i := 0; i < 4; i++ {
		if pos >= len(s) {
			return m, pos, fmt.Errorf("fieldsel: tag matcher %q too short", s)
		}
		switch s[pos] {
		case '.':
			m[i] = TagPosition{Wildcard: true}
			pos++
		case '[':
			end := pos + 1
			for end < len(s) && s[end] != ']' {
				end++
			}
			if end >= len(s) {
				return m, pos, fmt.Errorf("fieldsel: unterminated class in %q", s)
			}
			m[i] = TagPosition{Class: []byte(s[pos+1 : end])}
			pos = end + 1
		default:
			m[i] = TagPosition{Literal: s[pos]}
			pos++
		}
	}
	return m, pos, nil
}

// OccMatcher matches an Occurrence: any ("*"), a single value, or an
// inclusive range.
type OccMatcher struct {
	any      bool
	lo, hi   uint16
	isSingle bool
}

// AnyOccurrence matches every occurrence, present or absent.
var AnyOccurrence = OccMatcher{any: true}

// ParseOccMatcher parses the text following "/" in a path or field
// matcher: "*", "DIGITS", or "DIGITS-DIGITS".
func ParseOccMatcher(s string) (OccMatcher, error) {
	if s == "*" {
		return AnyOccurrence, nil
	}
	lo, hi, single, err := parseRange(s)
	if err != nil {
		return OccMatcher{}, err
	}
	return OccMatcher{lo: lo, hi: hi, isSingle: single}, nil
}

func parseRange(s string) (lo, hi uint16, single bool, err error) {
	dash := -1
	for i := 1; i < len(s); i++ { // occurrences are unsigned, no leading '-'
		if s[i] == '-' {
			dash = i
			break
		}
	}
	if dash < 0 {
		v, err := parseUint(s)
		if err != nil {
			return 0, 0, false, err
		}
		return v, v, true, nil
	}
	lo, err = parseUint(s[:dash])
	if err != nil {
		return 0, 0, false, err
	}
	hi, err = parseUint(s[dash+1:])
	if err != nil {
		return 0, 0, false, err
	}
	return lo, hi, false, nil
}

// ScanOccMatcher scans an OccMatcher body (the text following "/")
// starting at pos: "*", a digit run, or two digit runs joined by "-".
// It stops at the first byte that cannot extend the production,
// returning the matcher and the offset just past it.
func ScanOccMatcher(s string, pos int) (OccMatcher, int, error) {
	if pos < len(s) && s[pos] == '*' {
		return AnyOccurrence, pos + 1, nil
	}
	start := pos
	for pos < len(s) && IsDigitByte(s[pos]) {
		pos++
	}
	if pos == start {
		return OccMatcher{}, pos, fmt.Errorf("fieldsel: expected occurrence digits at offset %d in %q", pos, s)
	}
	lo, err := parseUint(s[start:pos])
	if err != nil {
		return OccMatcher{}, pos, err
	}
	if pos < len(s) && s[pos] == '-' {
		dashPos := pos
		pos++
		hiStart := pos
		for pos < len(s) && IsDigitByte(s[pos]) {
			pos++
		}
		if pos == hiStart {
			// no digits after '-': the '-' is not part of this production
			return OccMatcher{lo: lo, hi: lo, isSingle: true}, dashPos, nil
		}
		hi, err := parseUint(s[hiStart:pos])
		if err != nil {
			return OccMatcher{}, pos, err
		}
		return OccMatcher{lo: lo, hi: hi}, pos, nil
	}
	return OccMatcher{lo: lo, hi: lo, isSingle: true}, pos, nil
}

// IsDigitByte reports whether b is an ASCII decimal digit.
func IsDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func parseUint(s string) (uint16, error) {
	if s == "" {
		return 0, fmt.Errorf("fieldsel: empty occurrence number")
	}
	var v uint16
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("fieldsel: %q is not numeric", s)
		}
		v = v*10 + uint16(c-'0')
	}
	return v, nil
}

// Matches reports whether occ satisfies m. An absent occurrence is
// equivalent to "00" (spec.md §3, §4.2).
func (m OccMatcher) Matches(occ pica.Occurrence) bool {
	if m.any {
		return true
	}
	v := occ.Value()
	return v >= m.lo && v <= m.hi
}

func (m OccMatcher) String() string {
	if m.any {
		return "*"
	}
	if m.isSingle {
		return fmt.Sprintf("%d", m.lo)
	}
	return fmt.Sprintf("%d-%d", m.lo, m.hi)
}

// CodeSet matches a SubfieldCode: a single code, a class, a range, or
// the wildcard.
type CodeSet struct {
	any   bool
	codes map[byte]bool
}

// AnyCode matches every subfield code.
var AnyCode = CodeSet{any: true}

func (c CodeSet) Matches(code pica.SubfieldCode) bool {
	if c.any {
		return true
	}
	return c.codes[byte(code)]
}

// ScanCodeSet scans one SubfieldCodes production starting at pos:
// "*", "[" ... "]", or a single code byte. Returns the set and the
// offset just past it.
func ScanCodeSet(s string, pos int) (CodeSet, int, error) {
	if pos >= len(s) {
		return CodeSet{}, pos, fmt.Errorf("fieldsel: expected subfield code at offset %d", pos)
	}
	if s[pos] == '*' {
		return AnyCode, pos + 1, nil
	}
	if s[pos] == '[' {
		end := pos + 1
		for end < len(s) && s[end] != ']' {
			end++
		}
		if end >= len(s) {
			return CodeSet{}, pos, fmt.Errorf("fieldsel: unterminated subfield code class at offset %d", pos)
		}
		cs, err := ParseCodeSet(s[pos : end+1])
		return cs, end + 1, err
	}
	cs, err := ParseCodeSet(s[pos : pos+1])
	return cs, pos + 1, err
}

// ParseCodeSet parses a SubfieldCodes production: CODE | "[" CODE+ "]"
// | "[" CODE "-" CODE "]" | "*".
func ParseCodeSet(s string) (CodeSet, error) {
	if s == "*" {
		return AnyCode, nil
	}
	if len(s) == 1 {
		return CodeSet{codes: map[byte]bool{s[0]: true}}, nil
	}
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		inner := s[1 : len(s)-1]
		if len(inner) == 3 && inner[1] == '-' {
			m := map[byte]bool{}
			for c := inner[0]; c <= inner[2]; c++ {
				m[c] = true
			}
			return CodeSet{codes: m}, nil
		}
		m := map[byte]bool{}
		for i := 0; i < len(inner); i++ {
			m[inner[i]] = true
		}
		return CodeSet{codes: m}, nil
	}
	return CodeSet{}, fmt.Errorf("fieldsel: invalid subfield code set %q", s)
}
