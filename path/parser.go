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
	"fmt"

	"github.com/gbv/pica/fieldsel"
	"github.com/gbv/pica/matcher"
)

// ParseError reports a failure to compile a path expression, with the
// byte offset into the source expression where it was detected
// (spec.md §7's ParseExpression error kind).
type ParseError struct {
	Expr   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("path: parse error at offset %d in %q: %s", e.Offset, e.Expr, e.Reason)
}

// Parse compiles a path expression (spec.md §4.2's grammar).
func Parse(expr string) (Path, error) {
	var p Path

	tag, pos, err := fieldsel.ScanTagMatcher(expr, 0)
	if err != nil {
		return p, &ParseError{Expr: expr, Offset: 0, Reason: err.Error()}
	}
	p.Tag = tag

	if pos < len(expr) && expr[pos] == '/' {
		occ, newPos, err := fieldsel.ScanOccMatcher(expr, pos+1)
		if err != nil {
			return p, &ParseError{Expr: expr, Offset: pos + 1, Reason: err.Error()}
		}
		p.Occurrence = occ
		p.HasOccurrence = true
		pos = newPos
	}

	if pos >= len(expr) {
		return p, &ParseError{Expr: expr, Offset: pos, Reason: "expected '.' or '{' after tag/occurrence"}
	}

	switch expr[pos] {
	case '.':
		sel, newPos, err := parseSubfieldSel(expr, pos+1, false)
		if err != nil {
			return p, err
		}
		p.Selector = sel
		if newPos != len(expr) {
			return p, &ParseError{Expr: expr, Offset: newPos, Reason: "unexpected trailing input"}
		}
	case '{':
		sel, newPos, err := parseSubfieldSel(expr, pos+1, true)
		if err != nil {
			return p, err
		}
		p.Selector = sel
		newPos = skipSpace(expr, newPos)
		if newPos < len(expr) && expr[newPos] == '|' {
			filterSrc := expr[newPos+1:]
			end := findMatchingBrace(filterSrc)
			if end < 0 {
				return p, &ParseError{Expr: expr, Offset: newPos, Reason: "unterminated embedded matcher"}
			}
			fp, err := matcher.ParseFieldPredicate(filterSrc[:end])
			if err != nil {
				return p, &ParseError{Expr: expr, Offset: newPos + 1, Reason: err.Error()}
			}
			p.Filter = fp
			newPos = skipSpace(expr, newPos+1+end)
		}
		if newPos >= len(expr) || expr[newPos] != '}' {
			return p, &ParseError{Expr: expr, Offset: newPos, Reason: "expected '}'"}
		}
		newPos++
		if newPos != len(expr) {
			return p, &ParseError{Expr: expr, Offset: newPos, Reason: "unexpected trailing input"}
		}
	default:
		return p, &ParseError{Expr: expr, Offset: pos, Reason: "expected '.' or '{' after tag/occurrence"}
	}

	return p, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// findMatchingBrace returns the offset of the "}" that closes the
// brace form, relative to s, accounting for quoted literals that may
// themselves contain "}".
func findMatchingBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '"':
			quote := s[i]
			i++
			for i < len(s) && s[i] != quote {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// parseSubfieldSel parses a SubfieldSel production starting at pos:
// SubfieldCodes | "(" SubfieldCodes ("," SubfieldCodes)* ")". The
// brace form additionally accepts a bare, unparenthesized comma list
// (bareCommaOK) — spec.md §8 scenario 4's literal selector,
// `041A{a,9 | 4 == "aut"}`, has no parens around "a,9". This is
// unambiguous only inside "{...}": the selection engine's top-level
// splitter already treats "{" as depth-increasing, so a bare comma
// here is never mistaken for a selector separator. The dot form stays
// strict (single CodeSet unless parenthesized), since an unparenthesized
// comma right after ".foo" at the top level of a selection IS a
// selector separator (e.g. "003@.0, 041A/*.9").
func parseSubfieldSel(expr string, pos int, bareCommaOK bool) (Selector, int, error) {
	var sel Selector
	if pos < len(expr) && expr[pos] == '(' {
		pos++
		for {
			cs, newPos, err := fieldsel.ScanCodeSet(expr, pos)
			if err != nil {
				return sel, pos, &ParseError{Expr: expr, Offset: pos, Reason: err.Error()}
			}
			sel.Tuple = append(sel.Tuple, cs)
			pos = newPos
			if pos < len(expr) && expr[pos] == ',' {
				pos++
				continue
			}
			break
		}
		if pos >= len(expr) || expr[pos] != ')' {
			return sel, pos, &ParseError{Expr: expr, Offset: pos, Reason: "expected ')'"}
		}
		pos++
		return sel, pos, nil
	}

	for {
		cs, newPos, err := fieldsel.ScanCodeSet(expr, pos)
		if err != nil {
			return sel, pos, &ParseError{Expr: expr, Offset: pos, Reason: err.Error()}
		}
		sel.Tuple = append(sel.Tuple, cs)
		pos = newPos
		if bareCommaOK && pos < len(expr) && expr[pos] == ',' {
			pos++
			continue
		}
		break
	}
	return sel, pos, nil
}
