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

package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gbv/pica"
	"github.com/gbv/pica/fieldsel"
)

// Parse compiles a RecordMatcher expression (spec.md §4.3's
// RecordMatcher grammar). Byte offsets in returned ParseErrors are
// relative to expr.
func Parse(expr string) (RecordMatcher, error) {
	p := &parser{src: expr}
	p.skipSpace()
	m, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return m, nil
}

// ParseFieldPredicate compiles a SubfieldListMatcher expression — the
// same grammar used inside a FieldMatcher's "{...}" body — standalone,
// for use by the path language's embedded "{ sel | matcher }" filter
// (spec.md §4.2 rule 2).
func ParseFieldPredicate(expr string) (FieldPredicate, error) {
	p := &parser{src: expr}
	p.skipSpace()
	fp, err := p.parseSubfieldOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return fp, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(reason string) error {
	return &ParseError{Expr: p.src, Offset: p.pos, Reason: reason}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) consume(s string) bool {
	p.skipSpace()
	if p.hasPrefix(s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.consume(s) {
		return p.errorf("expected " + strconv.Quote(s))
	}
	return nil
}

// --- record-level boolean grammar: "!" > "&&" > "XOR" > "||" ---

func (p *parser) parseOr() (RecordMatcher, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("||") {
			return left, nil
		}
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = orMatcher{left, right}
	}
}

func (p *parser) parseXor() (RecordMatcher, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("XOR") {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = xorMatcher{left, right}
	}
}

func (p *parser) parseAnd() (RecordMatcher, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("&&") {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andMatcher{left, right}
	}
}

func (p *parser) parseUnary() (RecordMatcher, error) {
	p.skipSpace()
	if p.consume("!") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notMatcher{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (RecordMatcher, error) {
	p.skipSpace()
	if p.consume("(") {
		m, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return m, nil
	}
	return p.parseFieldMatcher()
}

func (p *parser) parseFieldMatcher() (RecordMatcher, error) {
	p.skipSpace()
	tag, newPos, err := fieldsel.ScanTagMatcher(p.src, p.pos)
	if err != nil {
		return nil, &ParseError{Expr: p.src, Offset: p.pos, Reason: err.Error()}
	}
	p.pos = newPos

	var occ fieldsel.OccMatcher
	hasOcc := false
	if p.consume("/") {
		o, newPos, err := fieldsel.ScanOccMatcher(p.src, p.pos)
		if err != nil {
			return nil, &ParseError{Expr: p.src, Offset: p.pos, Reason: err.Error()}
		}
		occ = o
		p.pos = newPos
		hasOcc = true
	}

	fm := FieldMatcher{Tag: tag, Occurrence: occ, HasOccurrence: hasOcc}

	switch {
	case p.consume("?"):
		fm.Exists = true
		return fm, nil
	case p.consume("."):
		body, err := p.parseSubfieldPrimary()
		if err != nil {
			return nil, err
		}
		fm.Body = body
		return fm, nil
	case p.consume("{"):
		body, err := p.parseSubfieldOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		fm.Body = body
		return fm, nil
	default:
		return nil, p.errorf("expected '?', '.' or '{' after field tag")
	}
}

// --- subfield-level boolean grammar, same precedence ---

func (p *parser) parseSubfieldOr() (FieldPredicate, error) {
	left, err := p.parseSubfieldXor()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("||") {
			return left, nil
		}
		right, err := p.parseSubfieldXor()
		if err != nil {
			return nil, err
		}
		left = orPredicate{left, right}
	}
}

func (p *parser) parseSubfieldXor() (FieldPredicate, error) {
	left, err := p.parseSubfieldAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("XOR") {
			return left, nil
		}
		right, err := p.parseSubfieldAnd()
		if err != nil {
			return nil, err
		}
		left = xorPredicate{left, right}
	}
}

func (p *parser) parseSubfieldAnd() (FieldPredicate, error) {
	left, err := p.parseSubfieldUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume("&&") {
			return left, nil
		}
		right, err := p.parseSubfieldUnary()
		if err != nil {
			return nil, err
		}
		left = andPredicate{left, right}
	}
}

func (p *parser) parseSubfieldUnary() (FieldPredicate, error) {
	p.skipSpace()
	if p.consume("!") {
		inner, err := p.parseSubfieldUnary()
		if err != nil {
			return nil, err
		}
		return notPredicate{inner}, nil
	}
	if p.consume("(") {
		body, err := p.parseSubfieldOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return body, nil
	}
	return p.parseSubfieldPrimary()
}

func (p *parser) parseSubfieldPrimary() (FieldPredicate, error) {
	p.skipSpace()
	switch {
	case p.consume("∀"):
		return p.parseQuantifier(true)
	case p.consume("∃"):
		return p.parseQuantifier(false)
	case p.consume("#"):
		return p.parseCardinality()
	default:
		return p.parseSubfieldComparison()
	}
}

func (p *parser) parseQuantifier(forall bool) (FieldPredicate, error) {
	code, err := p.parseCode()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	op, literals, re, err := p.parseOpAndLiteral()
	if err != nil {
		return nil, err
	}
	if forall {
		return forallPredicate{code: code, op: op, literals: literals, regex: re}, nil
	}
	return comparePredicate{code: code, op: op, literals: literals, regex: re}, nil
}

func (p *parser) parseCardinality() (FieldPredicate, error) {
	code, err := p.parseCode()
	if err != nil {
		return nil, err
	}
	cmp, err := p.parseCmpOp()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && fieldsel.IsDigitByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf("expected a number after cardinality comparator")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return nil, p.errorf("invalid number")
	}
	return cardinalityPredicate{code: code, cmp: cmp, n: n}, nil
}

func (p *parser) parseSubfieldComparison() (FieldPredicate, error) {
	code, err := p.parseCode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.consume("?") {
		return existsPredicate{code: code}, nil
	}
	op, literals, re, err := p.parseOpAndLiteral()
	if err != nil {
		return nil, err
	}
	return comparePredicate{code: code, op: op, literals: literals, regex: re}, nil
}

func (p *parser) parseCode() (pica.SubfieldCode, error) {
	p.skipSpace()
	if p.eof() {
		return 0, p.errorf("expected a subfield code")
	}
	c, err := pica.ParseSubfieldCode(p.src[p.pos])
	if err != nil {
		return 0, p.errorf("invalid subfield code " + strconv.QuoteRune(rune(p.src[p.pos])))
	}
	p.pos++
	return c, nil
}

func (p *parser) parseCmpOp() (CmpOp, error) {
	p.skipSpace()
	switch {
	case p.consume("<="):
		return CmpLe, nil
	case p.consume(">="):
		return CmpGe, nil
	case p.consume("=="):
		return CmpEq, nil
	case p.consume("!="):
		return CmpNe, nil
	case p.consume("<"):
		return CmpLt, nil
	case p.consume(">"):
		return CmpGt, nil
	default:
		return 0, p.errorf("expected a cardinality comparator")
	}
}

// parseOpAndLiteral parses "Op Literal" for a SubfieldMatcher, e.g.
// "== 'Smith'" or "in ['a','b']", compiling a regexp for =~/!~.
func (p *parser) parseOpAndLiteral() (CompareOp, []string, *regexp.Regexp, error) {
	op, err := p.parseOp()
	if err != nil {
		return 0, nil, nil, err
	}
	literals, err := p.parseLiteral()
	if err != nil {
		return 0, nil, nil, err
	}
	var re *regexp.Regexp
	if op == OpRegexMatch || op == OpRegexNotMatch {
		re, err = regexp.Compile(literals[0])
		if err != nil {
			return 0, nil, nil, &RegexError{Pattern: literals[0], Err: err}
		}
	}
	return op, literals, re, nil
}

func (p *parser) parseOp() (CompareOp, error) {
	p.skipSpace()
	switch {
	case p.consume("=^"):
		return OpPrefix, nil
	case p.consume("!^"):
		return OpNotPrefix, nil
	case p.consume("=$"):
		return OpSuffix, nil
	case p.consume("!$"):
		return OpNotSuffix, nil
	case p.consume("=~"):
		return OpRegexMatch, nil
	case p.consume("!~"):
		return OpRegexNotMatch, nil
	case p.consume("=?"):
		return OpContains, nil
	case p.consume("=*"):
		return OpSimilar, nil
	case p.consume("=="):
		return OpEq, nil
	case p.consume("!="):
		return OpNe, nil
	case p.consume("not in"):
		return OpNotIn, nil
	case p.consume("in"):
		return OpIn, nil
	default:
		return 0, p.errorf("expected a comparison operator")
	}
}

// parseLiteral parses "'...'" | "\"...\"" | "[" Literal ("," Literal)* "]".
func (p *parser) parseLiteral() ([]string, error) {
	p.skipSpace()
	if p.consume("[") {
		var out []string
		for {
			lit, err := p.parseQuotedLiteral()
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
			p.skipSpace()
			if p.consume(",") {
				continue
			}
			break
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return out, nil
	}
	lit, err := p.parseQuotedLiteral()
	if err != nil {
		return nil, err
	}
	return []string{lit}, nil
}

func (p *parser) parseQuotedLiteral() (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.errorf("expected a quoted literal")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected a quoted literal")
	}
	start := p.pos + 1
	i := start
	for i < len(p.src) {
		if p.src[i] == '\\' && i+1 < len(p.src) {
			i += 2
			continue
		}
		if p.src[i] == quote {
			break
		}
		i++
	}
	if i >= len(p.src) {
		return "", p.errorf("unterminated quoted literal")
	}
	raw := p.src[start:i]
	p.pos = i + 1
	return strings.ReplaceAll(strings.ReplaceAll(raw, `\'`, `'`), `\"`, `"`), nil
}
