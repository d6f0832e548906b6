package matcher

import (
	"testing"

	"github.com/gbv/pica"
)

func mustDecode(t *testing.T, line string) pica.Record {
	t.Helper()
	d := pica.NewDecoder()
	r, err := d.Decode([]byte(line))
	if err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return r
}

const sampleRecord = "003@ \x1f0123456789\x1e021A \x1faSmith\x1fbJohn\x1e" +
	"041A/01 \x1f9one\x1f9two\x1e041A/02 \x1f9three\x1e"

func TestFieldExistence(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("003@?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected 003@? to match")
	}
	m2, err := Parse("009Z?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m2.Eval(r, Options{}) {
		t.Fatal("expected 009Z? not to match")
	}
}

func TestSubfieldEquality(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("021A.a == 'Smith'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected match on a == 'Smith'")
	}
}

func TestCaseIgnoreOption(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("021A.a == 'smith'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Eval(r, Options{}) {
		t.Fatal("expected case-sensitive mismatch")
	}
	if !m.Eval(r, Options{CaseIgnore: true}) {
		t.Fatal("expected case-insensitive match")
	}
}

func TestPrefixSuffixContains(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	cases := []string{
		"021A.a =^ 'Sm'",
		"021A.a =$ 'ith'",
		"021A.a =? 'mit'",
	}
	for _, expr := range cases {
		m, err := Parse(expr)
		if err != nil {
			t.Fatalf("parse %q: %v", expr, err)
		}
		if !m.Eval(r, Options{}) {
			t.Errorf("expected %q to match", expr)
		}
	}
}

func TestInNotIn(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("021A.a in ['Smith','Jones']")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected in match")
	}
	m2, err := Parse("021A.a not in ['Jones']")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m2.Eval(r, Options{}) {
		t.Fatal("expected not-in match")
	}
}

func TestRegex(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse(`021A.a =~ '^Sm.+h$'`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected regex match")
	}
}

func TestSimilarity(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("021A.a =* 'Smyth'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected =* to match under default threshold")
	}
}

func TestQuantifierForallAndExists(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse(`041A/*{∀9: =~ '^[a-z]+$'}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected ∀9 to hold for all 041A/9 values")
	}

	m2, err := Parse(`041A/*{∃9: == 'two'}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m2.Eval(r, Options{}) {
		t.Fatal("expected ∃9 to find 'two'")
	}
}

func TestCardinality(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("041A/*{#9 == 3}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected exactly 3 subfield 9 values across 041A/01 and 041A/02")
	}
}

func TestOccurrenceRange(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	m, err := Parse("041A/01-01.9 == 'one'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{}) {
		t.Fatal("expected occurrence 01 to match range 01-01")
	}
}

func TestBooleanConnectivesAndDeMorgan(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	a, err := Parse("003@?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse("009Z?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	notAOrB, err := Parse("!(003@? || 009Z?)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	notAAndNotB, err := Parse("!003@? && !009Z?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if notAOrB.Eval(r, Options{}) != notAAndNotB.Eval(r, Options{}) {
		t.Fatal("De Morgan's law violated: !(A||B) should equal !A && !B")
	}
	_ = a
	_ = b
}

func TestComposability(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	a, err := Parse("003@?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse("009Z?")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	combined := And(a, Not(b))
	if !combined.Eval(r, Options{}) {
		t.Fatal("expected composed matcher (a && !b) to hold")
	}
}

func TestNormalization(t *testing.T) {
	r := mustDecode(t, sampleRecord)
	form := NFC
	m, err := Parse("021A.a == 'Smith'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Eval(r, Options{Normalization: &form}) {
		t.Fatal("expected NFC-normalized comparison to still match plain ASCII")
	}
}

func TestInvalidUTF8TreatedAsNonMatch(t *testing.T) {
	// \xff is not valid UTF-8 on its own.
	record := "003@ \x1f0P\x1e021A \x1fa\xffbroken\x1e"
	r := mustDecode(t, record)
	m, err := Parse("021A.a == 'broken'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Without normalization/case folding, prepare() never needs valid
	// UTF-8, so the comparison runs as a plain byte comparison.
	if m.Eval(r, Options{}) {
		t.Fatal("expected no match: the raw bytes differ from the literal")
	}

	// With case_ignore, the invalid bytes must not reach foldCase; the
	// documented policy is non-match, not a panic or garbled match.
	if m.Eval(r, Options{CaseIgnore: true}) {
		t.Fatal("expected non-UTF-8 subfield value to be treated as a non-match under case_ignore")
	}

	form := NFC
	if m.Eval(r, Options{Normalization: &form}) {
		t.Fatal("expected non-UTF-8 subfield value to be treated as a non-match under normalization")
	}
}
