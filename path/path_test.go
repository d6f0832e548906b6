package path

import (
	"bytes"
	"testing"

	"github.com/gbv/pica"
)

const sampleRecord = "003@ \x1f0123456789\x1e021A \x1faSmith\x1fbJohn\x1e" +
	"041A/01 \x1f9one\x1f9two\x1e041A/02 \x1f9three\x1e"

func decodeSample(t *testing.T) pica.Record {
	t.Helper()
	d := pica.NewDecoder()
	r, err := d.Decode([]byte(sampleRecord))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func joinValues(vals [][]byte) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func TestSimplePathLiteralTag(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("003@.0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals := p.Values(r, Options{})
	if len(vals) != 1 || string(vals[0]) != "123456789" {
		t.Fatalf("got %v", joinValues(vals))
	}
}

func TestPathWithOccurrenceWildcard(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("041A/*.9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals := p.Values(r, Options{})
	got := joinValues(vals)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPathWithoutOccurrenceMatchesOnlyAbsent(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("041A.9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals := p.Values(r, Options{})
	if len(vals) != 0 {
		t.Fatalf("expected no values since 041A always carries an occurrence, got %v", joinValues(vals))
	}
}

func TestTupleSelector(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("021A.(a,b)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rows := p.Tuples(r, Options{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if string(rows[0][0]) != "Smith" || string(rows[0][1]) != "John" {
		t.Fatalf("got %q, %q", rows[0][0], rows[0][1])
	}
}

func TestTuplePadsAbsentPosition(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("021A.(a,z)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rows := p.Tuples(r, Options{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if string(rows[0][0]) != "Smith" {
		t.Fatalf("got %q", rows[0][0])
	}
	if len(rows[0][1]) != 0 {
		t.Fatalf("expected empty padding value, got %q", rows[0][1])
	}
}

func TestEmbeddedFilter(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse(`041A/*{9 | 9 == 'two'}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals := p.Values(r, Options{})
	got := joinValues(vals)
	want := []string{"one", "two"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNoMatchYieldsZeroValues(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("009Z.a")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vals := p.Values(r, Options{})
	if len(vals) != 0 {
		t.Fatalf("expected zero values, got %v", vals)
	}
}

func TestBraceFormAcceptsBareCommaTuple(t *testing.T) {
	// spec.md §8 scenario 4's literal selector has no parens around
	// "a,9": 041A{a,9 | 4 == "aut"}.
	record := "003@ \x1f0P\x1e" +
		"041A \x1faAuthor1\x1f9one\x1f4aut\x1e" +
		"041A \x1faAuthor2\x1f9two\x1f9three\x1f4aut\x1e"
	d := pica.NewDecoder()
	r, err := d.Decode([]byte(record))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, err := Parse(`041A{a,9 | 4 == "aut"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rows := p.Tuples(r, Options{})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (1 + 2), got %d: %v", len(rows), rows)
	}
	if string(rows[0][0]) != "Author1" || string(rows[0][1]) != "one" {
		t.Fatalf("row 0 = %q, %q", rows[0][0], rows[0][1])
	}
	if string(rows[1][0]) != "Author2" || string(rows[1][1]) != "two" {
		t.Fatalf("row 1 = %q, %q", rows[1][0], rows[1][1])
	}
	if string(rows[2][0]) != "Author2" || string(rows[2][1]) != "three" {
		t.Fatalf("row 2 = %q, %q", rows[2][0], rows[2][1])
	}
}

func TestRestartable(t *testing.T) {
	r := decodeSample(t)
	p, err := Parse("041A/*.9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first := p.Values(r, Options{})
	second := p.Values(r, Options{})
	if len(first) != len(second) {
		t.Fatalf("restart produced different length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !bytes.Equal(first[i], second[i]) {
			t.Fatalf("restart produced different values at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
