package reduce

import (
	"testing"

	"github.com/gbv/pica"
	"github.com/gbv/pica/fieldsel"
)

const sampleRecord = "003@ \x1f0123456789\x1e021A \x1faSmith\x1e041A/01 \x1f9one\x1e041A/02 \x1f9two\x1e"

func decodeSample(t *testing.T) pica.Record {
	t.Helper()
	d := pica.NewDecoder()
	r, err := d.Decode([]byte(sampleRecord))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func mustTag(t *testing.T, s string) fieldsel.TagMatcher {
	t.Helper()
	tm, err := fieldsel.ParseTagMatcher(s)
	if err != nil {
		t.Fatalf("ParseTagMatcher(%q): %v", s, err)
	}
	return tm
}

func TestKeepRetainsOnlyMatchingFields(t *testing.T) {
	r := decodeSample(t)
	red := Reducer{Rules: []Rule{{Tag: mustTag(t, "041A")}}}
	out, ok := red.Apply(r)
	if !ok {
		t.Fatalf("expected a non-empty result")
	}
	if len(out.Fields()) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out.Fields()))
	}
	for _, f := range out.Fields() {
		if f.Tag.String() != "041A" {
			t.Errorf("unexpected field %s in kept output", f.Tag)
		}
	}
}

func TestDiscardDropsMatchingFields(t *testing.T) {
	r := decodeSample(t)
	red := Reducer{Rules: []Rule{{Tag: mustTag(t, "041A")}}, Discard: true}
	out, ok := red.Apply(r)
	if !ok {
		t.Fatalf("expected a non-empty result")
	}
	if len(out.Fields()) != 2 {
		t.Fatalf("expected 2 remaining fields, got %d", len(out.Fields()))
	}
	for _, f := range out.Fields() {
		if f.Tag.String() == "041A" {
			t.Errorf("041A should have been discarded")
		}
	}
}

func TestOrderIsPreserved(t *testing.T) {
	r := decodeSample(t)
	red := Reducer{Rules: []Rule{{Tag: mustTag(t, "....")}}}
	out, ok := red.Apply(r)
	if !ok {
		t.Fatalf("expected a non-empty result")
	}
	want := []string{"003@", "021A", "041A", "041A"}
	for i, f := range out.Fields() {
		if f.Tag.String() != want[i] {
			t.Errorf("field %d: got %s, want %s", i, f.Tag, want[i])
		}
	}
}

func TestEmptyResultDropsRecord(t *testing.T) {
	r := decodeSample(t)
	red := Reducer{Rules: []Rule{{Tag: mustTag(t, "009Z")}}}
	_, ok := red.Apply(r)
	if ok {
		t.Fatalf("expected keeping nothing to drop the record")
	}
}

func TestOccurrenceScopedRule(t *testing.T) {
	r := decodeSample(t)
	occ, err := fieldsel.ParseOccMatcher("01")
	if err != nil {
		t.Fatalf("ParseOccMatcher: %v", err)
	}
	red := Reducer{Rules: []Rule{{Tag: mustTag(t, "041A"), Occurrence: occ}}}
	out, ok := red.Apply(r)
	if !ok {
		t.Fatalf("expected a non-empty result")
	}
	if len(out.Fields()) != 1 {
		t.Fatalf("expected exactly 1 field, got %d", len(out.Fields()))
	}
	if !out.Fields()[0].Occurrence.Present() || out.Fields()[0].Occurrence.String() != "01" {
		t.Fatalf("expected occurrence 01, got %v", out.Fields()[0].Occurrence)
	}
}
