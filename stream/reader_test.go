package stream

import (
	"strings"
	"testing"
)

const goodLine = "003@ \x1f0123456789\x1e021A \x1faSmith\x1e"
const badLine = "this is not pica\n"

func TestReadsValidLines(t *testing.T) {
	input := goodLine + "\n" + goodLine + "\n"
	r := NewReader(strings.NewReader(input), Options{})
	defer r.Close()

	n := 0
	for {
		item, ok := r.Next()
		if !ok {
			break
		}
		if !item.Ok() {
			t.Fatalf("unexpected error item: %v", item.Err)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("expected 2 records, got %d", n)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected I/O error: %v", err)
	}
}

func TestHaltsOnFirstErrorByDefault(t *testing.T) {
	input := goodLine + "\n" + badLine + goodLine + "\n"
	r := NewReader(strings.NewReader(input), Options{HaltOnFirstError: true})
	defer r.Close()

	item, ok := r.Next()
	if !ok || !item.Ok() {
		t.Fatalf("expected first item ok, got %+v ok=%v", item, ok)
	}

	item, ok = r.Next()
	if !ok {
		t.Fatalf("expected an error item, got end of stream")
	}
	if item.Ok() {
		t.Fatalf("expected an invalid line, got a record")
	}

	_, ok = r.Next()
	if ok {
		t.Fatalf("expected iteration to stop after the error")
	}
}

func TestSkipInvalidSwallowsErrors(t *testing.T) {
	input := badLine + goodLine + "\n"
	r := NewReader(strings.NewReader(input), Options{SkipInvalid: true})
	defer r.Close()

	item, ok := r.Next()
	if !ok || !item.Ok() {
		t.Fatalf("expected the good record to survive skip_invalid, got %+v ok=%v", item, ok)
	}

	_, ok = r.Next()
	if ok {
		t.Fatalf("expected end of stream")
	}
}

func TestBlankLinesAreSkipped(t *testing.T) {
	input := "\n" + goodLine + "\n\n"
	r := NewReader(strings.NewReader(input), Options{})
	defer r.Close()

	item, ok := r.Next()
	if !ok || !item.Ok() {
		t.Fatalf("expected a record, got %+v ok=%v", item, ok)
	}
	_, ok = r.Next()
	if ok {
		t.Fatalf("expected end of stream after skipping blank lines")
	}
}
