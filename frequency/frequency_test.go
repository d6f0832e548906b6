package frequency

import (
	"reflect"
	"testing"
)

func row(vals ...string) Row {
	r := make(Row, len(vals))
	for i, v := range vals {
		r[i] = []byte(v)
	}
	return r
}

func values(entries []Entry) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		cols := make([]string, len(e.Value))
		for j, v := range e.Value {
			cols[j] = string(v)
		}
		out[i] = cols
	}
	return out
}

func TestCountsAccumulateAcrossRecords(t *testing.T) {
	var c Counter
	c.Add([]Row{row("a"), row("b")})
	c.Add([]Row{row("a")})

	entries := c.Results(Options{})
	want := map[string]int{"a": 2, "b": 1}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Count != want[string(e.Value[0])] {
			t.Errorf("value %q: got count %d, want %d", e.Value[0], e.Count, want[string(e.Value[0])])
		}
	}
}

func TestSortedByCountDescThenValueAsc(t *testing.T) {
	var c Counter
	c.Add([]Row{row("b")})
	c.Add([]Row{row("a")})
	c.Add([]Row{row("a")})
	c.Add([]Row{row("c")})
	c.Add([]Row{row("c")})

	entries := c.Results(Options{})
	got := values(entries)
	want := [][]string{{"a"}, {"c"}, {"b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReverseSortsAscending(t *testing.T) {
	var c Counter
	c.Add([]Row{row("b")})
	c.Add([]Row{row("a")})
	c.Add([]Row{row("a")})

	entries := c.Results(Options{Reverse: true})
	got := values(entries)
	want := [][]string{{"b"}, {"a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestThresholdDropsLowCounts(t *testing.T) {
	var c Counter
	c.Add([]Row{row("a")})
	c.Add([]Row{row("b")})
	c.Add([]Row{row("b")})

	entries := c.Results(Options{Threshold: 2})
	if len(entries) != 1 || string(entries[0].Value[0]) != "b" {
		t.Fatalf("got %v", values(entries))
	}
}

func TestLimitCapsTopN(t *testing.T) {
	var c Counter
	c.Add([]Row{row("a")})
	c.Add([]Row{row("b")})
	c.Add([]Row{row("c")})

	entries := c.Results(Options{Limit: 2})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestUniqueDedupsWithinOneRecord(t *testing.T) {
	var c Counter
	c.Unique = true
	// Simulates a single record whose Cartesian product repeats "x".
	c.Add([]Row{row("x"), row("x"), row("y")})
	c.Add([]Row{row("x")})

	entries := c.Results(Options{})
	counts := map[string]int{}
	for _, e := range entries {
		counts[string(e.Value[0])] = e.Count
	}
	if counts["x"] != 2 {
		t.Fatalf("expected x counted once per record (total 2), got %d", counts["x"])
	}
	if counts["y"] != 1 {
		t.Fatalf("expected y counted once, got %d", counts["y"])
	}
}
