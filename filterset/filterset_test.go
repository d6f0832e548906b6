package filterset

import (
	"strings"
	"testing"
)

func TestLoadFromPrefersPPNColumn(t *testing.T) {
	data := "idn,ppn\nzzz,123\nyyy,456\n"
	set, err := LoadFrom(strings.NewReader(data), Allow, "")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", set.Len())
	}
	if !set.Eligible([]byte("123")) {
		t.Fatalf("expected 123 to be eligible under allow mode")
	}
	if set.Eligible([]byte("zzz")) {
		t.Fatalf("did not expect idn column value to be used when ppn is present")
	}
}

func TestLoadFromFallsBackToIDN(t *testing.T) {
	data := "idn\nabc\n"
	set, err := LoadFrom(strings.NewReader(data), Allow, "")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !set.Eligible([]byte("abc")) {
		t.Fatalf("expected abc to be eligible")
	}
}

func TestLoadFromHonorsColumnOverride(t *testing.T) {
	data := "custom,ppn\nfoo,123\n"
	set, err := LoadFrom(strings.NewReader(data), Allow, "custom")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !set.Eligible([]byte("foo")) {
		t.Fatalf("expected foo (from override column) to be eligible")
	}
	if set.Eligible([]byte("123")) {
		t.Fatalf("did not expect ppn column value to be used with an override")
	}
}

func TestDenyModeInvertsEligibility(t *testing.T) {
	data := "ppn\n123\n"
	set, err := LoadFrom(strings.NewReader(data), Deny, "")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if set.Eligible([]byte("123")) {
		t.Fatalf("expected 123 to be denied")
	}
	if !set.Eligible([]byte("456")) {
		t.Fatalf("expected 456 to be eligible under deny mode")
	}
}

func TestMissingColumnIsAnError(t *testing.T) {
	data := "foo,bar\n1,2\n"
	_, err := LoadFrom(strings.NewReader(data), Allow, "")
	if err == nil {
		t.Fatalf("expected an error when neither ppn nor idn column exists")
	}
}
