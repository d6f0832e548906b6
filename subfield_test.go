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

package pica

import (
	"errors"
	"testing"
)

func TestParseSubfieldCodeValid(t *testing.T) {
	for _, b := range []byte{'a', 'z', 'A', 'Z', '0', '9'} {
		c, err := ParseSubfieldCode(b)
		if err != nil {
			t.Fatalf("ParseSubfieldCode(%q): %v", b, err)
		}
		if c.String() != string(rune(b)) {
			t.Fatalf("got %q, want %q", c.String(), string(rune(b)))
		}
	}
}

func TestParseSubfieldCodeInvalid(t *testing.T) {
	for _, b := range []byte{' ', '-', '!', 0x1f} {
		_, err := ParseSubfieldCode(b)
		if err == nil {
			t.Fatalf("ParseSubfieldCode(%q): expected error", b)
		}
		if !errors.Is(err, ErrInvalidSubfieldCode) {
			t.Fatalf("ParseSubfieldCode(%q): expected errors.Is ErrInvalidSubfieldCode, got %v", b, err)
		}
	}
}

func TestSubfieldCloneIsIndependent(t *testing.T) {
	buf := []byte("original")
	sf := Subfield{Code: 'a', Value: buf}
	clone := sf.Clone()
	buf[0] = 'X'
	if string(clone.Value) != "original" {
		t.Fatalf("clone aliased the original buffer: got %q", clone.Value)
	}
	if !clone.Equal(Subfield{Code: 'a', Value: []byte("original")}) {
		t.Fatalf("expected clone to equal the unmodified value")
	}
}

func TestSubfieldEqual(t *testing.T) {
	a := Subfield{Code: 'a', Value: []byte("x")}
	b := Subfield{Code: 'a', Value: []byte("x")}
	c := Subfield{Code: 'b', Value: []byte("x")}
	d := Subfield{Code: 'a', Value: []byte("y")}
	if !a.Equal(b) {
		t.Fatalf("expected a == b")
	}
	if a.Equal(c) {
		t.Fatalf("expected a != c (different code)")
	}
	if a.Equal(d) {
		t.Fatalf("expected a != d (different value)")
	}
}
