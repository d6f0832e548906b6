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
	"bytes"
	"testing"
)

func TestEncodeWithOccurrence(t *testing.T) {
	f := Field{
		Tag:        MustParseTag("041A"),
		Occurrence: Occurrence{value: 1, present: true},
		Subfields:  []Subfield{{Code: 'a', Value: []byte("x")}},
	}
	r, err := NewOwnedRecord([]Field{f})
	if err != nil {
		t.Fatalf("NewOwnedRecord: %v", err)
	}
	var buf bytes.Buffer
	if _, err := Encode(&buf, r); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "041A/01 \x1fax\x1e\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeWithoutOccurrence(t *testing.T) {
	f := Field{
		Tag:       MustParseTag("003@"),
		Subfields: []Subfield{{Code: '0', Value: []byte("P")}},
	}
	r, err := NewOwnedRecord([]Field{f})
	if err != nil {
		t.Fatalf("NewOwnedRecord: %v", err)
	}
	got := EncodeToBytes(r)
	want := "003@ \x1f0P\x1e\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeMultipleSubfields(t *testing.T) {
	f := Field{
		Tag: MustParseTag("021A"),
		Subfields: []Subfield{
			{Code: 'a', Value: []byte("Smith")},
			{Code: 'b', Value: []byte("John")},
		},
	}
	r, err := NewOwnedRecord([]Field{f})
	if err != nil {
		t.Fatalf("NewOwnedRecord: %v", err)
	}
	got := EncodeToBytes(r)
	want := "021A \x1faSmith\x1fbJohn\x1e\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
