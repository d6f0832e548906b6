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

// Field is a tag, an optional occurrence, and an ordered list of
// subfields (spec.md §3). A Field decoded from a BorrowedRecord
// aliases the decoder's input buffer; Clone copies it for retention.
type Field struct {
	Tag        Tag
	Occurrence Occurrence
	Subfields  []Subfield
}

// Clone returns a Field whose Subfield values are independent copies.
func (f Field) Clone() Field {
	subfields := make([]Subfield, len(f.Subfields))
	for i, sf := range f.Subfields {
		subfields[i] = sf.Clone()
	}
	return Field{Tag: f.Tag, Occurrence: f.Occurrence, Subfields: subfields}
}

// First returns the value of the first subfield with the given code,
// and whether one was found.
func (f Field) First(code SubfieldCode) ([]byte, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return nil, false
}

// All returns the values of every subfield with the given code, in
// field order.
func (f Field) All(code SubfieldCode) [][]byte {
	var out [][]byte
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// Count returns the number of subfields with the given code.
func (f Field) Count(code SubfieldCode) int {
	n := 0
	for _, sf := range f.Subfields {
		if sf.Code == code {
			n++
		}
	}
	return n
}
