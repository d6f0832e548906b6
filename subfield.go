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

import "bytes"

// SubfieldCode is the single alphanumeric byte identifying a subfield
// within a field (spec.md §3).
type SubfieldCode byte

// ParseSubfieldCode validates b as a SubfieldCode.
func ParseSubfieldCode(b byte) (SubfieldCode, error) {
	if !IsAlphanumeric(b) {
		return 0, ErrInvalidSubfieldCode
	}
	return SubfieldCode(b), nil
}

func (c SubfieldCode) String() string {
	return string(rune(c))
}

// Subfield is a (code, value) pair, repeatable within a Field.
// Subfield aliases the buffer it was decoded from; call Clone to copy
// it into an independently owned value.
type Subfield struct {
	Code  SubfieldCode
	Value []byte
}

// Clone returns a Subfield whose Value is an independent copy,
// suitable for retention beyond the lifetime of the decoder's buffer.
func (s Subfield) Clone() Subfield {
	v := make([]byte, len(s.Value))
	copy(v, s.Value)
	return Subfield{Code: s.Code, Value: v}
}

// Equal reports whether s and other have the same code and byte-identical values.
func (s Subfield) Equal(other Subfield) bool {
	return s.Code == other.Code && bytes.Equal(s.Value, other.Value)
}
