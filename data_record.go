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

import "fmt"

// Record is the capability set downstream packages (path, matcher,
// selection, ...) are polymorphic over: read-only field iteration.
// Both BorrowedRecord and OwnedRecord implement it, per the
// borrow/owned duality described in spec.md §3.
type Record interface {
	// Fields returns the record's fields in document order.
	Fields() []Field
	// PPN returns the record's identifier — the value of subfield "0"
	// of the first "003@" field — and whether one was present.
	PPN() ([]byte, bool)
}

// BorrowedRecord is the zero-copy decode result: its Fields' Subfield
// values alias the buffer Decode was called with. It must not be
// retained past the next call to Decode on that buffer; call ToOwned
// first if it needs to outlive it (e.g. a dedup set, a sampling
// reservoir).
type BorrowedRecord struct {
	fields []Field
}

var _ Record = BorrowedRecord{}

func (r BorrowedRecord) Fields() []Field {
	return r.fields
}

func (r BorrowedRecord) PPN() ([]byte, bool) {
	return ppnOf(r.fields)
}

// ToOwned copies every subfield value out of the input buffer,
// producing a Record safe to retain indefinitely.
func (r BorrowedRecord) ToOwned() OwnedRecord {
	fields := make([]Field, len(r.fields))
	for i, f := range r.fields {
		fields[i] = f.Clone()
	}
	return OwnedRecord{fields: fields}
}

// OwnedRecord holds independently-allocated copies of its fields and
// subfields and may be retained beyond the lifetime of any decoder
// buffer.
type OwnedRecord struct {
	fields []Field
}

var _ Record = OwnedRecord{}

func (r OwnedRecord) Fields() []Field {
	return r.fields
}

func (r OwnedRecord) PPN() ([]byte, bool) {
	return ppnOf(r.fields)
}

// NewOwnedRecord constructs an OwnedRecord directly from fields,
// without requiring a prior decode; it does not clone them, so callers
// retain full ownership responsibility over the slices passed in.
func NewOwnedRecord(fields []Field) (OwnedRecord, error) {
	if len(fields) == 0 {
		return OwnedRecord{}, ErrNoFields
	}
	return OwnedRecord{fields: fields}, nil
}

func ppnOf(fields []Field) ([]byte, bool) {
	for _, f := range fields {
		if f.Tag.String() == ppnTag {
			if v, ok := f.First(ppnCode); ok {
				return v, true
			}
			return nil, false
		}
	}
	return nil, false
}

// String renders a Record using the plain-text alternate format
// (spec.md §6.2), primarily for debugging and test failure messages.
func String(r Record) string {
	s := ""
	for _, f := range r.Fields() {
		s += f.Tag.String()
		if f.Occurrence.Present() {
			s += "/" + f.Occurrence.String()
		}
		for _, sf := range f.Subfields {
			s += fmt.Sprintf(" $%s%s", sf.Code, sf.Value)
		}
		s += "\n"
	}
	return s
}
