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

import "io"

// Encode writes r in the normalized PICA+ wire format (spec.md §6.1)
// to w, including the terminating LF. For a record decoded by Decode
// and not otherwise mutated, Encode reproduces byte-identical output
// to the original input line (spec.md §8's round-trip invariant).
func Encode(w io.Writer, r Record) (int, error) {
	n := 0
	for _, f := range r.Fields() {
		m, err := encodeField(w, f)
		n += m
		if err != nil {
			return n, err
		}
	}
	m, err := w.Write([]byte{LF})
	n += m
	return n, err
}

func encodeField(w io.Writer, f Field) (int, error) {
	n := 0
	m, err := w.Write(f.Tag.Bytes())
	n += m
	if err != nil {
		return n, err
	}
	if f.Occurrence.Present() {
		m, err = w.Write([]byte{'/'})
		n += m
		if err != nil {
			return n, err
		}
		m, err = io.WriteString(w, f.Occurrence.String())
		n += m
		if err != nil {
			return n, err
		}
	}
	m, err = w.Write([]byte{SP})
	n += m
	if err != nil {
		return n, err
	}
	for _, sf := range f.Subfields {
		m, err = w.Write([]byte{US, byte(sf.Code)})
		n += m
		if err != nil {
			return n, err
		}
		m, err = w.Write(sf.Value)
		n += m
		if err != nil {
			return n, err
		}
	}
	m, err = w.Write([]byte{RS})
	n += m
	return n, err
}

// EncodeToBytes is a convenience wrapper over Encode for callers that
// want the serialized record as a single byte slice, e.g. the hashsum
// package (spec.md §4.8).
func EncodeToBytes(r Record) []byte {
	buf := &byteSliceWriter{}
	_, _ = Encode(buf, r)
	return buf.b
}

type byteSliceWriter struct {
	b []byte
}

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}
