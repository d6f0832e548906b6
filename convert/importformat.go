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

package convert

import (
	"io"

	"github.com/gbv/pica"
)

// HT replaces SP as the tag/subfield-list separator in the import
// alternate format (spec.md §6.2). It cannot be done by substituting
// bytes in the already-encoded normalized form, because subfield
// values may themselves contain SP (spec.md §6.1's value grammar
// excludes only US, RS and LF) — WriteImport re-derives the separator
// position directly from the field structure instead.
const HT = 0x09

// WriteImport writes r using the import alternate framing: identical
// to the normalized form except the tag/subfield-list separator is HT
// instead of SP (spec.md §6.2).
func WriteImport(w io.Writer, r pica.Record) (int, error) {
	n := 0
	for _, f := range r.Fields() {
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
		m, err = w.Write([]byte{HT})
		n += m
		if err != nil {
			return n, err
		}
		for _, sf := range f.Subfields {
			m, err = w.Write([]byte{pica.US, byte(sf.Code)})
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
		m, err = w.Write([]byte{pica.RS})
		n += m
		if err != nil {
			return n, err
		}
	}
	m, err := w.Write([]byte{pica.LF})
	n += m
	return n, err
}
