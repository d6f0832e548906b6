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

// Package convert implements the alternate, write-only encoders of
// spec.md §6.2: plain, json, xml, binary and import. Each is a
// stateless traversal over a pica.Record; none shares state with the
// matcher/path/selection engines, matching spec.md §4.1's encoder
// contract.
package convert

import (
	"fmt"
	"io"

	"github.com/gbv/pica"
)

// WritePlain writes r in the plain alternate format: one line per
// field, "TAG[/OCC] ($CODE VALUE)*", followed by a blank line
// separating it from the next record (spec.md §6.2).
func WritePlain(w io.Writer, r pica.Record) error {
	for _, f := range r.Fields() {
		if _, err := io.WriteString(w, f.Tag.String()); err != nil {
			return err
		}
		if f.Occurrence.Present() {
			if _, err := fmt.Fprintf(w, "/%s", f.Occurrence.String()); err != nil {
				return err
			}
		}
		for _, sf := range f.Subfields {
			if _, err := fmt.Fprintf(w, " $%s%s", sf.Code, sf.Value); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
