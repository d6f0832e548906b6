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

// NUL is the trailing byte the binary alternate format appends after
// the normalized record (spec.md §6.2).
const NUL = 0x00

// WriteBinary writes r in the normalized wire format, with a trailing
// NUL byte appended after the record's terminating LF — byte-for-byte
// identical to the normalized form otherwise (spec.md §6.2).
func WriteBinary(w io.Writer, r pica.Record) (int, error) {
	n, err := pica.Encode(w, r)
	if err != nil {
		return n, err
	}
	m, err := w.Write([]byte{NUL})
	return n + m, err
}
