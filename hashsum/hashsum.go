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

// Package hashsum implements the record hasher (spec.md §4.8): a
// SHA-256 over a record's serialized bytes, byte-identical to running
// sha256sum over the original line.
package hashsum

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gbv/pica"
)

// Sum computes the lowercase hex SHA-256 of r's serialized form
// (spec.md §6.1), including its terminating newline, so it matches
// `sha256sum` of the original input line byte-for-byte.
func Sum(r pica.Record) string {
	digest := sha256.Sum256(pica.EncodeToBytes(r))
	return hex.EncodeToString(digest[:])
}

// Entry pairs a record's hash with its PPN, or an empty PPN if the
// record has none (spec.md §4.8).
type Entry struct {
	PPN  string
	Hash string
}

// Hash computes an Entry for r.
func Hash(r pica.Record) Entry {
	ppn, _ := r.PPN()
	return Entry{PPN: string(ppn), Hash: Sum(r)}
}
