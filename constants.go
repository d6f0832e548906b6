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

// Framing bytes of the normalized PICA+ serialization (spec.md §6.1).
const (
	// US precedes every subfield, immediately before the subfield's code byte.
	US byte = 0x1f
	// RS terminates a field.
	RS byte = 0x1e
	// SP separates the tag/occurrence prefix of a field from its first subfield.
	SP byte = 0x20
	// LF terminates a record.
	LF byte = 0x0a
)

// DefaultMaxLineLength is the default ceiling on a single record line,
// above which decoding fails with RecordTooLarge instead of growing
// the parse buffer without bound.
const DefaultMaxLineLength = 100 * 1024 * 1024 // 100 MiB

// Level identifies which of the three PICA+ levels a tag belongs to,
// taken from the tag's first byte.
type Level byte

const (
	LevelMain Level = '0'
	LevelLocal Level = '1'
	LevelCopy Level = '2'
)

func (l Level) String() string {
	switch l {
	case LevelMain:
		return "main"
	case LevelLocal:
		return "local"
	case LevelCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// ppnTag and ppnCode identify where a record's PPN lives: the value
// of subfield "0" in the first "003@" field (spec.md §3).
const (
	ppnTag  = "003@"
	ppnCode = '0'
)
