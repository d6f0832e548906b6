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

/*
Package pica implements the normalized PICA+ serialization used by
library cataloguing systems for bibliographic and authority records.

# Overview

A record is a non-empty, ordered sequence of fields. A field is a
4-byte tag, an optional 2-3 digit occurrence, and an ordered list of
subfields. A subfield is a single alphanumeric code paired with an
opaque byte value. The wire framing uses three reserved bytes: 0x1f
(unit separator) precedes each subfield's code, 0x1e (record
separator) terminates each field, and 0x0a (line feed) terminates the
record.

# Historical Background

This package was factored out of a command-line toolkit for batch
processing of PICA+ catalogue exports (filtering, tabular projection,
frequency counting, partitioning). The Decode API mirrors a one-line,
single-buffer decode step rather than Go's io.Reader style, because
PICA+'s framing is strictly line-oriented: a reader need never look
past the next 0x0a to know where a record ends.

# Data Structures

A decoded record is either a BorrowedRecord, whose Fields alias the
caller's input buffer, or an OwnedRecord, produced from a
BorrowedRecord via ToOwned, that copies everything it needs and may
outlive the buffer it was decoded from. Both implement the Record
interface, so downstream packages (path, matcher, selection, ...) are
polymorphic over the capability to iterate fields and subfields
without caring which representation backs them.

Decoding never learns field semantics from a side channel the way a
typed protocol would; a subfield's value is always just bytes. Any
higher-level typing (numeric comparison, date parsing) is a
consumer's responsibility and out of scope for this package.
*/
package pica
