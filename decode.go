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

import (
	"bytes"
	"time"
)

// DecoderOptions configures a Decoder. The zero value is not usable;
// start from DefaultDecoderOptions and override individual fields.
type DecoderOptions struct {
	// MaxLineLength is the ceiling on a single record line; lines
	// longer than this fail with RecordTooLarge (spec.md §4.1).
	MaxLineLength int
}

// DefaultDecoderOptions mirrors spec.md §4.1's default of 100 MiB.
var DefaultDecoderOptions = DecoderOptions{
	MaxLineLength: DefaultMaxLineLength,
}

// Merge layers non-zero fields of each opts over o, left to right,
// the same layering idiom the teacher's DecoderOptions.Merge uses for
// IPFIX decoder options.
func (o *DecoderOptions) Merge(opts ...DecoderOptions) {
	for _, opt := range opts {
		if opt.MaxLineLength != 0 {
			o.MaxLineLength = opt.MaxLineLength
		}
	}
}

// Decoder decodes normalized PICA+ lines into BorrowedRecords. A
// Decoder never allocates beyond the record it returns: fields and
// subfields alias the line passed to Decode (spec.md §4.1).
type Decoder struct {
	options DecoderOptions
	metrics *decoderMetrics
}

type decoderMetrics struct {
	decodedTotal int64
	droppedTotal int64
}

// NewDecoder creates a Decoder, merging opts over DefaultDecoderOptions.
func NewDecoder(opts ...DecoderOptions) *Decoder {
	options := DefaultDecoderOptions
	options.Merge(opts...)
	return &Decoder{options: options, metrics: &decoderMetrics{}}
}

// Decode parses a single record line (without its terminating LF) into
// a BorrowedRecord. line must not include the trailing newline; Decode
// never looks for one. Returns EmptyLine for a zero-length input.
//
// On error, the returned *DecodeError carries the byte offset within
// line where decoding failed, per spec.md §4.1's decoding contract.
func (d *Decoder) Decode(line []byte) (BorrowedRecord, error) {
	start := time.Now()
	defer func() {
		decodeDuration.Observe(float64(time.Since(start).Microseconds()))
	}()

	if len(line) == 0 {
		decodeErrorsTotal.WithLabelValues(EmptyLine.String()).Inc()
		return BorrowedRecord{}, newDecodeError(EmptyLine, 0, ErrEmptyLine)
	}
	if len(line) > d.options.MaxLineLength {
		decodeErrorsTotal.WithLabelValues(RecordTooLarge.String()).Inc()
		return BorrowedRecord{}, newDecodeError(RecordTooLarge, d.options.MaxLineLength, ErrRecordTooLarge)
	}

	var fields []Field
	offset := 0
	for offset < len(line) {
		fieldEnd := bytes.IndexByte(line[offset:], RS)
		if fieldEnd < 0 {
			decodeErrorsTotal.WithLabelValues(TrailingBytes.String()).Inc()
			return BorrowedRecord{}, newDecodeError(TrailingBytes, offset, ErrTrailingBytes)
		}
		fieldEnd += offset

		f, err := decodeField(line[offset:fieldEnd], offset)
		if err != nil {
			de := err.(*DecodeError)
			decodeErrorsTotal.WithLabelValues(de.Kind.String()).Inc()
			return BorrowedRecord{}, err
		}
		fields = append(fields, f)
		offset = fieldEnd + 1
	}

	if len(fields) == 0 {
		decodeErrorsTotal.WithLabelValues(MissingSubfield.String()).Inc()
		return BorrowedRecord{}, newDecodeError(MissingSubfield, 0, ErrNoFields)
	}

	decodedRecordsTotal.Inc()
	d.metrics.decodedTotal++
	return BorrowedRecord{fields: fields}, nil
}

// decodeField decodes a single field's bytes, NOT including its
// trailing RS. baseOffset is the field's start offset within the
// whole line, used to produce absolute byte offsets in errors.
func decodeField(b []byte, baseOffset int) (Field, error) {
	sp := bytes.IndexByte(b, SP)
	if sp < 0 {
		return Field{}, newDecodeError(MissingSubfield, baseOffset, ErrMissingSubfield)
	}

	prefix := b[:sp]
	var tagBytes []byte
	var occ Occurrence
	if slash := bytes.IndexByte(prefix, '/'); slash >= 0 {
		tagBytes = prefix[:slash]
		o, err := ParseOccurrence(prefix[slash+1:])
		if err != nil {
			return Field{}, newDecodeError(InvalidOccurrence, baseOffset+slash+1, err)
		}
		occ = o
	} else {
		tagBytes = prefix
	}

	tag, err := ParseTag(tagBytes)
	if err != nil {
		return Field{}, newDecodeError(InvalidTag, baseOffset, err)
	}

	rest := b[sp+1:]
	if len(rest) == 0 || rest[0] != US {
		return Field{}, newDecodeError(MissingSubfield, baseOffset+sp+1, ErrMissingSubfield)
	}

	var subfields []Subfield
	for len(rest) > 0 {
		if rest[0] != US {
			return Field{}, newDecodeError(MissingSubfield, baseOffset+sp+1, ErrMissingSubfield)
		}
		rest = rest[1:]
		if len(rest) == 0 {
			return Field{}, newDecodeError(InvalidSubfieldCode, baseOffset+sp+1, ErrInvalidSubfieldCode)
		}
		code, err := ParseSubfieldCode(rest[0])
		if err != nil {
			return Field{}, newDecodeError(InvalidSubfieldCode, baseOffset+sp+1, err)
		}
		rest = rest[1:]

		next := bytes.IndexByte(rest, US)
		var value []byte
		if next < 0 {
			value = rest
			rest = nil
		} else {
			value = rest[:next]
			rest = rest[next:]
		}
		subfields = append(subfields, Subfield{Code: code, Value: value})
	}

	if len(subfields) == 0 {
		return Field{}, newDecodeError(MissingSubfield, baseOffset, ErrMissingSubfield)
	}

	return Field{Tag: tag, Occurrence: occ, Subfields: subfields}, nil
}
