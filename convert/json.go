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
	"encoding/json"
	"io"

	"github.com/gbv/pica"
)

type jsonSubfield struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type jsonField struct {
	Tag        string         `json:"tag"`
	Occurrence string         `json:"occurrence,omitempty"`
	Subfields  []jsonSubfield `json:"subfields"`
}

func toJSONFields(r pica.Record) []jsonField {
	fields := r.Fields()
	out := make([]jsonField, len(fields))
	for i, f := range fields {
		subfields := make([]jsonSubfield, len(f.Subfields))
		for j, sf := range f.Subfields {
			subfields[j] = jsonSubfield{Code: sf.Code.String(), Value: string(sf.Value)}
		}
		jf := jsonField{Tag: f.Tag.String(), Subfields: subfields}
		if f.Occurrence.Present() {
			jf.Occurrence = f.Occurrence.String()
		}
		out[i] = jf
	}
	return out
}

// JSONWriter streams records as a top-level JSON array, each record
// itself an array of field objects (spec.md §6.2), without
// materializing more than one record's worth of JSON at a time.
type JSONWriter struct {
	w       io.Writer
	started bool
}

// NewJSONWriter wraps w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Open writes the opening array bracket. Call once before any
// WriteRecord.
func (jw *JSONWriter) Open() error {
	_, err := io.WriteString(jw.w, "[")
	return err
}

// WriteRecord appends r's JSON encoding to the array.
func (jw *JSONWriter) WriteRecord(r pica.Record) error {
	if jw.started {
		if _, err := io.WriteString(jw.w, ","); err != nil {
			return err
		}
	}
	data, err := json.Marshal(toJSONFields(r))
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(data); err != nil {
		return err
	}
	jw.started = true
	return nil
}

// Close writes the closing array bracket. Call once after the last
// WriteRecord.
func (jw *JSONWriter) Close() error {
	_, err := io.WriteString(jw.w, "]")
	return err
}
