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
	"encoding/xml"
	"io"

	"github.com/gbv/pica"
)

// picaXMLNamespace is the GBV picaXML-v1.0 schema namespace (spec.md
// §6.2).
const picaXMLNamespace = "info:srw/schema/5/picaXML-v1.0"

type xmlSubfield struct {
	XMLName xml.Name `xml:"subfield"`
	Code    string   `xml:"code,attr"`
	Value   string   `xml:",chardata"`
}

type xmlDatafield struct {
	XMLName    xml.Name      `xml:"datafield"`
	Tag        string        `xml:"tag,attr"`
	Occurrence string        `xml:"occurrence,attr,omitempty"`
	Subfields  []xmlSubfield `xml:"subfield"`
}

type xmlRecord struct {
	XMLName    xml.Name       `xml:"record"`
	Datafields []xmlDatafield `xml:"datafield"`
}

func toXMLRecord(r pica.Record) xmlRecord {
	fields := r.Fields()
	out := xmlRecord{Datafields: make([]xmlDatafield, len(fields))}
	for i, f := range fields {
		subfields := make([]xmlSubfield, len(f.Subfields))
		for j, sf := range f.Subfields {
			subfields[j] = xmlSubfield{Code: sf.Code.String(), Value: string(sf.Value)}
		}
		df := xmlDatafield{Tag: f.Tag.String(), Subfields: subfields}
		if f.Occurrence.Present() {
			df.Occurrence = f.Occurrence.String()
		}
		out.Datafields[i] = df
	}
	return out
}

// XMLWriter streams records as picaXML <record> elements wrapped in a
// single <collection>, one record at a time (spec.md §6.2).
type XMLWriter struct {
	w   io.Writer
	enc *xml.Encoder
}

// NewXMLWriter wraps w.
func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{w: w, enc: xml.NewEncoder(w)}
}

// Open writes the XML declaration and the opening <collection> tag.
func (xw *XMLWriter) Open() error {
	if _, err := io.WriteString(xw.w, xml.Header); err != nil {
		return err
	}
	start := xml.StartElement{
		Name: xml.Name{Local: "collection"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: picaXMLNamespace}},
	}
	return xw.enc.EncodeToken(start)
}

// WriteRecord encodes r as a <record> element.
func (xw *XMLWriter) WriteRecord(r pica.Record) error {
	if err := xw.enc.Encode(toXMLRecord(r)); err != nil {
		return err
	}
	return xw.enc.Flush()
}

// Close writes the closing </collection> tag.
func (xw *XMLWriter) Close() error {
	end := xml.EndElement{Name: xml.Name{Local: "collection"}}
	if err := xw.enc.EncodeToken(end); err != nil {
		return err
	}
	return xw.enc.Flush()
}
