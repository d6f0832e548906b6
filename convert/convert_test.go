package convert

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gbv/pica"
)

const sampleLine = "003@ \x1f0123456789\x1e021A/01 \x1faSmith\x1fbJohn\x1e"

func decodeSample(t *testing.T) pica.Record {
	t.Helper()
	d := pica.NewDecoder()
	r, err := d.Decode([]byte(sampleLine))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func TestWritePlain(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	if err := WritePlain(&buf, r); err != nil {
		t.Fatalf("WritePlain: %v", err)
	}
	want := "003@ $0123456789\n021A/01 $aSmith $bJohn\n\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteBinaryAppendsTrailingNUL(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	if _, err := WriteBinary(&buf, r); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	normalized := pica.EncodeToBytes(r)
	got := buf.Bytes()
	if len(got) != len(normalized)+1 {
		t.Fatalf("expected len %d, got %d", len(normalized)+1, len(got))
	}
	if !bytes.Equal(got[:len(normalized)], normalized) {
		t.Fatalf("binary prefix does not match normalized encoding")
	}
	if got[len(got)-1] != NUL {
		t.Fatalf("expected trailing NUL, got %x", got[len(got)-1])
	}
}

func TestWriteImportReplacesTagSeparatorWithHT(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	if _, err := WriteImport(&buf, r); err != nil {
		t.Fatalf("WriteImport: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "003@\x09") {
		t.Fatalf("expected HT after tag, got %q", got)
	}
	if strings.Contains(got, "003@\x20") {
		t.Fatalf("did not expect SP after tag, got %q", got)
	}
	// Subfield structure itself is untouched.
	if !strings.Contains(got, "\x1f0123456789") {
		t.Fatalf("expected subfield bytes preserved, got %q", got)
	}
}

func TestWriteImportPreservesSpaceInValues(t *testing.T) {
	d := pica.NewDecoder()
	r, err := d.Decode([]byte("021A \x1faSmith Jr\x1e"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	if _, err := WriteImport(&buf, r); err != nil {
		t.Fatalf("WriteImport: %v", err)
	}
	if !strings.Contains(buf.String(), "Smith Jr") {
		t.Fatalf("expected embedded space preserved in value, got %q", buf.String())
	}
}

func TestJSONWriterProducesArrayOfRecordArrays(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)
	if err := jw.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := jw.WriteRecord(r); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := jw.WriteRecord(r); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := jw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var records [][]jsonField
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(records[0]) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(records[0]))
	}
	if records[0][0].Tag != "003@" {
		t.Fatalf("got tag %q", records[0][0].Tag)
	}
	if records[0][1].Occurrence != "01" {
		t.Fatalf("got occurrence %q", records[0][1].Occurrence)
	}
}

func TestXMLWriterProducesWellFormedCollection(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	xw := NewXMLWriter(&buf)
	if err := xw.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := xw.WriteRecord(r); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	type collection struct {
		XMLName xml.Name      `xml:"collection"`
		Records []xmlRecordIn `xml:"record"`
	}
	var out collection
	if err := xml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid XML: %v\n%s", err, buf.String())
	}
	if len(out.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out.Records))
	}
	if len(out.Records[0].Datafields) != 2 {
		t.Fatalf("expected 2 datafields, got %d", len(out.Records[0].Datafields))
	}
	if out.Records[0].Datafields[1].Occurrence != "01" {
		t.Fatalf("got occurrence %q", out.Records[0].Datafields[1].Occurrence)
	}
}

type xmlRecordIn struct {
	Datafields []struct {
		Tag        string `xml:"tag,attr"`
		Occurrence string `xml:"occurrence,attr"`
	} `xml:"datafield"`
}
