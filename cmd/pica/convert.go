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

package main

import (
	"flag"
	"fmt"

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
	"github.com/gbv/pica/convert"
)

// cmdConvert re-encodes matching records into one of the alternate
// wire formats (spec.md §6.2): plain (the default, one line per field
// and a blank line after each record), binary, import, json, xml.
func cmdConvert(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	format := fs.String("to", "plain", "output format: plain|binary|import|json|xml")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: convert: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: convert: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: convert: %v", err)
	}
	defer closeOut()

	var writeRecord func(r pica.Record) error
	var openStream, closeStream func() error

	switch *format {
	case "plain":
		writeRecord = func(r pica.Record) error { return convert.WritePlain(out, r) }
	case "binary":
		writeRecord = func(r pica.Record) error { _, err := convert.WriteBinary(out, r); return err }
	case "import":
		writeRecord = func(r pica.Record) error { _, err := convert.WriteImport(out, r); return err }
	case "json":
		jw := convert.NewJSONWriter(out)
		writeRecord = jw.WriteRecord
		openStream = jw.Open
		closeStream = jw.Close
	case "xml":
		xw := convert.NewXMLWriter(out)
		writeRecord = xw.WriteRecord
		openStream = xw.Open
		closeStream = xw.Close
	default:
		fail(exitUserError, "pica: convert: unknown format %q", *format)
	}

	if openStream != nil {
		if err := openStream(); err != nil {
			fail(exitUserError, "pica: convert: %v", err)
		}
	}

	code := forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		if err := writeRecord(r); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		return nil
	})
	if code != exitOK {
		return code
	}

	if closeStream != nil {
		if err := closeStream(); err != nil {
			fail(exitUserError, "pica: convert: %v", err)
		}
	}
	return exitOK
}
