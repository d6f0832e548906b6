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
	"bufio"
	"bytes"
	"flag"

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
	"github.com/gbv/pica/selection"
)

// cmdSelect projects each record through a selection.Selection,
// emitting one separator-delimited line per resulting row (spec.md
// §4.4). The expression is the first positional argument; any
// remaining positionals are treated as input paths.
func cmdSelect(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	emptyOK := fs.Bool("empty-ok", false, "emit a row with empty cells instead of dropping it when a selector yields nothing")
	squash := fs.Bool("squash", false, "join each selector's own values before taking the product")
	squashSep := fs.String("squash-sep", selection.DefaultSeparator, "separator used by --squash")
	merge := fs.Bool("merge", false, "join all rows for a record into a single row")
	mergeSep := fs.String("merge-sep", selection.DefaultSeparator, "separator used by --merge")
	sep := fs.String("sep", "\t", "column separator in the output")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	rest := fs.Args()
	if len(rest) == 0 {
		fail(exitUserError, "pica: select: an expression is required")
	}
	expr, paths := rest[0], rest[1:]

	sel, err := selection.Parse(expr)
	if err != nil {
		fail(exitUserError, "pica: select: %v", err)
	}
	if *emptyOK {
		sel.EmptyPolicy = selection.EmptyRowsOK
	}
	sel.Squash = *squash
	sel.SquashSep = *squashSep
	sel.Merge = *merge
	sel.MergeSep = *mergeSep

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: select: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: select: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: select: %v", err)
	}
	defer closeOut()
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	return forEachRecord(paths, cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		for _, row := range sel.Rows(r, opts) {
			if _, err := bw.WriteString(rowString(row, *sep)); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

func rowString(row [][]byte, sep string) string {
	return string(bytes.Join(row, []byte(sep)))
}
