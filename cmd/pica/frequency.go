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
	"flag"
	"fmt"

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
	"github.com/gbv/pica/frequency"
	"github.com/gbv/pica/selection"
)

// cmdFrequency tallies the distinct rows a selection.Selection produces
// across the whole input, then prints them ordered by count (spec.md
// §4.7).
func cmdFrequency(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("frequency", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	unique := fs.Bool("unique", false, "count each distinct row at most once per record")
	limit := fs.Int("limit", 0, "report only the top N rows (0 = all)")
	threshold := fs.Int("threshold", 0, "drop rows with a count below this")
	reverse := fs.Bool("reverse", false, "sort ascending instead of descending")
	sep := fs.String("sep", "\t", "column separator in the output")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	rest := fs.Args()
	if len(rest) == 0 {
		fail(exitUserError, "pica: frequency: an expression is required")
	}
	expr, paths := rest[0], rest[1:]

	sel, err := selection.Parse(expr)
	if err != nil {
		fail(exitUserError, "pica: frequency: %v", err)
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: frequency: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: frequency: %v", err)
	}

	counter := &frequency.Counter{Unique: *unique}

	code := forEachRecord(paths, cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		rows := sel.Rows(r, opts)
		converted := make([]frequency.Row, len(rows))
		for i, row := range rows {
			converted[i] = frequency.Row(row)
		}
		counter.Add(converted)
		return nil
	})
	if code != exitOK {
		return code
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: frequency: %v", err)
	}
	defer closeOut()
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	for _, e := range counter.Results(frequency.Options{Limit: *limit, Threshold: *threshold, Reverse: *reverse}) {
		fmt.Fprintf(bw, "%d%s%s\n", e.Count, *sep, rowString(e.Value, *sep))
	}
	return exitOK
}
