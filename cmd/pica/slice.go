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

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
)

// cmdSlice emits records at 1-based positions [from, to] (to == 0
// means "through the end"), counting only records that pass --where,
// in input order (spec.md §5's ordering guarantee for positional
// selection).
func cmdSlice(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("slice", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	from := fs.Int("from", 1, "first matching record to emit (1-based)")
	to := fs.Int("to", 0, "last matching record to emit, inclusive (0 = unbounded)")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	if *from < 1 {
		fail(exitUserError, "pica: slice: --from must be >= 1")
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: slice: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: slice: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: slice: %v", err)
	}
	defer closeOut()

	var n int
	return forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		n++
		if n < *from {
			return nil
		}
		if *to > 0 && n > *to {
			return nil
		}
		_, err := pica.Encode(out, r)
		return err
	})
}
