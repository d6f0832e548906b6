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
	"github.com/gbv/pica/partition"
	"github.com/gbv/pica/path"
)

// cmdSplit divides the input into multiple files, either into
// fixed-size chunks (--size) or by a path expression's value (--by);
// exactly one of the two must be given (SPEC_FULL.md §4.11).
func cmdSplit(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	dir := fs.String("dir", ".", "directory to write split files into")
	pattern := fs.String("pattern", "part-%s.pica", "filename pattern; %s is replaced by the sanitized key")
	size := fs.Int("size", 0, "split into chunks of this many records each")
	by := fs.String("by", "", "split by this path expression's first value instead of --size")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	if (*size > 0) == (*by != "") {
		fail(exitUserError, "pica: split: exactly one of --size or --by is required")
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: split: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: split: %v", err)
	}

	var keyer partition.Keyer
	if *size > 0 {
		keyer = &partition.SizeKeyer{Size: *size}
	} else {
		byPath, err := path.Parse(*by)
		if err != nil {
			fail(exitUserError, "pica: split: --by: %v", err)
		}
		keyer = partition.KeyerFunc(func(r pica.Record) string {
			vals := byPath.Values(r, opts)
			if len(vals) == 0 {
				return "_"
			}
			return string(vals[0])
		})
	}

	pw := partition.NewWriter(*dir, *pattern, partition.NormalizedEncoder)
	defer pw.Close()

	return forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		return pw.WriteKeyed(keyer, r)
	})
}
