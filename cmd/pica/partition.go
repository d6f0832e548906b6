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

// cmdPartition routes records into one file per key, where the key is
// the first value a path expression yields for the record (records
// yielding no value go to "_", SPEC_FULL.md §4.11).
func cmdPartition(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("partition", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	dir := fs.String("dir", ".", "directory to write partition files into")
	pattern := fs.String("pattern", "%s.pica", "filename pattern; %s is replaced by the sanitized key")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	rest := fs.Args()
	if len(rest) == 0 {
		fail(exitUserError, "pica: partition: a key path expression is required")
	}
	expr, paths := rest[0], rest[1:]

	keyPath, err := path.Parse(expr)
	if err != nil {
		fail(exitUserError, "pica: partition: %v", err)
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: partition: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: partition: %v", err)
	}

	pw := partition.NewWriter(*dir, *pattern, partition.NormalizedEncoder)
	defer pw.Close()

	keyer := partition.KeyerFunc(func(r pica.Record) string {
		vals := keyPath.Values(r, opts)
		if len(vals) == 0 {
			return "_"
		}
		return string(vals[0])
	})

	return forEachRecord(paths, cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		return pw.WriteKeyed(keyer, r)
	})
}
