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
	"github.com/gbv/pica/hashsum"
)

// cmdCat streams records through to the output unchanged, optionally
// filtering with --where and de-duplicating with --unique. --unique
// keys on PPN when present, else the record's content hash, keeping
// memory at O(distinct_ppns or distinct_hashes) per spec.md §5.
func cmdCat(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	unique := fs.Bool("unique", false, "drop records whose PPN (or content hash) was already seen")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: cat: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: cat: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: cat: %v", err)
	}
	defer closeOut()

	seen := make(map[string]struct{})

	return forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		if *unique {
			key, ok := r.PPN()
			k := string(key)
			if !ok {
				k = hashsum.Sum(r)
			}
			if _, dup := seen[k]; dup {
				return nil
			}
			seen[k] = struct{}{}
		}
		_, err := pica.Encode(out, r)
		if err != nil {
			return fmt.Errorf("cat: %w", err)
		}
		return nil
	})
}
