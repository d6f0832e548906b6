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
	"github.com/gbv/pica/reduce"
)

// cmdFilter evaluates --where (and friends) over each record, and for
// records that pass, optionally rewrites their field list with
// --keep/--discard before writing them out (spec.md §4.6).
func cmdFilter(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	var keep, discard multiFlag
	fs.Var(&keep, "keep", "tag[/occurrence] rule to retain (repeatable)")
	fs.Var(&discard, "discard", "tag[/occurrence] rule to drop (repeatable)")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	if len(keep) > 0 && len(discard) > 0 {
		fail(exitUserError, "pica: filter: --keep and --discard are mutually exclusive")
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: filter: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: filter: %v", err)
	}

	var reducer *reduce.Reducer
	if len(keep) > 0 {
		rules, err := config.ParseRules(keep)
		if err != nil {
			fail(exitUserError, "pica: filter: --keep: %v", err)
		}
		reducer = &reduce.Reducer{Rules: rules, Discard: false}
	} else if len(discard) > 0 {
		rules, err := config.ParseRules(discard)
		if err != nil {
			fail(exitUserError, "pica: filter: --discard: %v", err)
		}
		reducer = &reduce.Reducer{Rules: rules, Discard: true}
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: filter: %v", err)
	}
	defer closeOut()

	return forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		if reducer != nil {
			reduced, ok := reducer.Apply(r)
			if !ok {
				return nil
			}
			_, err := pica.Encode(out, reduced)
			return err
		}
		_, err := pica.Encode(out, r)
		return err
	})
}
