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
)

// cmdCount reports how many records match --where (and friends).
func cmdCount(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: count: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: count: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: count: %v", err)
	}
	defer closeOut()

	var n int
	code := forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred == nil || pred.Eval(r, opts) {
			n++
		}
		return nil
	})
	if code != exitOK {
		return code
	}
	fmt.Fprintln(out, n)
	return exitOK
}
