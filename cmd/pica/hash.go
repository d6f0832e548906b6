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
	"github.com/gbv/pica/hashsum"
)

// cmdHash emits "ppn\thash" for each matching record, the hash being
// the SHA-256 of the record's exact normalized bytes including its
// terminating newline (spec.md §4.8, §8).
func cmdHash(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: hash: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: hash: %v", err)
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: hash: %v", err)
	}
	defer closeOut()
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	return forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		e := hashsum.Hash(r)
		_, err := fmt.Fprintf(bw, "%s\t%s\n", e.PPN, e.Hash)
		return err
	})
}
