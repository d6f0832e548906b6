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
	"math/rand"

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
)

// cmdSample draws a fixed-size, uniform reservoir sample from the
// matching records of the input, deterministic for a given --seed
// (spec.md §5). Sampled records must outlive the single-line buffer
// backing the stream, so they are retained as OwnedRecord copies.
func cmdSample(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	n := fs.Int("n", 1, "number of records to sample")
	seed := fs.Int64("seed", 0, "seed for the reservoir's random source")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	if *n < 1 {
		fail(exitUserError, "pica: sample: -n must be >= 1")
	}

	pred, err := cf.predicate()
	if err != nil {
		fail(exitUserError, "pica: sample: %v", err)
	}
	opts, err := cf.matcherOptions()
	if err != nil {
		fail(exitUserError, "pica: sample: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	reservoir := make([]pica.OwnedRecord, 0, *n)
	var seen int

	code := forEachRecord(fs.Args(), cf.streamOptions(), func(r pica.Record) error {
		if pred != nil && !pred.Eval(r, opts) {
			return nil
		}
		seen++
		if len(reservoir) < *n {
			reservoir = append(reservoir, toOwned(r))
			return nil
		}
		j := rng.Intn(seen)
		if j < *n {
			reservoir[j] = toOwned(r)
		}
		return nil
	})
	if code != exitOK {
		return code
	}

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: sample: %v", err)
	}
	defer closeOut()

	for _, r := range reservoir {
		if _, err := pica.Encode(out, r); err != nil {
			fail(exitUserError, "pica: sample: %v", err)
		}
	}
	return exitOK
}

func toOwned(r pica.Record) pica.OwnedRecord {
	if b, ok := r.(pica.BorrowedRecord); ok {
		return b.ToOwned()
	}
	return r.(pica.OwnedRecord)
}
