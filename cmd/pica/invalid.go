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

	"github.com/gbv/pica/config"
	"github.com/gbv/pica/stream"
)

// cmdInvalid reports every line that failed to decode, instead of the
// decoded records, for auditing a feed before running it through the
// other commands (SPEC_FULL.md §4.11). It never halts on a decode
// error regardless of --skip-invalid: that flag would otherwise
// suppress exactly what this command exists to surface.
func cmdInvalid(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("invalid", flag.ContinueOnError)
	cf := registerCommon(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	setupLogging(cf.verbose)

	out, closeOut, err := cf.openOutput()
	if err != nil {
		fail(exitUserError, "pica: invalid: %v", err)
	}
	defer closeOut()
	bw := bufio.NewWriter(out)
	defer bw.Flush()

	opts := stream.Options{SkipInvalid: false, HaltOnFirstError: false}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var bad int
	for _, p := range paths {
		r, err := stream.Open(p, opts)
		if err != nil {
			fail(exitUserError, "pica: invalid: %s: %v", p, err)
		}
		for {
			item, ok := r.Next()
			if !ok {
				break
			}
			if item.Ok() {
				continue
			}
			bad++
			fmt.Fprintf(bw, "%s: %s: %q\n", p, item.Err.Reason, item.Err.Bytes)
		}
		if err := r.Err(); err != nil {
			r.Close()
			fail(exitUserError, "pica: invalid: %s: %v", p, err)
		}
		r.Close()
	}

	if bad > 0 {
		return exitDecodeError
	}
	return exitOK
}
