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
	"fmt"
	"os"

	"github.com/gbv/pica"
	"github.com/gbv/pica/stream"
)

// recordFunc processes one decoded record; returning an error aborts
// the whole run with exitUserError.
type recordFunc func(r pica.Record) error

// forEachRecord drives paths (defaulting to stdin when empty) through
// stream.Open, applying fn to every successfully decoded record. A
// decode failure that isn't swallowed by opts.SkipInvalid stops the
// run and returns exitDecodeError, per spec.md §6.3's exit code
// contract.
func forEachRecord(paths []string, opts stream.Options, fn recordFunc) int {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, p := range paths {
		code := forEachRecordIn(p, opts, fn)
		if code != exitOK {
			return code
		}
	}
	return exitOK
}

func forEachRecordIn(path string, opts stream.Options, fn recordFunc) int {
	r, err := stream.Open(path, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pica: %s: %v\n", path, err)
		return exitUserError
	}
	defer r.Close()

	for {
		item, ok := r.Next()
		if !ok {
			break
		}
		if !item.Ok() {
			fmt.Fprintf(os.Stderr, "pica: %s: %v\n", path, item.Err)
			return exitDecodeError
		}
		if err := fn(item.Record); err != nil {
			fmt.Fprintf(os.Stderr, "pica: %v\n", err)
			return exitUserError
		}
	}
	if err := r.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "pica: %s: %v\n", path, err)
		return exitUserError
	}
	return exitOK
}
