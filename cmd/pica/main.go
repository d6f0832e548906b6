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

	"github.com/gbv/pica/config"
)

var commands = map[string]func(cfg *config.Config, args []string) int{
	"cat":       cmdCat,
	"filter":    cmdFilter,
	"select":    cmdSelect,
	"frequency": cmdFrequency,
	"partition": cmdPartition,
	"count":     cmdCount,
	"slice":     cmdSlice,
	"split":     cmdSplit,
	"sample":    cmdSample,
	"print":     cmdPrint,
	"convert":   cmdConvert,
	"hash":      cmdHash,
	"invalid":   cmdInvalid,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUserError
	}

	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		usage()
		return exitOK
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "pica: unknown command %q\n", name)
		usage()
		return exitUserError
	}

	cfg, err := config.Discover()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pica: loading config: %v\n", err)
		return exitUserError
	}

	return cmd(cfg, args[1:])
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pica <command> [flags] [file ...]")
	fmt.Fprintln(os.Stderr, "commands:")
	for _, name := range []string{
		"cat", "filter", "select", "frequency", "partition", "count",
		"slice", "split", "sample", "print", "convert", "hash", "invalid",
	} {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
}
