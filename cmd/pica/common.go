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

// Command pica is the CLI surface over the core packages (spec.md
// §6.3): filter, select, frequency, partition, count, slice, split,
// sample, print, cat, convert, hash, invalid, each a thin dispatcher
// that wires its flags unchanged into matcher.Options/path.Options and
// the core engines.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"

	"github.com/gbv/pica"
	"github.com/gbv/pica/config"
	"github.com/gbv/pica/matcher"
	"github.com/gbv/pica/stream"
)

// Exit codes (spec.md §6.3).
const (
	exitOK          = 0
	exitUserError   = 1
	exitDecodeError = 2
)

// commonFlags holds the flag set every core-visible command shares
// (spec.md §6.3): -s/--skip-invalid, -i/--ignore-case,
// --strsim-threshold, --translit, --where/--and/--or/--not,
// -o/--output, -g/--gzip.
type commonFlags struct {
	skipInvalid     bool
	ignoreCase      bool
	strsimThreshold float64
	translit        string
	where           string
	and             multiFlag
	or              multiFlag
	not             multiFlag
	output          string
	gzipOut         bool
	verbose         bool
}

// multiFlag collects a repeatable flag's values in order of
// appearance, for --and/--or/--not composability (spec.md §4.3, §6.3).
type multiFlag []string

func (m *multiFlag) String() string {
	return fmt.Sprint([]string(*m))
}

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// registerCommon registers the shared flag set on fs, seeded from cfg
// so pica.yaml values are the defaults and CLI flags override them.
func registerCommon(fs *flag.FlagSet, cfg *config.Config) *commonFlags {
	cf := &commonFlags{
		skipInvalid:     cfg.SkipInvalid,
		strsimThreshold: cfg.StrsimThreshold,
		translit:        cfg.Normalization,
		gzipOut:         cfg.Gzip,
	}
	fs.BoolVar(&cf.skipInvalid, "skip-invalid", cf.skipInvalid, "skip lines that fail to decode instead of halting")
	fs.BoolVar(&cf.skipInvalid, "s", cf.skipInvalid, "shorthand for --skip-invalid")
	fs.BoolVar(&cf.ignoreCase, "ignore-case", cfg.CaseIgnore, "case-insensitive comparisons")
	fs.BoolVar(&cf.ignoreCase, "i", cfg.CaseIgnore, "shorthand for --ignore-case")
	fs.Float64Var(&cf.strsimThreshold, "strsim-threshold", cf.strsimThreshold, "similarity threshold for the =* operator")
	fs.StringVar(&cf.translit, "translit", cf.translit, "normalize values before comparing: nfc|nfd|nfkc|nfkd")
	fs.StringVar(&cf.where, "where", "", "record matcher expression")
	fs.Var(&cf.and, "and", "additional matcher ANDed with --where (repeatable)")
	fs.Var(&cf.or, "or", "additional matcher ORed with --where (repeatable)")
	fs.Var(&cf.not, "not", "matcher whose negation is ANDed with --where (repeatable)")
	fs.StringVar(&cf.output, "output", "-", "output path, \"-\" for stdout")
	fs.StringVar(&cf.output, "o", "-", "shorthand for --output")
	fs.BoolVar(&cf.gzipOut, "gzip", cf.gzipOut, "gzip-compress the output")
	fs.BoolVar(&cf.gzipOut, "g", cf.gzipOut, "shorthand for --gzip")
	fs.BoolVar(&cf.verbose, "v", false, "enable debug logging")
	return cf
}

// matcherOptions projects the common flags into a matcher.Options,
// layering the --translit flag over any config-file normalization.
func (cf *commonFlags) matcherOptions() (matcher.Options, error) {
	opts := matcher.Options{
		CaseIgnore:      cf.ignoreCase,
		StrsimThreshold: cf.strsimThreshold,
	}
	if cf.translit != "" {
		var form matcher.NormalizationForm
		if err := form.UnmarshalText([]byte(cf.translit)); err != nil {
			return matcher.Options{}, fmt.Errorf("--translit: %w", err)
		}
		opts.Normalization = &form
	}
	return opts, nil
}

// predicate compiles --where/--and/--or/--not into a single composed
// matcher.RecordMatcher, post-parse, per spec.md §6.3's composability
// requirement. A nil result with a nil error means "no predicate was
// given" — every record passes.
func (cf *commonFlags) predicate() (matcher.RecordMatcher, error) {
	var m matcher.RecordMatcher
	if cf.where != "" {
		parsed, err := matcher.Parse(cf.where)
		if err != nil {
			return nil, fmt.Errorf("--where: %w", err)
		}
		m = parsed
	}
	for _, expr := range cf.and {
		parsed, err := matcher.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("--and: %w", err)
		}
		m = combineAnd(m, parsed)
	}
	for _, expr := range cf.or {
		parsed, err := matcher.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("--or: %w", err)
		}
		m = combineOr(m, parsed)
	}
	for _, expr := range cf.not {
		parsed, err := matcher.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("--not: %w", err)
		}
		m = combineAnd(m, matcher.Not(parsed))
	}
	return m, nil
}

func combineAnd(m, next matcher.RecordMatcher) matcher.RecordMatcher {
	if m == nil {
		return next
	}
	return matcher.And(m, next)
}

func combineOr(m, next matcher.RecordMatcher) matcher.RecordMatcher {
	if m == nil {
		return next
	}
	return matcher.Or(m, next)
}

// streamOptions projects the common flags into a stream.Options.
func (cf *commonFlags) streamOptions() stream.Options {
	return stream.Options{SkipInvalid: cf.skipInvalid, HaltOnFirstError: !cf.skipInvalid}
}

// openOutput opens cf.output for writing, wrapping it in a gzip writer
// if --gzip was given. The caller must call the returned close
// function exactly once.
func (cf *commonFlags) openOutput() (io.Writer, func() error, error) {
	var w io.Writer
	var closers []io.Closer
	if cf.output == "-" || cf.output == "" {
		w = os.Stdout
	} else {
		f, err := os.Create(cf.output)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closers = append(closers, f)
	}
	if cf.gzipOut {
		gz := gzip.NewWriter(w)
		w = gz
		closers = append([]io.Closer{gz}, closers...)
	}
	return w, func() error {
		var first error
		for _, c := range closers {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}, nil
}

// stdlibLogSink is a minimal logr.LogSink over the standard library's
// log package, used when -v is given. go-logr ships a ready-made
// adapter for this (stdr), but it lives in a module no pack repo
// imports; a dozen lines of direct log.Logger calls serve the same
// purpose without adding an unused dependency surface.
type stdlibLogSink struct {
	logger *log.Logger
	level  int
	name   string
}

func (s stdlibLogSink) Init(logr.RuntimeInfo) {}

func (s stdlibLogSink) Enabled(level int) bool { return level <= s.level }

func (s stdlibLogSink) Info(level int, msg string, keysAndValues ...interface{}) {
	s.logger.Printf("%s%s %v", s.prefix(), msg, keysAndValues)
}

func (s stdlibLogSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.logger.Printf("%sERROR %s: %v %v", s.prefix(), msg, err, keysAndValues)
}

func (s stdlibLogSink) WithName(name string) logr.LogSink {
	s.name = name
	return s
}

func (s stdlibLogSink) WithValues(...interface{}) logr.LogSink {
	return s
}

func (s stdlibLogSink) prefix() string {
	if s.name == "" {
		return ""
	}
	return "[" + s.name + "] "
}

// setupLogging wires pica.Log to a stderr sink, enabled up to debug
// level (V(1)) when verbose is set and up to level 0 otherwise.
func setupLogging(verbose bool) {
	level := 0
	if verbose {
		level = 1
	}
	pica.SetLogger(logr.New(stdlibLogSink{logger: log.New(os.Stderr, "", log.LstdFlags), level: level}))
}

// fail prints msg to stderr and exits with code.
func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
