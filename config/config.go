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

// Package config implements the pica.yaml configuration file format
// (SPEC_FULL.md §6.5): global defaults for case-sensitivity, string
// similarity, normalization, and field reduction, layered under
// explicit CLI flags.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gbv/pica/fieldsel"
	"github.com/gbv/pica/matcher"
	"github.com/gbv/pica/reduce"
)

// Config mirrors pica.yaml's top-level keys (SPEC_FULL.md §6.5).
type Config struct {
	CaseIgnore      bool     `yaml:"case_ignore"`
	StrsimThreshold float64  `yaml:"strsim_threshold"`
	Normalization   string   `yaml:"normalization"` // nfc|nfd|nfkc|nfkd, "" for none
	Keep            []string `yaml:"keep"`
	Discard         []string `yaml:"discard"`
	Gzip            bool     `yaml:"gzip"`
	SkipInvalid     bool     `yaml:"skip_invalid"`
}

// Default mirrors the matcher package's own default similarity
// threshold, so an absent pica.yaml and an empty one behave the same.
var Default = Config{
	StrsimThreshold: matcher.DefaultStrsimThreshold,
}

// Load reads and validates a Config from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a Config from r, rejecting unknown keys so a typo in
// pica.yaml fails loudly instead of silently falling back to a
// default, the same posture the teacher's YAML reader takes with
// dec.KnownFields(true).
func Decode(r io.Reader) (*Config, error) {
	cfg := Default
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// searchPaths returns the locations cmd/pica checks, in priority
// order, before falling back to built-in defaults (SPEC_FULL.md §6.5).
func searchPaths() []string {
	var paths []string
	paths = append(paths, "pica.yaml")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "pica", "pica.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pica", "pica.yaml"))
	}
	return paths
}

// Discover loads the first config file found along searchPaths,
// falling back to Default if none exist.
func Discover() (*Config, error) {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return Load(p)
	}
	cfg := Default
	return &cfg, nil
}

// MatcherOptions projects the relevant Config fields into a
// matcher.Options (also usable as a path.Options, since path.Options
// is a type alias of it).
func (c *Config) MatcherOptions() (matcher.Options, error) {
	opts := matcher.Options{
		CaseIgnore:      c.CaseIgnore,
		StrsimThreshold: c.StrsimThreshold,
	}
	if c.Normalization != "" {
		var form matcher.NormalizationForm
		if err := form.UnmarshalText([]byte(c.Normalization)); err != nil {
			return matcher.Options{}, fmt.Errorf("config: normalization: %w", err)
		}
		opts.Normalization = &form
	}
	return opts, nil
}

// KeepRules parses Keep into reduce.Rules for a keep-mode Reducer.
func (c *Config) KeepRules() ([]reduce.Rule, error) {
	return parseRules(c.Keep)
}

// DiscardRules parses Discard into reduce.Rules for a discard-mode
// Reducer.
func (c *Config) DiscardRules() ([]reduce.Rule, error) {
	return parseRules(c.Discard)
}

// ParseRules parses a list of "tag[/occ]" strings into reduce.Rules,
// the same grammar pica.yaml's keep/discard lists use. Exported so the
// CLI can apply it to --keep/--discard flags too.
func ParseRules(exprs []string) ([]reduce.Rule, error) {
	return parseRules(exprs)
}

// parseRules parses a list of "tag[/occ]" strings into reduce.Rules.
func parseRules(exprs []string) ([]reduce.Rule, error) {
	rules := make([]reduce.Rule, 0, len(exprs))
	for _, expr := range exprs {
		rule, err := parseRule(expr)
		if err != nil {
			return nil, fmt.Errorf("config: rule %q: %w", expr, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseRule(expr string) (reduce.Rule, error) {
	tag, pos, err := fieldsel.ScanTagMatcher(expr, 0)
	if err != nil {
		return reduce.Rule{}, err
	}
	if pos == len(expr) {
		return reduce.Rule{Tag: tag}, nil
	}
	if expr[pos] != '/' {
		return reduce.Rule{}, fmt.Errorf("expected '/' at offset %d, got %q", pos, expr[pos:])
	}
	occ, pos, err := fieldsel.ScanOccMatcher(expr, pos+1)
	if err != nil {
		return reduce.Rule{}, err
	}
	if pos != len(expr) {
		return reduce.Rule{}, fmt.Errorf("trailing characters at offset %d in %q", pos, expr)
	}
	return reduce.Rule{Tag: tag, Occurrence: occ}, nil
}
