package config

import (
	"strings"
	"testing"
)

func TestDecodeAppliesDefaultsAndOverrides(t *testing.T) {
	yaml := "case_ignore: true\nnormalization: nfkc\nkeep:\n  - \"041A\"\n  - \"065R/01\"\n"
	cfg, err := Decode(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !cfg.CaseIgnore {
		t.Fatalf("expected case_ignore true")
	}
	if cfg.StrsimThreshold != Default.StrsimThreshold {
		t.Fatalf("expected default strsim_threshold to survive, got %v", cfg.StrsimThreshold)
	}
	if len(cfg.Keep) != 2 {
		t.Fatalf("expected 2 keep entries, got %d", len(cfg.Keep))
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("not_a_real_key: true\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown config key")
	}
}

func TestMatcherOptionsProjectsNormalization(t *testing.T) {
	cfg, err := Decode(strings.NewReader("normalization: nfd\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	opts, err := cfg.MatcherOptions()
	if err != nil {
		t.Fatalf("MatcherOptions: %v", err)
	}
	if opts.Normalization == nil {
		t.Fatalf("expected a normalization form")
	}
}

func TestMatcherOptionsOmitsNormalizationWhenEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	opts, err := cfg.MatcherOptions()
	if err != nil {
		t.Fatalf("MatcherOptions: %v", err)
	}
	if opts.Normalization != nil {
		t.Fatalf("expected no normalization form")
	}
}

func TestKeepRulesParsesTagAndOccurrence(t *testing.T) {
	cfg, err := Decode(strings.NewReader("keep:\n  - \"041A\"\n  - \"065R/01\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rules, err := cfg.KeepRules()
	if err != nil {
		t.Fatalf("KeepRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
}

func TestKeepRulesRejectsGarbage(t *testing.T) {
	cfg, err := Decode(strings.NewReader("keep:\n  - \"not a tag\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := cfg.KeepRules(); err == nil {
		t.Fatalf("expected an error for an invalid keep rule")
	}
}
