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

package matcher

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizationForm names one of the four Unicode normalization forms
// an Options value may request (spec.md §4.3). Modeled on the
// enum-with-String/MarshalText/UnmarshalText shape the teacher uses
// for its IANA registry enums.
type NormalizationForm byte

const (
	NFC NormalizationForm = iota
	NFD
	NFKC
	NFKD
)

func (f NormalizationForm) String() string {
	switch f {
	case NFC:
		return "NFC"
	case NFD:
		return "NFD"
	case NFKC:
		return "NFKC"
	case NFKD:
		return "NFKD"
	default:
		return fmt.Sprintf("NormalizationForm(%d)", byte(f))
	}
}

func (f NormalizationForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *NormalizationForm) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "NFC":
		*f = NFC
	case "NFD":
		*f = NFD
	case "NFKC":
		*f = NFKC
	case "NFKD":
		*f = NFKD
	default:
		return fmt.Errorf("matcher: unknown normalization form %q", text)
	}
	return nil
}

func (f NormalizationForm) form() norm.Form {
	switch f {
	case NFD:
		return norm.NFD
	case NFKC:
		return norm.NFKC
	case NFKD:
		return norm.NFKD
	default:
		return norm.NFC
	}
}

// normalizeBytes applies the requested normalization form, if any, to
// b, returning b unchanged when opts.Normalization is nil.
func normalizeBytes(b []byte, opts Options) []byte {
	if opts.Normalization == nil {
		return b
	}
	return opts.Normalization.form().Bytes(b)
}

var foldCaser = cases.Fold()

// foldCase applies Unicode simple casefold, used by Options.CaseIgnore.
func foldCase(s string) string {
	return foldCaser.String(s)
}

// prepare applies, in order, normalization then (optionally) case
// folding, the common pre-processing every comparison operator runs
// both operands through.
func prepare(b []byte, opts Options) string {
	b = normalizeBytes(b, opts)
	s := string(b)
	if opts.CaseIgnore {
		s = foldCase(s)
	}
	return s
}
