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

// DefaultStrsimThreshold is applied by Eval whenever Options carries
// the zero value for StrsimThreshold (spec.md §9 Open Question (b)).
const DefaultStrsimThreshold = 0.75

// Options is carried alongside evaluation, never encoded into the
// parsed AST (spec.md §4.3). It is passed by value through every Eval
// call so a single compiled matcher can be reused concurrently with
// different option sets.
type Options struct {
	// CaseIgnore lowercases both sides via Unicode simple casefold
	// before every comparison.
	CaseIgnore bool
	// StrsimThreshold is the minimum Jaro-Winkler similarity for "=*"
	// to hold. Zero means "unset"; Eval substitutes
	// DefaultStrsimThreshold in that case.
	StrsimThreshold float64
	// Normalization, if non-nil, normalizes both sides of every
	// comparison (and every regex input) to the same Unicode form
	// before comparing.
	Normalization *NormalizationForm
}

// threshold returns the effective similarity threshold for this option set.
func (o Options) threshold() float64 {
	if o.StrsimThreshold == 0 {
		return DefaultStrsimThreshold
	}
	return o.StrsimThreshold
}
