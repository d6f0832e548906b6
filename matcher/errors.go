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

import "fmt"

// ParseError reports a failure to compile a matcher expression, with
// the byte offset into the source expression where the failure was
// detected (spec.md §7's ParseExpression error kind).
type ParseError struct {
	Expr   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("matcher: parse error at offset %d in %q: %s", e.Offset, e.Expr, e.Reason)
}

// RegexError wraps a regexp.Compile failure encountered while
// compiling a "=~"/"!~" operator (spec.md §7's Regex error kind).
type RegexError struct {
	Pattern string
	Err     error
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("matcher: invalid regular expression %q: %v", e.Pattern, e.Err)
}

func (e *RegexError) Unwrap() error {
	return e.Err
}
