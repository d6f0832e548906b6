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

package pica

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsUpper reports whether b is an ASCII uppercase letter.
func IsUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// IsAlphanumeric reports whether b is an ASCII letter or digit, the
// alphabet a SubfieldCode is drawn from.
func IsAlphanumeric(b byte) bool {
	return IsDigit(b) || IsUpper(b) || (b >= 'a' && b <= 'z')
}
