//  Copyright (c) 2017 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package charset provides the small, fixed character sets the preset
// package builds its patterns from: digits, letters, whitespace and
// control bytes, expressed as []byte ready for Builder.MatchAnyOf.
package charset

// Digits is the ASCII digit set '0'-'9'.
var Digits = rangeOf('0', '9')

// AlphabetLower is the ASCII lowercase letter set 'a'-'z'.
var AlphabetLower = rangeOf('a', 'z')

// AlphabetUpper is the ASCII uppercase letter set 'A'-'Z'.
var AlphabetUpper = rangeOf('A', 'Z')

// Alphabet is AlphabetLower and AlphabetUpper combined.
var Alphabet = append(append([]byte{}, AlphabetLower...), AlphabetUpper...)

// Whitespace is the common ASCII whitespace set: space, tab, newline,
// carriage return, form feed, vertical tab.
var Whitespace = []byte{' ', '\t', '\n', '\r', '\f', '\v'}

// Control is every ASCII control byte, 0x00-0x1F plus DEL (0x7F).
var Control = append(rangeOf(0, 31), 127)

func rangeOf(lo, hi byte) []byte {
	out := make([]byte, 0, int(hi)-int(lo)+1)
	for b := lo; ; b++ {
		out = append(out, b)
		if b == hi {
			break
		}
	}
	return out
}
