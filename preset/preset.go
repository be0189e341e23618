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

// Package preset offers a handful of commonly needed patterns, ready to
// embed into a larger graph with Builder.Match and its relatives. Every
// function here returns a fresh fragment: a *automaton.Builder[byte,
// struct{}] whose graph is the pattern and whose current cursor set is
// the pattern's own exits, exactly the shape Match expects.
package preset

import (
	"github.com/flatgraph/automaton"
	"github.com/flatgraph/automaton/charset"
)

// Digit matches a single ASCII digit.
func Digit() *automaton.Builder[byte, struct{}] {
	return automaton.NewByteBuilder[struct{}]().MatchAnyOf(charset.Digits...)
}

// Integer matches a JSON-style integer: either a lone "0", or a
// non-zero digit followed by zero or more further digits. It never
// matches a string with a redundant leading zero.
func Integer() *automaton.Builder[byte, struct{}] {
	zero := automaton.NewByteBuilder[struct{}]().MatchSequence('0')

	nonZero := append([]byte{}, charset.Digits[1:]...) // '1'-'9'
	rest := automaton.NewByteBuilder[struct{}]().
		MatchAnyOf(nonZero...).
		MatchManyOptionally(Digit())

	return automaton.NewByteBuilder[struct{}]().MatchOneOf(zero, rest)
}

// ZeroPrefixableInteger matches one or more ASCII digits, with no
// restriction on leading zeros — "007" is as valid as "7".
func ZeroPrefixableInteger() *automaton.Builder[byte, struct{}] {
	return automaton.NewByteBuilder[struct{}]().MatchMany(Digit())
}

// SimpleIdentifier matches a C-style identifier: a letter or
// underscore, followed by zero or more letters, digits or underscores.
func SimpleIdentifier() *automaton.Builder[byte, struct{}] {
	head := append(append([]byte{}, charset.Alphabet...), '_')
	tail := append(append([]byte{}, head...), charset.Digits...)

	tailPattern := automaton.NewByteBuilder[struct{}]().MatchAnyOf(tail...)
	return automaton.NewByteBuilder[struct{}]().
		MatchAnyOf(head...).
		MatchManyOptionally(tailPattern)
}

// CLikeComment matches either a "//"-prefixed line comment (not
// including the terminating newline) or a "/* ... */" block comment.
// The block comment body follows the usual (not-star | star+ not-slash)*
// star+ slash shape, so a run of stars just before the closing slash is
// handled without the machine backtracking.
func CLikeComment() *automaton.Builder[byte, struct{}] {
	anyExceptNewline := automaton.NewByteBuilder[struct{}]().MatchAnyOf(allBytesExcept('\n')...)
	line := automaton.NewByteBuilder[struct{}]().
		MatchSequence('/', '/').
		MatchOptionally(automaton.NewByteBuilder[struct{}]().MatchManyOptionally(anyExceptNewline))

	star := func() *automaton.Builder[byte, struct{}] {
		return automaton.NewByteBuilder[struct{}]().MatchSequence('*')
	}
	notStar := automaton.NewByteBuilder[struct{}]().MatchAnyOf(allBytesExcept('*')...)
	starsThenNotSlash := automaton.NewByteBuilder[struct{}]().
		MatchMany(star()).
		MatchAnyOf(allBytesExcept('*', '/')...)
	bodyElement := automaton.NewByteBuilder[struct{}]().MatchOneOf(notStar, starsThenNotSlash)

	block := automaton.NewByteBuilder[struct{}]().MatchSequence('/', '*')
	block.MatchManyOptionally(bodyElement)
	block.MatchMany(star()).MatchSequence('/')

	return automaton.NewByteBuilder[struct{}]().MatchOneOf(line, block)
}

func allBytesExcept(excluded ...byte) []byte {
	skip := make(map[byte]bool, len(excluded))
	for _, e := range excluded {
		skip[e] = true
	}
	out := make([]byte, 0, 256)
	for v := 0; v < 256; v++ {
		if !skip[byte(v)] {
			out = append(out, byte(v))
		}
	}
	return out
}
