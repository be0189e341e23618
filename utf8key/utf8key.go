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

// Package utf8key expands runes into the raw UTF-8 bytes a byte-keyed
// automaton matches them against, and decodes them back. A rune never
// gets its own transition key; every machine in this module matches
// bytes, and a multi-byte rune is just a short, fixed sequence of them.
package utf8key

import (
	"errors"
	"unicode/utf8"
)

// ErrMalformedUTF8 is returned by Decode when input is not valid UTF-8.
var ErrMalformedUTF8 = errors.New("utf8key: malformed UTF-8")

// ContinuationMin and ContinuationMax bound the byte range every UTF-8
// continuation byte falls in: 0b10xxxxxx. A pattern that needs to match
// "any continuation byte" — the Go-idiomatic stand-in for masking the
// transition key down to a single wildcard class — does so with
// Builder.MatchAnyOf against this range rather than bit-masking the key
// itself, since a byte-keyed node already has one transition slot per
// concrete byte value and gains nothing from collapsing 64 of them.
const (
	ContinuationMin = 0x80
	ContinuationMax = 0xBF
)

// Expand returns the raw UTF-8 byte sequence for r, one to four bytes.
func Expand(r rune) []byte {
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n]
}

// Decode reads every rune out of b, returning ErrMalformedUTF8 at the
// first invalid byte sequence rather than substituting
// utf8.RuneError and continuing, so a caller never mistakes a decode
// failure for a legitimate U+FFFD in the input.
func Decode(b []byte) ([]rune, error) {
	out := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return nil, ErrMalformedUTF8
		}
		out = append(out, r)
		b = b[size:]
	}
	return out, nil
}

// ContinuationRange returns every byte value a UTF-8 continuation byte
// can take, for use with Builder.MatchAnyOf.
func ContinuationRange() []byte {
	out := make([]byte, 0, ContinuationMax-ContinuationMin+1)
	for v := ContinuationMin; v <= ContinuationMax; v++ {
		out = append(out, byte(v))
	}
	return out
}
