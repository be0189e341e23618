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

package automaton

import "fmt"

// kind tags which of the three transition channels a Key addresses.
type kind uint8

const (
	kindValue kind = iota
	kindEOF
	kindDefault
)

// Key identifies one of a node's transition slots: a value key (one per
// alphabet symbol), the EOF slot, or the default slot. Keys are not
// ordered semantically; they form a small closed set per §4.2.
type Key[K comparable] struct {
	kind kind
	val  K
}

// ValueKey addresses the transition slot for alphabet symbol v.
func ValueKey[K comparable](v K) Key[K] {
	return Key[K]{kind: kindValue, val: v}
}

// EOFKey addresses the distinguished end-of-input transition slot.
func EOFKey[K comparable]() Key[K] {
	return Key[K]{kind: kindEOF}
}

// DefaultKey addresses the distinguished default transition slot.
func DefaultKey[K comparable]() Key[K] {
	return Key[K]{kind: kindDefault}
}

// IsEOF reports whether k addresses the EOF slot.
func (k Key[K]) IsEOF() bool { return k.kind == kindEOF }

// IsDefault reports whether k addresses the default slot.
func (k Key[K]) IsDefault() bool { return k.kind == kindDefault }

// Value returns the alphabet symbol addressed by k. Only meaningful when
// k is a value key.
func (k Key[K]) Value() K { return k.val }

func (k Key[K]) String() string {
	switch k.kind {
	case kindEOF:
		return "<EOF>"
	case kindDefault:
		return "<Default>"
	default:
		return stringifyKeyValue(k.val)
	}
}

// stringifyKeyValue renders a key's alphabet symbol for the §6 debug dump
// format: printable bytes as themselves, control bytes as backslash-decimal.
func stringifyKeyValue[K comparable](v K) string {
	if b, ok := any(v).(byte); ok {
		if b < 32 || b == 127 {
			return fmt.Sprintf("\\%d", b)
		}
		return string([]byte{b})
	}
	return fmt.Sprintf("%v", v)
}
