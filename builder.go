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

// Builder constructs a graph one primitive at a time. It holds a cursor
// set — the multiset of handles every primitive reads and rewrites — and
// a sticky error: once a ConflictError policy fires, every fluent call
// becomes a no-op until the caller inspects Err(). Construction never
// panics on a caller mistake that the spec classifies as recoverable;
// it panics only on the invariant violations store.go already guards
// (dereferencing a handle that was never allocated).
type Builder[K comparable, V comparable] struct {
	store   *Store[K, V]
	cursors []Handle
	policy  ConflictPolicy
	err     error
}

// NewBuilder creates a Builder whose nodes are map-backed, for any
// comparable alphabet K.
func NewBuilder[K comparable, V comparable]() *Builder[K, V] {
	return &Builder[K, V]{
		store:   newStore[K, V](newMapNode[K, V]),
		cursors: []Handle{Root},
	}
}

// NewByteBuilder creates a Builder specialized for K = byte, backed by a
// fixed 258-slot transition array per node instead of a map. Use this
// for the common case of matching raw bytes or UTF-8-expanded runes.
func NewByteBuilder[V comparable]() *Builder[byte, V] {
	return &Builder[byte, V]{
		store:   newStore[byte, V](newByteNode[V]),
		cursors: []Handle{Root},
	}
}

// Root returns the handle of the graph's root node.
func (b *Builder[K, V]) Root() Handle { return Root }

// Conflict sets the policy used to resolve accept-cell and merge
// collisions for every primitive called afterward.
func (b *Builder[K, V]) Conflict(policy ConflictPolicy) *Builder[K, V] {
	b.policy = policy
	return b
}

// Err returns the sticky construction error, if any primitive has hit a
// collision under ConflictErrorPolicy. It is never cleared, and Clone
// copies it.
func (b *Builder[K, V]) Err() error { return b.err }

// Cursors returns a snapshot of the current cursor set, mostly useful
// for tests and debug dumps.
func (b *Builder[K, V]) Cursors() []Handle {
	out := make([]Handle, len(b.cursors))
	copy(out, b.cursors)
	return out
}

func (b *Builder[K, V]) setCursors(hs []Handle) {
	seen := make(map[Handle]bool, len(hs))
	out := hs[:0:0]
	for _, h := range hs {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	b.cursors = out
}

// MatchSequence advances the cursor set through each symbol in order,
// as if calling a single-symbol match once per element.
func (b *Builder[K, V]) MatchSequence(seq ...K) *Builder[K, V] {
	for _, v := range seq {
		if b.err != nil {
			return b
		}
		b.advanceKeys([]Key[K]{ValueKey(v)})
	}
	return b
}

// MatchAnyOf advances the cursor set by any one of the given symbols,
// all converging on the same resulting state — a character class.
func (b *Builder[K, V]) MatchAnyOf(values ...K) *Builder[K, V] {
	if b.err != nil || len(values) == 0 {
		return b
	}
	keys := make([]Key[K], len(values))
	for i, v := range values {
		keys[i] = ValueKey(v)
	}
	b.advanceKeys(keys)
	return b
}

// MatchEOF advances the cursor set by the distinguished end-of-input
// transition, used by file-mode matching (§4.4).
func (b *Builder[K, V]) MatchEOF() *Builder[K, V] {
	if b.err != nil {
		return b
	}
	b.advanceKeys([]Key[K]{EOFKey[K]()})
	return b
}

// MatchDefault advances the cursor set by the distinguished default
// transition, taken when no more specific transition matches.
func (b *Builder[K, V]) MatchDefault() *Builder[K, V] {
	if b.err != nil {
		return b
	}
	b.advanceKeys([]Key[K]{DefaultKey[K]()})
	return b
}

// Terminal marks every node in the current cursor set as accepting,
// carrying value and backBy, without moving the cursor set.
func (b *Builder[K, V]) Terminal(value V, backBy uint32) *Builder[K, V] {
	b.markAccept(value, backBy)
	return b
}

// ExitPoint marks the current cursor set as accepting with the zero
// value of V and the given backBy — the usual marker for pure-regex
// machines built with V = struct{}, where only acceptance and back_by
// matter and there is no payload to carry. FullMatch and FullMatchFile
// ignore backBy, since a full match always consumes the whole input;
// only Lookup, FindFirst and FindAll shorten the reported end by it.
func (b *Builder[K, V]) ExitPoint(backBy uint32) *Builder[K, V] {
	var zero V
	return b.Terminal(zero, backBy)
}

// Commit marks the current cursor set as accepting and then returns the
// cursor set to {Root}, ready to build an unrelated pattern.
func (b *Builder[K, V]) Commit(value V, backBy uint32) *Builder[K, V] {
	b.markAccept(value, backBy)
	return b.GoBack()
}

// CommitContinue marks the current cursor set as accepting without
// resetting the cursor set, so a longer pattern sharing this prefix can
// keep being built from the same position — the overlapping-literals case
// where "ab" accepts but "abc" should too.
func (b *Builder[K, V]) CommitContinue(value V, backBy uint32) *Builder[K, V] {
	b.markAccept(value, backBy)
	return b
}

// GoBack resets the cursor set to {Root} without marking anything.
func (b *Builder[K, V]) GoBack() *Builder[K, V] {
	if b.err != nil {
		return b
	}
	b.cursors = []Handle{Root}
	return b
}

func (b *Builder[K, V]) markAccept(value V, backBy uint32) {
	if b.err != nil {
		return
	}
	next := Accept[V]{Value: value, BackBy: backBy}
	for _, c := range b.cursors {
		n := b.store.get(c)
		existing := n.accept()
		if existing == nil {
			a := next
			n.setAccept(&a)
			continue
		}
		if existing.Equal(next) {
			continue
		}
		switch b.policy {
		case ConflictSkip:
		case ConflictOverwrite:
			a := next
			n.setAccept(&a)
		case ConflictErrorPolicy:
			b.err = &ConflictError{Handle: c, Existing: *existing, New: next}
			return
		}
	}
}

// advanceKeys is the single primitive behind MatchSequence, MatchAnyOf,
// MatchEOF and MatchDefault: every cursor advances by every key in keys,
// all converging on one resulting node. Any transition a cursor already
// has on one of these keys is folded into that result via unify rather
// than overwritten, so unrelated paths through an already-shared node
// are never disturbed.
func (b *Builder[K, V]) advanceKeys(keys []Key[K]) {
	if b.err != nil {
		return
	}
	var next Handle
	for _, c := range b.cursors {
		for _, k := range keys {
			if h := b.store.get(c).get(k); h != NoHandle {
				if next == NoHandle {
					next = h
				} else if next != h {
					next = b.unify(next, h)
					if b.err != nil {
						return
					}
				}
			}
		}
	}
	if next == NoHandle {
		next = b.store.push()
	}
	for _, c := range b.cursors {
		n := b.store.get(c)
		for _, k := range keys {
			n.set(k, next)
		}
	}
	b.setCursors([]Handle{next})
}

// Clone returns a deep, independent copy of the builder, including its
// cursor set and sticky error.
func (b *Builder[K, V]) Clone() *Builder[K, V] {
	c := &Builder[K, V]{
		store:   b.store.clone(),
		cursors: make([]Handle, len(b.cursors)),
		policy:  b.policy,
		err:     b.err,
	}
	copy(c.cursors, b.cursors)
	return c
}

// Compile runs the optimizer and returns an immutable Machine snapshot.
// It fails if the builder is carrying a sticky construction error.
func (b *Builder[K, V]) Compile() (*Machine[K, V], error) {
	if b.err != nil {
		return nil, b.err
	}
	b.Optimize()
	return newMachine(b.store.clone()), nil
}
