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

// This file holds the non-ambiguous linking routine and the four
// composition primitives built on it: Match (sub-pattern embedding),
// MatchOptionally, MatchMany and MatchManyOptionally (Kleene closure).
// All four treat a *Builder[K, V] passed to them as a self-contained
// pattern fragment: its graph is the pattern's structure, and its
// current cursor set is the pattern's own dangling exits — the nodes
// reached after matching the pattern once, in the state the caller left
// it in before handing it to the host builder. A pattern is never
// mutated by embedding; every primitive here clones into the host.

type linkPair[K comparable, V comparable] struct {
	a, b Handle
}

// unify returns a handle whose node behaves like the union of a and b:
// every transition either has, folded together, with b's accept cell
// merged into a's under the host's conflict policy. Neither a nor b is
// mutated — unify clones rather than overwrites, so other handles that
// still reference a or b unchanged continue to see exactly what they
// saw before. Cycles reachable from a or b are handled by a pair-keyed
// visited map: once a (a, b) pair starts being cloned, any transition
// that leads back to that same pair resolves to the in-progress clone
// instead of recursing forever — this is what the spec calls
// self-reference accommodation.
func (b *Builder[K, V]) unify(a, c Handle) Handle {
	if a == c {
		return a
	}
	return b.unifyRec(a, c, make(map[linkPair[K, V]]Handle))
}

func (b *Builder[K, V]) unifyRec(a, c Handle, visited map[linkPair[K, V]]Handle) Handle {
	if a == c {
		return a
	}
	p := linkPair[K, V]{a, c}
	if h, ok := visited[p]; ok {
		return h
	}

	merged := b.store.get(a).clone()
	newHandle := b.store.push()
	b.store.replace(newHandle, merged)
	visited[p] = newHandle
	visited[linkPair[K, V]{c, a}] = newHandle

	if acc := b.store.get(c).accept(); acc != nil {
		b.mergeAcceptInto(merged, newHandle, acc)
		if b.err != nil {
			return newHandle
		}
	}

	b.store.get(c).eachTransition(func(k Key[K], h Handle) Handle {
		if b.err != nil {
			return h
		}
		existing := merged.get(k)
		switch {
		case existing == NoHandle:
			merged.set(k, h)
		case existing == h:
			// already correct, nothing to fold in
		default:
			merged.set(k, b.unifyRec(existing, h, visited))
		}
		return h
	})

	return newHandle
}

func (b *Builder[K, V]) mergeAcceptInto(n node[K, V], h Handle, incoming *Accept[V]) {
	existing := n.accept()
	if existing == nil {
		a := *incoming
		n.setAccept(&a)
		return
	}
	if existing.Equal(*incoming) {
		return
	}
	switch b.policy {
	case ConflictSkip:
	case ConflictOverwrite:
		a := *incoming
		n.setAccept(&a)
	case ConflictErrorPolicy:
		b.err = &ConflictError{Handle: h, Existing: *existing, New: *incoming}
	}
}

// nonAmbiguousLink installs a transition from `from` on `key` to `to`
// without disturbing whatever `from` already has on that key: if there
// is nothing there yet, it links directly; if it already links to `to`,
// there is nothing to do; otherwise the existing destination is unified
// with `to` and `from` is relinked to the merged result, leaving the
// original destination node unchanged for any other referrer.
func (b *Builder[K, V]) nonAmbiguousLink(from Handle, key Key[K], to Handle) {
	if b.err != nil || to == NoHandle {
		return
	}
	n := b.store.get(from)
	existing := n.get(key)
	switch {
	case existing == NoHandle:
		n.set(key, to)
	case existing == to:
	default:
		n.set(key, b.unify(existing, to))
	}
}

// fanRootInto installs every transition of a pattern's root node into
// dest, translating each destination handle through translate first —
// rootNode's own transitions are still expressed in the pattern's own
// handle space, since embedGraph never clones the root itself.
func (b *Builder[K, V]) fanRootInto(dest Handle, rootNode node[K, V], translate map[Handle]Handle) {
	rootNode.eachTransition(func(k Key[K], h Handle) Handle {
		b.nonAmbiguousLink(dest, k, translate[h])
		return h
	})
}

// embedGraph clones every non-root node of src into the host store,
// translating transition handles as it goes, and returns the old-to-new
// handle map. src's own Root handle translates to NoHandle: a pattern
// that contains an internal transition back to its own root (a loop
// built by nesting MatchMany inside the pattern's own construction,
// rather than using MatchMany to wrap it) cannot be re-expressed against
// the host's unrelated Root, so that edge is dropped rather than
// silently rewired into the host's own start state. Building such loops
// with MatchMany/MatchManyOptionally directly avoids the issue, since
// those primitives manage the cycle against the pattern's translated
// copy rather than its original root.
func (b *Builder[K, V]) embedGraph(src *Store[K, V]) map[Handle]Handle {
	translate := make(map[Handle]Handle, src.size())
	translate[Root] = NoHandle
	src.forEach(func(h Handle, n node[K, V]) {
		if h == Root {
			return
		}
		translate[h] = b.store.push()
	})
	src.forEach(func(h Handle, n node[K, V]) {
		if h == Root {
			return
		}
		clone := n.clone()
		clone.eachTransition(func(k Key[K], th Handle) Handle {
			return translate[th]
		})
		b.store.replace(translate[h], clone)
	})
	return translate
}

type embedResult struct {
	translate    map[Handle]Handle
	exits        []Handle
	matchesEmpty bool
}

// embedOnce clones pattern into the host and fans its root's
// transitions into every current host cursor, without changing the
// host's cursor set. It reports the translated exits (pattern's own
// cursor set, translated) and whether the pattern can match the empty
// string (its cursor set still included Root).
func (b *Builder[K, V]) embedOnce(pattern *Builder[K, V]) embedResult {
	translate := b.embedGraph(pattern.store)
	rootNode := pattern.store.get(Root)
	for _, c := range b.cursors {
		b.fanRootInto(c, rootNode, translate)
		if b.err != nil {
			return embedResult{}
		}
	}

	exits := make([]Handle, 0, len(pattern.cursors))
	matchesEmpty := false
	for _, e := range pattern.cursors {
		if e == Root {
			matchesEmpty = true
			continue
		}
		exits = append(exits, translate[e])
	}
	return embedResult{translate: translate, exits: exits, matchesEmpty: matchesEmpty}
}

// installCycle folds pattern's root transitions into every exit, so
// that reaching an exit behaves like reaching the pattern's start again
// — the repeat edge of a Kleene closure, installed against the already-
// embedded copy rather than re-cloning the pattern per repetition.
func (b *Builder[K, V]) installCycle(pattern *Builder[K, V], translate map[Handle]Handle, exits []Handle) {
	rootNode := pattern.store.get(Root)
	for _, e := range exits {
		b.fanRootInto(e, rootNode, translate)
		if b.err != nil {
			return
		}
	}
}

// MatchOneOf embeds each of patterns independently, all starting from
// the same pre-match cursor set, and unions their exits — alternation
// between full sub-patterns, as opposed to MatchAnyOf's alternation
// between single symbols.
func (b *Builder[K, V]) MatchOneOf(patterns ...*Builder[K, V]) *Builder[K, V] {
	if b.err != nil || len(patterns) == 0 {
		return b
	}
	before := b.Cursors()
	var union []Handle
	for _, p := range patterns {
		b.setCursors(append([]Handle{}, before...))
		r := b.embedOnce(p)
		if b.err != nil {
			return b
		}
		union = append(union, r.exits...)
		if r.matchesEmpty {
			union = append(union, before...)
		}
	}
	b.setCursors(union)
	return b
}

// Match embeds pattern once: the cursor set becomes pattern's exits,
// translated into the host graph. If pattern can match the empty
// string, the host's pre-match cursors remain exits too.
func (b *Builder[K, V]) Match(pattern *Builder[K, V]) *Builder[K, V] {
	if b.err != nil || pattern == nil {
		return b
	}
	before := b.Cursors()
	r := b.embedOnce(pattern)
	if b.err != nil {
		return b
	}
	cursors := r.exits
	if r.matchesEmpty {
		cursors = append(cursors, before...)
	}
	b.setCursors(cursors)
	return b
}

// MatchOptionally embeds pattern zero or one times: the cursor set
// becomes pattern's exits union the pre-match cursors, so the path can
// either take the pattern or skip it entirely.
func (b *Builder[K, V]) MatchOptionally(pattern *Builder[K, V]) *Builder[K, V] {
	if b.err != nil || pattern == nil {
		return b
	}
	before := b.Cursors()
	r := b.embedOnce(pattern)
	if b.err != nil {
		return b
	}
	cursors := append(r.exits, before...)
	b.setCursors(cursors)
	return b
}

// MatchMany embeds pattern one or more times: after the first mandatory
// occurrence, every exit also behaves like the pattern's start, so the
// path may loop back through the same embedded copy indefinitely.
func (b *Builder[K, V]) MatchMany(pattern *Builder[K, V]) *Builder[K, V] {
	if b.err != nil || pattern == nil {
		return b
	}
	before := b.Cursors()
	r := b.embedOnce(pattern)
	if b.err != nil {
		return b
	}
	exits := r.exits
	if r.matchesEmpty {
		exits = append(exits, before...)
	}
	b.installCycle(pattern, r.translate, exits)
	if b.err != nil {
		return b
	}
	b.setCursors(exits)
	return b
}

// MatchManyOptionally embeds pattern zero or more times: the cursor set
// becomes the pre-match cursors union the looped exits, so the path may
// skip the pattern, take it once, or repeat it any number of times.
func (b *Builder[K, V]) MatchManyOptionally(pattern *Builder[K, V]) *Builder[K, V] {
	if b.err != nil || pattern == nil {
		return b
	}
	before := b.Cursors()
	// Clone the pattern without fanning it into any cursor yet: the cycle
	// is installed on the exits first, then the entry from every
	// pre-match cursor.
	b.cursors = nil
	r := b.embedOnce(pattern)
	if b.err != nil {
		return b
	}
	exits := r.exits
	b.installCycle(pattern, r.translate, exits)
	b.installCycle(pattern, r.translate, before)
	if b.err != nil {
		return b
	}
	cursors := append(append([]Handle{}, exits...), before...)
	b.setCursors(cursors)
	return b
}
