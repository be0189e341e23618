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

import "github.com/willf/bitset"

// Optimize repeatedly applies four passes — nullify null-references,
// fuse duplicates, nullify orphans, compact — until a full round leaves
// the graph unchanged. It never changes the language the graph accepts,
// is always safe to call more than once, and always leaves every cursor
// on a live node afterward. Compile calls it automatically; it is
// exported so a caller can Optimize mid-construction to shrink memory
// use before continuing to build.
func (b *Builder[K, V]) Optimize() {
	for {
		changed := b.nullifyNullRefs()
		changed = b.removeDuplicatesOnce() || changed
		changed = b.nullifyOrphans() || changed
		if !changed {
			break
		}
	}
	b.compact()
}

// nullifyNullRefs clears any transition pointing at a node that carries
// no accept and no outgoing transitions of its own — a dead end that can
// never lead to acceptance. Clearing such a reference can itself turn
// the referring node into a dead end, so the caller re-runs this pass to
// a fixpoint as part of Optimize's outer loop.
func (b *Builder[K, V]) nullifyNullRefs() bool {
	changed := false
	isNull := bitset.New(uint(b.store.size()))
	b.store.forEach(func(h Handle, n node[K, V]) {
		if n.isNull() {
			isNull.Set(uint(h))
		}
	})
	b.store.forEach(func(h Handle, n node[K, V]) {
		n.eachTransition(func(k Key[K], th Handle) Handle {
			if th != Root && isNull.Test(uint(th)) {
				changed = true
				return NoHandle
			}
			return th
		})
	})
	return changed
}

// removeDuplicatesOnce walks handles in descending order and folds any
// node that is structurally identical to one already kept from a higher
// handle into that kept node — so every fuse target was seen earlier in
// this same pass, and a node is never compared against one that might
// still be fused away itself later in the pass. Two nodes compare equal
// if they carry the same accept cell and, slot for slot, the same
// transitions — except that a slot where both nodes transition to
// themselves counts as equal even though the literal handles differ,
// since after fusing, "themselves" is the same node for both. A node
// currently in the builder's cursor set is never fused with one that
// isn't, even if otherwise identical: a cursor is the writable frontier
// construction will extend next, and merging it with a node that isn't
// a cursor would let a later write against one cursor silently reach
// through the fused node into whatever the other cursor's sibling path
// was building.
func (b *Builder[K, V]) removeDuplicatesOnce() bool {
	changed := false
	fused := bitset.New(uint(b.store.size()))
	isCursor := bitset.New(uint(b.store.size()))
	for _, c := range b.cursors {
		isCursor.Set(uint(c))
	}
	var kept []Handle

	b.store.reverseForEach(func(h Handle, n node[K, V]) {
		if fused.Test(uint(h)) || n.isNull() {
			return
		}
		for _, k := range kept {
			if k == h {
				continue
			}
			if isCursor.Test(uint(k)) != isCursor.Test(uint(h)) {
				continue
			}
			if nodesEqual(b.store.get(k), n, k, h) {
				fused.Set(uint(h))
				b.redirect(h, k)
				n.nullify()
				changed = true
				return
			}
		}
		kept = append(kept, h)
	})
	return changed
}

func nodesEqual[K comparable, V comparable](a, c node[K, V], aHandle, cHandle Handle) bool {
	aAccept, cAccept := a.accept(), c.accept()
	switch {
	case aAccept == nil && cAccept != nil, aAccept != nil && cAccept == nil:
		return false
	case aAccept != nil && cAccept != nil && !aAccept.Equal(*cAccept):
		return false
	}

	aTrans := collectTransitions(a)
	cTrans := collectTransitions(c)
	if len(aTrans) != len(cTrans) {
		return false
	}
	for k, av := range aTrans {
		cv, ok := cTrans[k]
		if !ok {
			return false
		}
		if av == cv {
			continue
		}
		if av == aHandle && cv == cHandle {
			continue
		}
		return false
	}
	return true
}

func collectTransitions[K comparable, V comparable](n node[K, V]) map[Key[K]]Handle {
	out := make(map[Key[K]]Handle)
	n.eachTransition(func(k Key[K], h Handle) Handle {
		out[k] = h
		return h
	})
	return out
}

// redirect rewrites every transition in the store that points at `from`
// to point at `to` instead.
func (b *Builder[K, V]) redirect(from, to Handle) {
	b.store.forEach(func(h Handle, n node[K, V]) {
		n.eachTransition(func(k Key[K], th Handle) Handle {
			if th == from {
				return to
			}
			return th
		})
	})
	for i, c := range b.cursors {
		if c == from {
			b.cursors[i] = to
		}
	}
}

// nullifyOrphans nullifies every node unreachable from Root, found by a
// forward traversal recorded in a bitset rather than a map.
func (b *Builder[K, V]) nullifyOrphans() bool {
	reachable := bitset.New(uint(b.store.size()))
	stack := []Handle{Root}
	reachable.Set(uint(Root))
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.store.get(h).eachTransition(func(k Key[K], th Handle) Handle {
			if th != NoHandle && !reachable.Test(uint(th)) {
				reachable.Set(uint(th))
				stack = append(stack, th)
			}
			return th
		})
	}

	changed := false
	b.store.forEach(func(h Handle, n node[K, V]) {
		if !reachable.Test(uint(h)) && !n.isNull() {
			n.nullify()
			changed = true
		}
	})
	return changed
}

// compact rebuilds the store keeping only live (non-null) nodes, in
// ascending handle order, and remaps every surviving handle — including
// Root and the current cursor set — to its new, denser position.
func (b *Builder[K, V]) compact() {
	remap := make(map[Handle]Handle, b.store.size())
	live := bitset.New(uint(b.store.size()))
	b.store.forEach(func(h Handle, n node[K, V]) {
		if !n.isNull() || h == Root {
			live.Set(uint(h))
		}
	})

	newStore := newStore[K, V](b.store.newNode)
	remap[Root] = Root
	b.store.forEach(func(h Handle, n node[K, V]) {
		if h == Root || !live.Test(uint(h)) {
			return
		}
		remap[h] = newStore.push()
	})

	b.store.forEach(func(h Handle, n node[K, V]) {
		if !live.Test(uint(h)) {
			return
		}
		nh, ok := remap[h]
		if !ok {
			return
		}
		clone := n.clone()
		clone.eachTransition(func(k Key[K], th Handle) Handle {
			if th == NoHandle {
				return NoHandle
			}
			return remap[th]
		})
		newStore.replace(nh, clone)
	})

	for i, c := range b.cursors {
		if nh, ok := remap[c]; ok {
			b.cursors[i] = nh
		}
	}
	b.store = newStore
}
