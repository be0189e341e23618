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

// Store owns every node in a graph and is addressed exclusively through
// Handles. Handle h maps to slice index h-1, so the zero Handle addresses
// no slot and can mean "no transition" without colliding with a real
// node. A Store never shrinks a live handle out from under a caller:
// nodes are nullified in place and only ever physically removed by the
// compaction pass in optimize.go, which remaps every handle it keeps.
type Store[K comparable, V comparable] struct {
	nodes   []node[K, V]
	newNode func() node[K, V]
}

// newStore creates a Store whose root node (Handle 1) already exists.
func newStore[K comparable, V comparable](newNode func() node[K, V]) *Store[K, V] {
	s := &Store[K, V]{newNode: newNode}
	s.push() // Handle Root
	return s
}

// push allocates a fresh node and returns its handle.
func (s *Store[K, V]) push() Handle {
	s.nodes = append(s.nodes, s.newNode())
	return Handle(len(s.nodes))
}

// size returns the number of handles currently allocated, including
// nullified ones.
func (s *Store[K, V]) size() int {
	return len(s.nodes)
}

// get returns the node addressed by h. A zero or out-of-range handle is
// an invariant violation in caller code, never a recoverable condition —
// every handle reaching a Store should have come from push, a cursor, or
// a transition lookup.
func (s *Store[K, V]) get(h Handle) node[K, V] {
	if h == NoHandle || int(h) > len(s.nodes) {
		panic(fmt.Sprintf("automaton: dereference of invalid handle %d (store size %d)", h, len(s.nodes)))
	}
	return s.nodes[h-1]
}

// replace overwrites the node at h. Used by the compaction pass, which
// rebuilds the entire slice from a liveness remap.
func (s *Store[K, V]) replace(h Handle, n node[K, V]) {
	if h == NoHandle || int(h) > len(s.nodes) {
		panic(fmt.Sprintf("automaton: replace of invalid handle %d (store size %d)", h, len(s.nodes)))
	}
	s.nodes[h-1] = n
}

// forEach visits every allocated handle in ascending order, nullified
// ones included.
func (s *Store[K, V]) forEach(fn func(h Handle, n node[K, V])) {
	for i, n := range s.nodes {
		fn(Handle(i+1), n)
	}
}

// reverseForEach visits every allocated handle in descending order,
// nullified ones included — the order the duplicate-fusing optimize pass
// relies on so that a node can only ever be fused into a node with a
// larger handle.
func (s *Store[K, V]) reverseForEach(fn func(h Handle, n node[K, V])) {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		fn(Handle(i+1), s.nodes[i])
	}
}

// clone deep-copies the entire store, used by Builder.Clone.
func (s *Store[K, V]) clone() *Store[K, V] {
	c := &Store[K, V]{newNode: s.newNode, nodes: make([]node[K, V], len(s.nodes))}
	for i, n := range s.nodes {
		c.nodes[i] = n.clone()
	}
	return c
}
