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

import (
	"bufio"
	"fmt"
	"io"
)

var dotHeader = "digraph g {\nrankdir=LR\n"
var dotFooter = "}\n"

// ExportDot writes the current contents of a Builder's graph to w in
// the GraphViz (dot) format, one record per live node in ascending
// handle order.
func ExportDot[K comparable, V comparable](b *Builder[K, V], w io.Writer) error {
	return exportDot(b.store, w)
}

// ExportMachineDot writes a compiled Machine's graph to w in the same
// format as ExportDot.
func ExportMachineDot[K comparable, V comparable](m *Machine[K, V], w io.Writer) error {
	return exportDot(m.store, w)
}

func exportDot[K comparable, V comparable](store *Store[K, V], w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(dotHeader); err != nil {
		return err
	}

	var werr error
	store.forEach(func(h Handle, n node[K, V]) {
		if werr != nil || n.isNull() {
			return
		}
		if acc := n.accept(); acc != nil {
			_, werr = fmt.Fprintf(bw, "%d [shape=doublecircle label=\"%d (%v/%d)\"]\n", h, h, acc.Value, acc.BackBy)
		}
		n.eachTransition(func(k Key[K], th Handle) Handle {
			if werr != nil {
				return th
			}
			_, werr = fmt.Fprintf(bw, "%d -> %d [label=\"%s\"]\n", h, th, k.String())
			return th
		})
	})
	if werr != nil {
		return werr
	}

	if _, err := bw.WriteString(dotFooter); err != nil {
		return err
	}
	return bw.Flush()
}

// PrintDebug writes a human-readable dump of the builder's graph to w:
// one line per live node, listing its accept cell (if any) and every
// outgoing transition.
func (b *Builder[K, V]) PrintDebug(w io.Writer) error {
	return debugDump(b.store, w)
}

// DebugDump writes the same dump format as Builder.PrintDebug for a
// compiled Machine.
func (m *Machine[K, V]) DebugDump(w io.Writer) error {
	return debugDump(m.store, w)
}

func debugDump[K comparable, V comparable](store *Store[K, V], w io.Writer) error {
	bw := bufio.NewWriter(w)
	var werr error
	store.forEach(func(h Handle, n node[K, V]) {
		if werr != nil || n.isNull() {
			return
		}
		line := fmt.Sprintf("%d:", h)
		if acc := n.accept(); acc != nil {
			line += fmt.Sprintf(" accept(%v, back_by=%d)", acc.Value, acc.BackBy)
		}
		n.eachTransition(func(k Key[K], th Handle) Handle {
			line += fmt.Sprintf(" %s->%d", k.String(), th)
			return th
		})
		_, werr = fmt.Fprintln(bw, line)
	})
	if werr != nil {
		return werr
	}
	return bw.Flush()
}

// Equal reports whether two builders' graphs are structurally
// isomorphic starting from their respective Root handles — the same
// shape, node for node, up to a consistent renumbering of handles. Two
// builders that commit the same accepting paths in a different order
// land on isomorphic optimized graphs even though compact numbers each
// one's surviving handles differently (it renumbers in ascending order
// of each handle's own construction history, not by any canonical
// graph signature), so handle-for-handle identity is the wrong notion
// of "structurally equal" for graphs built independently; this walks
// both graphs in lockstep instead, matching handles up as it goes and
// rejecting the moment either side's shape diverges.
func (b *Builder[K, V]) Equal(other *Builder[K, V]) bool {
	return isomorphic(b.store, Root, other.store, Root, make(map[Handle]Handle), make(map[Handle]Handle))
}

func isomorphic[K comparable, V comparable](as *Store[K, V], a Handle, bs *Store[K, V], c Handle, aToC, cToA map[Handle]Handle) bool {
	if mapped, ok := aToC[a]; ok {
		return mapped == c
	}
	if mapped, ok := cToA[c]; ok {
		return mapped == a
	}
	aToC[a] = c
	cToA[c] = a

	an, cn := as.get(a), bs.get(c)
	if an.isNull() != cn.isNull() {
		return false
	}
	aAccept, cAccept := an.accept(), cn.accept()
	if (aAccept == nil) != (cAccept == nil) {
		return false
	}
	if aAccept != nil && !aAccept.Equal(*cAccept) {
		return false
	}

	aTrans := collectTransitions(an)
	cTrans := collectTransitions(cn)
	if len(aTrans) != len(cTrans) {
		return false
	}
	for k, av := range aTrans {
		cv, ok := cTrans[k]
		if !ok {
			return false
		}
		if !isomorphic(as, av, bs, cv, aToC, cToA) {
			return false
		}
	}
	return true
}
