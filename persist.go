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
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	mmap "github.com/blevesearch/mmap-go"
)

// wireNode is the on-disk shape of a byteNode: gob requires exported
// fields, so persistence goes through this copy rather than the node
// interface directly.
type wireNode[V comparable] struct {
	Transitions [byteNodeSlots]Handle
	HasAccept   bool
	Value       V
	BackBy      uint32
}

// PersistedMachine wraps a Machine opened from disk. It holds a read-only
// mmap of the underlying file, from which its nodes were decoded into
// ordinary memory; Close unmaps it. A
// PersistedMachine is only ever read from after Open, exactly like any
// other Machine.
type PersistedMachine[V comparable] struct {
	*Machine[byte, V]
	mapping mmap.MMap
	file    *os.File
}

// Close unmaps and closes the backing file. It is safe to call once
// lookups against the machine are done; using the machine afterward is
// undefined.
func (p *PersistedMachine[V]) Close() error {
	if err := p.mapping.Unmap(); err != nil {
		return err
	}
	return p.file.Close()
}

// SaveByteMachine writes m to path as one gob-encoded slice of nodes,
// which OpenByteMachine maps back in and decodes into a fresh node per
// entry.
func SaveByteMachine[V comparable](m *Machine[byte, V], path string) error {
	wire := make([]wireNode[V], m.store.size())
	m.store.forEach(func(h Handle, n node[byte, V]) {
		bn := n.(*byteNode[V])
		w := wireNode[V]{Transitions: bn.transitions}
		if bn.value != nil {
			w.HasAccept = true
			w.Value = bn.value.Value
			w.BackBy = bn.value.BackBy
		}
		wire[h-1] = w
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	if err := enc.Encode(wire); err != nil {
		return fmt.Errorf("automaton: encoding machine: %w", err)
	}
	return nil
}

// OpenByteMachine memory-maps path and decodes it as a byte-keyed
// Machine. The returned PersistedMachine must be Closed by the caller
// once it is no longer needed.
func OpenByteMachine[V comparable](path string) (*PersistedMachine[V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mapping, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	var wire []wireNode[V]
	dec := gob.NewDecoder(bytes.NewReader(mapping))
	if err := dec.Decode(&wire); err != nil {
		mapping.Unmap()
		f.Close()
		return nil, fmt.Errorf("automaton: decoding machine: %w", err)
	}

	store := newStore[byte, V](newByteNode[V])
	store.nodes = store.nodes[:0]
	for _, w := range wire {
		bn := &byteNode[V]{transitions: w.Transitions}
		if w.HasAccept {
			bn.value = &Accept[V]{Value: w.Value, BackBy: w.BackBy}
		}
		store.nodes = append(store.nodes, bn)
	}

	return &PersistedMachine[V]{
		Machine: newMachine(store),
		mapping: mapping,
		file:    f,
	}, nil
}
