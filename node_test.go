package automaton

import "testing"

func TestByteNodeGetSet(t *testing.T) {
	n := newByteNode[string]()
	if n.get(ValueKey(byte('a'))) != NoHandle {
		t.Fatalf("expected no transition on fresh node")
	}
	n.set(ValueKey(byte('a')), Handle(5))
	if got := n.get(ValueKey(byte('a'))); got != Handle(5) {
		t.Fatalf("got %d, want 5", got)
	}
	n.set(EOFKey[byte](), Handle(6))
	n.set(DefaultKey[byte](), Handle(7))
	if n.get(EOFKey[byte]()) != Handle(6) || n.get(DefaultKey[byte]()) != Handle(7) {
		t.Fatalf("EOF/default slots not independent from value slots")
	}
}

func TestByteNodeIsNull(t *testing.T) {
	n := newByteNode[string]()
	if !n.isNull() {
		t.Fatalf("fresh node should be null")
	}
	n.set(ValueKey(byte('x')), Handle(2))
	if n.isNull() {
		t.Fatalf("node with a transition should not be null")
	}
	n.nullify()
	if !n.isNull() {
		t.Fatalf("nullify should clear transitions")
	}
}

func TestByteNodeClone(t *testing.T) {
	n := newByteNode[string]()
	n.set(ValueKey(byte('a')), Handle(3))
	a := Accept[string]{Value: "x", BackBy: 1}
	n.setAccept(&a)

	c := n.clone()
	c.set(ValueKey(byte('a')), Handle(9))
	if n.get(ValueKey(byte('a'))) != Handle(3) {
		t.Fatalf("mutating the clone should not affect the original")
	}
	if got := c.accept(); got == nil || !got.Equal(a) {
		t.Fatalf("clone should carry a copy of the accept cell")
	}
}

func TestMapNodeGetSet(t *testing.T) {
	n := newMapNode[string, int]()
	n.set(ValueKey("foo"), Handle(4))
	if got := n.get(ValueKey("foo")); got != Handle(4) {
		t.Fatalf("got %d, want 4", got)
	}
	n.set(ValueKey("foo"), NoHandle)
	if got := n.get(ValueKey("foo")); got != NoHandle {
		t.Fatalf("setting NoHandle should clear the map entry, got %d", got)
	}
}

func TestMapNodeEachTransition(t *testing.T) {
	n := newMapNode[string, int]()
	n.set(ValueKey("a"), Handle(1))
	n.set(ValueKey("b"), Handle(2))
	n.set(EOFKey[string](), Handle(3))

	seen := map[string]Handle{}
	n.eachTransition(func(k Key[string], h Handle) Handle {
		if k.IsEOF() {
			seen["<EOF>"] = h
		} else {
			seen[k.Value()] = h
		}
		return h
	})
	if len(seen) != 3 || seen["a"] != 1 || seen["b"] != 2 || seen["<EOF>"] != 3 {
		t.Fatalf("unexpected transitions visited: %v", seen)
	}
}
