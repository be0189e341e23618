package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeFusesIdenticalLeaves(t *testing.T) {
	b := NewByteBuilder[string]()
	b.MatchSequence([]byte("cats")...).Commit("ok", 0)
	b.MatchSequence([]byte("dogs")...).Commit("ok", 0)

	before := b.store.size()
	b.Optimize()
	after := b.store.size()

	require.Less(t, after, before, "the two identical accept-only leaves should have fused")

	m, err := b.Compile()
	require.NoError(t, err)
	v, ok := m.FullMatch([]byte("cats"))
	require.True(t, ok)
	require.Equal(t, "ok", v)
	v, ok = m.FullMatch([]byte("dogs"))
	require.True(t, ok)
	require.Equal(t, "ok", v)
}

func TestOptimizeNullifiesOrphans(t *testing.T) {
	b := NewByteBuilder[string]()
	b.MatchSequence([]byte("keep")...).Commit("kept", 0)

	// Manually plant an unreachable node: push one, give it an accept,
	// but never link anything to it.
	orphan := b.store.push()
	a := Accept[string]{Value: "orphaned"}
	b.store.get(orphan).setAccept(&a)

	before := b.store.size()
	b.Optimize()
	require.Less(t, b.store.size(), before)

	m, err := b.Compile()
	require.NoError(t, err)
	v, ok := m.FullMatch([]byte("keep"))
	require.True(t, ok)
	require.Equal(t, "kept", v)
}

func TestOptimizeIsIdempotentAndPreservesLanguage(t *testing.T) {
	b := NewByteBuilder[string]()
	b.MatchSequence([]byte("alpha")...).Commit("a", 0)
	b.MatchSequence([]byte("beta")...).Commit("b", 0)
	b.MatchSequence([]byte("gamma")...).Commit("g", 0)

	m1, err := b.Clone().Compile()
	require.NoError(t, err)

	b2 := b.Clone()
	b2.Optimize()
	b2.Optimize()
	m2, err := b2.Compile()
	require.NoError(t, err)

	for word, val := range map[string]string{"alpha": "a", "beta": "b", "gamma": "g"} {
		v1, ok1 := m1.FullMatch([]byte(word))
		v2, ok2 := m2.FullMatch([]byte(word))
		require.True(t, ok1)
		require.True(t, ok2)
		require.Equal(t, val, v1)
		require.Equal(t, val, v2)
	}
}
