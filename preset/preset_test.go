package preset

import (
	"testing"

	"github.com/flatgraph/automaton"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, p *automaton.Builder[byte, struct{}]) *automaton.Machine[byte, struct{}] {
	t.Helper()
	b := automaton.NewByteBuilder[struct{}]()
	b.Match(p).Commit(struct{}{}, 0)
	m, err := b.Compile()
	require.NoError(t, err)
	return m
}

func TestDigit(t *testing.T) {
	m := compile(t, Digit())
	for _, d := range "0123456789" {
		_, ok := m.FullMatch([]byte(string(d)))
		require.True(t, ok, "expected %q to match", d)
	}
	_, ok := m.FullMatch([]byte("a"))
	require.False(t, ok)
	_, ok = m.FullMatch([]byte("12"))
	require.False(t, ok)
}

func TestIntegerRejectsLeadingZero(t *testing.T) {
	m := compile(t, Integer())

	for _, in := range []string{"0", "7", "42", "1000"} {
		_, ok := m.FullMatch([]byte(in))
		require.True(t, ok, "expected %q to match", in)
	}
	for _, in := range []string{"00", "01", "007", ""} {
		_, ok := m.FullMatch([]byte(in))
		require.False(t, ok, "expected %q to be rejected", in)
	}
}

func TestZeroPrefixableIntegerAllowsLeadingZero(t *testing.T) {
	m := compile(t, ZeroPrefixableInteger())

	for _, in := range []string{"0", "7", "007", "00", "1000"} {
		_, ok := m.FullMatch([]byte(in))
		require.True(t, ok, "expected %q to match", in)
	}
	_, ok := m.FullMatch([]byte(""))
	require.False(t, ok, "at least one digit is required")
}

func TestSimpleIdentifier(t *testing.T) {
	m := compile(t, SimpleIdentifier())

	for _, in := range []string{"x", "_", "foo", "_bar", "camelCase1", "snake_case_2"} {
		_, ok := m.FullMatch([]byte(in))
		require.True(t, ok, "expected %q to match", in)
	}
	for _, in := range []string{"1foo", "", "foo-bar"} {
		_, ok := m.FullMatch([]byte(in))
		require.False(t, ok, "expected %q to be rejected", in)
	}
}

func TestCLikeCommentLine(t *testing.T) {
	m := compile(t, CLikeComment())

	_, ok := m.FullMatch([]byte("// a line comment"))
	require.True(t, ok)
	_, ok = m.FullMatch([]byte("//"))
	require.True(t, ok)
	_, ok = m.FullMatch([]byte("// has\nnewline"))
	require.False(t, ok, "a line comment never includes the terminating newline")
}

func TestCLikeCommentBlock(t *testing.T) {
	m := compile(t, CLikeComment())

	for _, in := range []string{"/* */", "/**/", "/* a block */", "/* star * inside */", "/* trailing stars ***/"} {
		_, ok := m.FullMatch([]byte(in))
		require.True(t, ok, "expected %q to match", in)
	}
	_, ok := m.FullMatch([]byte("/* unterminated"))
	require.False(t, ok)
}

func TestCLikeCommentFindAllLocatesBoth(t *testing.T) {
	m := compile(t, CLikeComment())
	matches := m.FindAll([]byte("x = 1; // set x\ny = /* unused */ 2;"))
	require.Len(t, matches, 2)
}
