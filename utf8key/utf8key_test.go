package utf8key

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestExpandRoundTripsThroughDecode(t *testing.T) {
	for _, r := range []rune{'a', '$', 'é', '中', '\U0001F600'} {
		b := Expand(r)
		require.True(t, len(b) >= 1 && len(b) <= utf8.UTFMax)
		require.Equal(t, utf8.RuneLen(r), len(b))

		runes, err := Decode(b)
		require.NoError(t, err)
		require.Equal(t, []rune{r}, runes)
	}
}

func TestDecodeMultipleRunes(t *testing.T) {
	runes, err := Decode([]byte("gö中!"))
	require.NoError(t, err)
	require.Equal(t, []rune{'g', 'ö', '中', '!'}, runes)
}

func TestDecodeMalformedUTF8(t *testing.T) {
	_, err := Decode([]byte{0xFF, 0xFE})
	require.ErrorIs(t, err, ErrMalformedUTF8)
}

func TestDecodeEmptyInput(t *testing.T) {
	runes, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, runes)
}

func TestContinuationRangeBounds(t *testing.T) {
	cont := ContinuationRange()
	require.Len(t, cont, ContinuationMax-ContinuationMin+1)
	require.Equal(t, byte(ContinuationMin), cont[0])
	require.Equal(t, byte(ContinuationMax), cont[len(cont)-1])

	for _, b := range cont {
		require.True(t, b&0xC0 == 0x80, "every continuation byte must match 0b10xxxxxx")
	}
}

func TestExpandMultiByteUsesContinuationRange(t *testing.T) {
	b := Expand('中')
	require.Len(t, b, 3)
	for _, c := range b[1:] {
		require.GreaterOrEqual(t, c, byte(ContinuationMin))
		require.LessOrEqual(t, c, byte(ContinuationMax))
	}
}
