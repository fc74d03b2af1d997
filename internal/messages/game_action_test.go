package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameActionTalkRoundTrip(t *testing.T) {
	action := GameAction{
		Sequence: 42,
		Data:     TalkData{Text: "hello", Language: 0},
	}
	var buf []byte
	PackGameAction(&buf, action)

	offset := 0
	decoded, ok := UnpackGameAction(buf, &offset)
	require.True(t, ok)
	require.Equal(t, action, decoded)
	require.Equal(t, len(buf), offset)
}

func TestGameActionUnevidencedFallsBackToRaw(t *testing.T) {
	const unevidencedOpcode GameActionOpcode = 0x0008 // Jump, never retrieved with a typed layout
	var buf []byte
	appendU32(&buf, 1)
	appendU32(&buf, uint32(unevidencedOpcode))
	buf = append(buf, 0xAA, 0xBB)

	offset := 0
	decoded, ok := UnpackGameAction(buf, &offset)
	require.True(t, ok)
	raw, ok := decoded.Data.(RawActionData)
	require.True(t, ok)
	require.Equal(t, unevidencedOpcode, raw.Opcode)
	require.Equal(t, []byte{0xAA, 0xBB}, raw.Bytes)
}
