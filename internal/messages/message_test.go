package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeMessageRoundTripsKnownOpcode(t *testing.T) {
	body := HearSpeechData{Message: "hello", Sender: 42, SenderName: "Aluien", ChatType: 1}
	encoded := EncodeMessage(OpHearSpeech, body)

	msg := DecodeMessage(encoded)
	require.Equal(t, OpHearSpeech, msg.Opcode)
	decoded, ok := msg.Body.(*HearSpeechData)
	require.True(t, ok)
	require.Equal(t, body, *decoded)
	require.Empty(t, msg.Raw)
}

func TestDecodeMessageFallsBackOnUnknownOpcode(t *testing.T) {
	var buf []byte
	appendU32(&buf, 0xDEADBEEF)
	buf = append(buf, 1, 2, 3)

	msg := DecodeMessage(buf)
	require.Equal(t, Opcode(0xDEADBEEF), msg.Opcode)
	require.Nil(t, msg.Body)
	require.Equal(t, []byte{1, 2, 3}, msg.Raw)
}

func TestDecodeMessageSpecialCasesGameEvent(t *testing.T) {
	var buf []byte
	appendU32(&buf, uint32(OpGameEvent))
	appendU32(&buf, 777)                     // target
	appendU32(&buf, 1)                       // sequence
	appendU32(&buf, uint32(EventStartGame))  // inner event opcode

	msg := DecodeMessage(buf)
	require.Equal(t, OpGameEvent, msg.Opcode)
	ev, ok := msg.Body.(GameEvent)
	require.True(t, ok)
	require.Equal(t, uint32(777), ev.Target)

	guid, ok := ObjectGUID(msg)
	require.True(t, ok)
	require.Equal(t, uint32(777), uint32(guid))
}

func TestDecodeMessageTooShortForOpcode(t *testing.T) {
	msg := DecodeMessage([]byte{1, 2})
	require.Equal(t, Opcode(0), msg.Opcode)
	require.Nil(t, msg.Body)
}
