package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaySoundRoundTrip(t *testing.T) {
	msg := PlaySoundData{Target: 0x50000001, SoundID: 100, Volume: 0.8}
	var buf []byte
	msg.Pack(&buf)

	var decoded PlaySoundData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, msg, decoded)
	require.Equal(t, len(buf), offset)
}

func TestPlayEffectRoundTrip(t *testing.T) {
	msg := PlayEffectData{Target: 0x50000001, ScriptID: 200, Speed: 1.5}
	var buf []byte
	msg.Pack(&buf)

	var decoded PlayEffectData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, msg, decoded)
}
