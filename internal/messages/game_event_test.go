package messages

import (
	"testing"

	"github.com/holtburger/holtburger/internal/world"
	"github.com/stretchr/testify/require"
)

func TestGameEventMagicUpdateEnchantmentRoundTrip(t *testing.T) {
	ev := GameEvent{
		Target:   0x50000001,
		Sequence: 7,
		Event: MagicUpdateEnchantmentData{
			Enchantment: world.Enchantment{
				SpellID:    1,
				Layer:      1,
				PowerLevel: 100,
			},
		},
	}
	var buf []byte
	PackGameEvent(&buf, ev)

	offset := 0
	decoded, ok := UnpackGameEvent(buf, &offset)
	require.True(t, ok)
	require.Equal(t, ev.Target, decoded.Target)
	require.Equal(t, ev.Sequence, decoded.Sequence)
	d, ok := decoded.Event.(MagicUpdateEnchantmentData)
	require.True(t, ok)
	require.Equal(t, ev.Event.(MagicUpdateEnchantmentData).Enchantment, d.Enchantment)
	require.Equal(t, ev.Target, d.Target)
	require.Equal(t, ev.Sequence, d.Sequence)
}

func TestGameEventStartGameRoundTrip(t *testing.T) {
	ev := GameEvent{Target: 1, Sequence: 2, Event: StartGameData{}}
	var buf []byte
	PackGameEvent(&buf, ev)

	offset := 0
	decoded, ok := UnpackGameEvent(buf, &offset)
	require.True(t, ok)
	require.IsType(t, StartGameData{}, decoded.Event)
	require.Equal(t, len(buf), offset)
}

func TestGameEventUnknownFallback(t *testing.T) {
	var buf []byte
	appendU32(&buf, 1)
	appendU32(&buf, 2)
	appendU32(&buf, 0xDEADBEEF)
	buf = append(buf, 0x01, 0x02, 0x03)

	offset := 0
	decoded, ok := UnpackGameEvent(buf, &offset)
	require.True(t, ok)
	raw, ok := decoded.Event.(RawEventData)
	require.True(t, ok)
	require.Equal(t, GameEventOpcode(0xDEADBEEF), raw.Opcode)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, raw.Bytes)
	require.Equal(t, len(buf), offset)
}
