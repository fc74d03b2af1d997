package messages

import (
	"encoding/hex"
	"testing"

	"github.com/holtburger/holtburger/internal/world"
	"github.com/stretchr/testify/require"
)

func TestUpdatePositionUnpack(t *testing.T) {
	data, err := hex.DecodeString("010000503400000051013e026f1283423d0a87420000000000000000000000000000000000000000")
	require.NoError(t, err)

	var msg UpdatePositionData
	offset := 0
	require.True(t, msg.Unpack(data, &offset))
	require.Equal(t, uint32(0x50000001), msg.GUID)
	require.Equal(t, uint32(0x023E0151), msg.Pos.Pos.LandblockID)
}

func TestMovementEventRoundTrip(t *testing.T) {
	msg := MovementEventData{
		GUID:      0x50000001,
		EventType: 1,
		Pos: world.PositionPack{
			Pos: world.WorldPosition{LandblockID: 0x12340000},
		},
	}
	var buf []byte
	msg.Pack(&buf)
	require.Len(t, buf, 52)

	var decoded MovementEventData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, msg, decoded)
}
