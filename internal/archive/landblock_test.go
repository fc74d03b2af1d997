package archive

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpackCellLandblock(t *testing.T) {
	data := make([]byte, 8+81*2+81)
	binary.LittleEndian.PutUint32(data[0:4], 0x12340000)
	binary.LittleEndian.PutUint32(data[4:8], 1)
	data[8+81*2+5] = 10 // height[5]

	lb, err := UnpackCellLandblock(data)
	require.NoError(t, err)
	require.Equal(t, uint32(0x12340000), lb.ID)
	require.True(t, lb.HasObjects)
	require.Equal(t, float32(20), lb.GetHeight(0, 5))
}

func TestUnpackLandblockInfoEmpty(t *testing.T) {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[0:4], 1)
	binary.LittleEndian.PutUint32(data[4:8], 0)  // num_cells
	binary.LittleEndian.PutUint32(data[8:12], 0) // num_objects
	binary.LittleEndian.PutUint16(data[12:14], 0) // num_buildings
	binary.LittleEndian.PutUint16(data[14:16], 0) // pack_mask

	info, err := UnpackLandblockInfo(data)
	require.NoError(t, err)
	require.Equal(t, uint32(1), info.ID)
	require.Empty(t, info.Objects)
}
