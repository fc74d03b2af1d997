package messages

import (
	"testing"

	"github.com/holtburger/holtburger/internal/world"
	"github.com/stretchr/testify/require"
)

func TestObjectDescriptionRoundTrip(t *testing.T) {
	bag := world.NewPropertyBag()
	bag.Ints[1] = 5
	bag.Strings[2] = "note"

	obj := ObjectDescriptionData{
		GUID:         0x50000001,
		WeenieType:   world.WeenieCreature,
		HeaderFlags:  world.WeenieHeaderStackSize | world.WeenieHeaderValue,
		Name:         "Rabbit",
		ItemType:     world.ItemTypeCreature,
		IconID:       0x06006D07,
		StackSize:    1,
		Value:        10,
		PhysicsFlags: world.PhysicsDescPosition,
		Pos: world.PositionPack{
			Pos: world.WorldPosition{LandblockID: 0x12340000, X: 1, Y: 2, Z: 3},
		},
		Bag: bag,
	}

	var buf []byte
	obj.Pack(&buf)

	var decoded ObjectDescriptionData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, obj.GUID, decoded.GUID)
	require.Equal(t, obj.Name, decoded.Name)
	require.Equal(t, obj.StackSize, decoded.StackSize)
	require.Equal(t, obj.Value, decoded.Value)
	require.True(t, decoded.HasPosition)
	require.Equal(t, obj.Pos.Pos.LandblockID, decoded.Pos.Pos.LandblockID)
	require.Equal(t, bag.Ints, decoded.Bag.Ints)
	require.Equal(t, bag.Strings, decoded.Bag.Strings)
	require.Equal(t, len(buf), offset)
}

func TestPlayerDescriptionRoundTrip(t *testing.T) {
	p := PlayerDescriptionData{
		Object: ObjectDescriptionData{
			GUID: 0x50000002,
			Name: "Hero",
			Bag:  world.NewPropertyBag(),
		},
		Enchantments: []world.Enchantment{
			{SpellID: 1, Layer: 1, PowerLevel: 50},
		},
	}
	var buf []byte
	p.Pack(&buf)

	var decoded PlayerDescriptionData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, p.Object.GUID, decoded.Object.GUID)
	require.Equal(t, p.Enchantments, decoded.Enchantments)
	require.Equal(t, len(buf), offset)
}

func TestObjectCreateRoundTrip(t *testing.T) {
	oc := ObjectCreateData{
		Object: ObjectDescriptionData{GUID: 0x50000010, Name: "Torch", Bag: world.NewPropertyBag()},
		Parent: 0x50000002,
	}
	var buf []byte
	oc.Pack(&buf)

	var decoded ObjectCreateData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, oc.Object.GUID, decoded.Object.GUID)
	require.Equal(t, oc.Parent, decoded.Parent)
	require.Equal(t, len(buf), offset)
}

func TestObjectDeleteRoundTrip(t *testing.T) {
	od := ObjectDeleteData{GUID: 0x50000010, Reason: 1}
	var buf []byte
	od.Pack(&buf)

	var decoded ObjectDeleteData
	offset := 0
	require.True(t, decoded.Unpack(buf, &offset))
	require.Equal(t, od, decoded)
	require.Equal(t, len(buf), offset)
}
