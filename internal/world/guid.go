package world

import "fmt"

// Guid identifies any addressable object in the world: players, items,
// creatures, landblocks. The high nibble range distinguishes players from
// static/dynamic items.
type Guid uint32

// NullGuid is the zero value, meaning "no object".
const NullGuid Guid = 0

const playerGuidMask = 0x50000000

func (g Guid) IsPlayer() bool { return g&playerGuidMask == playerGuidMask }
func (g Guid) IsItem() bool   { return g < playerGuidMask && g > 0 }

func (g Guid) String() string { return fmt.Sprintf("%08X", uint32(g)) }
