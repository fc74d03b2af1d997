package messages

import "github.com/holtburger/holtburger/internal/world"

// ObjectDescriptionData is the S→C object-description packet carried by
// CreateObject/CreatePlayer: a presence-gated weenie header, a physics
// description (which carries the object's current position when its
// Position flag is set), object flags, and property bag.
//
// The weenie-header and physics-description field sets below are a
// pragmatic subset of the full AC object header: the fields every client
// needs to render and target an object (name, icon, stack/burden,
// container/wielder relationships, structure, position). Fields this
// client never consumes (spell books tables, hook profiles, per-part
// animation hooks) are left for PropertyBag's generic buckets rather than
// given dedicated typed fields.
type ObjectDescriptionData struct {
	GUID       uint32
	WeenieType world.WeenieType
	IconID     uint32
	ItemType   world.ItemType

	HeaderFlags  world.WeenieHeaderFlag
	HeaderFlags2 world.WeenieHeaderFlag2
	Name         string
	PluralName   string
	ItemsCapacity      uint8
	ContainersCapacity uint8
	Value              uint32
	UseRadius          float32
	StackSize          uint16
	MaxStackSize       uint16
	Container          uint32
	Wielder            uint32
	ValidLocations     uint32
	CurrentWieldedLoc  uint32
	Burden             uint32
	Structure          uint16
	MaxStructure       uint16
	RadarBlipColor     world.RadarColor
	MaterialType       uint32
	IconOverlay        uint32

	PhysicsFlags world.PhysicsDescriptionFlag
	PhysicsState world.PhysicsState
	ObjScale     float32
	Translucency float32

	DescFlags world.ObjectDescriptionFlag
	Bag       world.PropertyBag

	HasPosition bool
	Pos         world.PositionPack
}

func (o *ObjectDescriptionData) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	weenieType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	headerFlags, ok := readU32(data, offset)
	if !ok {
		return false
	}
	o.GUID = guid
	o.WeenieType = world.WeenieType(weenieType)
	o.HeaderFlags = world.WeenieHeaderFlag(headerFlags)

	name, n, err := readString16At(data, *offset)
	if err != nil {
		return false
	}
	*offset += n
	o.Name = name

	if o.HeaderFlags.Has(world.WeenieHeaderPluralName) {
		plural, n, err := readString16At(data, *offset)
		if err != nil {
			return false
		}
		*offset += n
		o.PluralName = plural
	}

	itemType, ok := readU32(data, offset)
	if !ok {
		return false
	}
	iconID, ok := readU32(data, offset)
	if !ok {
		return false
	}
	o.ItemType = world.ItemType(itemType)
	o.IconID = iconID

	if o.HeaderFlags.Has(world.WeenieHeaderItemsCapacity) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.ItemsCapacity = uint8(v)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderContainersCapacity) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.ContainersCapacity = uint8(v)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderValue) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.Value = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderUseRadius) {
		v, ok := readF32(data, offset)
		if !ok {
			return false
		}
		o.UseRadius = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderStackSize) {
		v, ok := readU16(data, offset)
		if !ok {
			return false
		}
		o.StackSize = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaxStackSize) {
		v, ok := readU16(data, offset)
		if !ok {
			return false
		}
		o.MaxStackSize = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderContainer) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.Container = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderWielder) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.Wielder = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderValidLocations) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.ValidLocations = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderCurrentlyWieldedLocation) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.CurrentWieldedLoc = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderBurden) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.Burden = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderStructure) {
		v, ok := readU16(data, offset)
		if !ok {
			return false
		}
		o.Structure = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaxStructure) {
		v, ok := readU16(data, offset)
		if !ok {
			return false
		}
		o.MaxStructure = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderRadarBlipColor) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.RadarBlipColor = world.RadarColor(v)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaterialType) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.MaterialType = v
	}
	if o.HeaderFlags.Has(world.WeenieHeaderIconOverlay) {
		v, ok := readU32(data, offset)
		if !ok {
			return false
		}
		o.IconOverlay = v
	}

	physicsFlags, ok := readU32(data, offset)
	if !ok {
		return false
	}
	o.PhysicsFlags = world.PhysicsDescriptionFlag(physicsFlags)

	physicsState, ok := readU32(data, offset)
	if !ok {
		return false
	}
	o.PhysicsState = world.PhysicsState(physicsState)

	if o.PhysicsFlags.Has(world.PhysicsDescObjScale) {
		v, ok := readF32(data, offset)
		if !ok {
			return false
		}
		o.ObjScale = v
	}
	if o.PhysicsFlags.Has(world.PhysicsDescTranslucency) {
		v, ok := readF32(data, offset)
		if !ok {
			return false
		}
		o.Translucency = v
	}
	if o.PhysicsFlags.Has(world.PhysicsDescPosition) {
		var pos world.PositionPack
		if !pos.Unpack(data, offset) {
			return false
		}
		o.HasPosition = true
		o.Pos = pos
	}

	descFlags, ok := readU32(data, offset)
	if !ok {
		return false
	}
	o.DescFlags = world.ObjectDescriptionFlag(descFlags)

	bag, ok := unpackPropertyBag(data, offset)
	if !ok {
		return false
	}
	o.Bag = bag

	return true
}

func (o ObjectDescriptionData) Pack(buf *[]byte) {
	appendU32(buf, o.GUID)
	appendU32(buf, uint32(o.WeenieType))
	appendU32(buf, uint32(o.HeaderFlags))
	*buf = writeString16At(*buf, o.Name)
	if o.HeaderFlags.Has(world.WeenieHeaderPluralName) {
		*buf = writeString16At(*buf, o.PluralName)
	}
	appendU32(buf, uint32(o.ItemType))
	appendU32(buf, o.IconID)

	if o.HeaderFlags.Has(world.WeenieHeaderItemsCapacity) {
		appendU32(buf, uint32(o.ItemsCapacity))
	}
	if o.HeaderFlags.Has(world.WeenieHeaderContainersCapacity) {
		appendU32(buf, uint32(o.ContainersCapacity))
	}
	if o.HeaderFlags.Has(world.WeenieHeaderValue) {
		appendU32(buf, o.Value)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderUseRadius) {
		appendF32(buf, o.UseRadius)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderStackSize) {
		appendU16(buf, o.StackSize)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaxStackSize) {
		appendU16(buf, o.MaxStackSize)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderContainer) {
		appendU32(buf, o.Container)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderWielder) {
		appendU32(buf, o.Wielder)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderValidLocations) {
		appendU32(buf, o.ValidLocations)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderCurrentlyWieldedLocation) {
		appendU32(buf, o.CurrentWieldedLoc)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderBurden) {
		appendU32(buf, o.Burden)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderStructure) {
		appendU16(buf, o.Structure)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaxStructure) {
		appendU16(buf, o.MaxStructure)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderRadarBlipColor) {
		appendU32(buf, uint32(o.RadarBlipColor))
	}
	if o.HeaderFlags.Has(world.WeenieHeaderMaterialType) {
		appendU32(buf, o.MaterialType)
	}
	if o.HeaderFlags.Has(world.WeenieHeaderIconOverlay) {
		appendU32(buf, o.IconOverlay)
	}

	appendU32(buf, uint32(o.PhysicsFlags))
	appendU32(buf, uint32(o.PhysicsState))
	if o.PhysicsFlags.Has(world.PhysicsDescObjScale) {
		appendF32(buf, o.ObjScale)
	}
	if o.PhysicsFlags.Has(world.PhysicsDescTranslucency) {
		appendF32(buf, o.Translucency)
	}
	if o.PhysicsFlags.Has(world.PhysicsDescPosition) {
		o.Pos.Pack(buf)
	}

	appendU32(buf, uint32(o.DescFlags))
	packPropertyBag(buf, o.Bag)
}

// PlayerDescriptionData carries a player's full object description plus
// the player-specific state a client tracks locally: active
// enchantments and the raw property bag for everything else (skills,
// attributes, vitals all arrive as int/int64/float entries keyed by the
// corresponding AttributeType/VitalType/SkillType id).
type PlayerDescriptionData struct {
	Object       ObjectDescriptionData
	Enchantments []world.Enchantment
}

func (p *PlayerDescriptionData) Unpack(data []byte, offset *int) bool {
	if !p.Object.Unpack(data, offset) {
		return false
	}
	count, ok := readU32(data, offset)
	if !ok {
		return false
	}
	ench := make([]world.Enchantment, 0, count)
	for i := uint32(0); i < count; i++ {
		e, ok := UnpackEnchantment(data, offset)
		if !ok {
			return false
		}
		ench = append(ench, e)
	}
	p.Enchantments = ench
	return true
}

func (p PlayerDescriptionData) Pack(buf *[]byte) {
	p.Object.Pack(buf)
	appendU32(buf, uint32(len(p.Enchantments)))
	for _, e := range p.Enchantments {
		PackEnchantment(buf, e)
	}
}

// ObjectCreateData is the S→C envelope spawning a non-player object: a
// full object description plus the physics-parent guid it's attached to,
// if any (0 when top-level).
type ObjectCreateData struct {
	Object ObjectDescriptionData
	Parent uint32
}

func (m *ObjectCreateData) Unpack(data []byte, offset *int) bool {
	if !m.Object.Unpack(data, offset) {
		return false
	}
	parent, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.Parent = parent
	return true
}

func (m ObjectCreateData) Pack(buf *[]byte) {
	m.Object.Pack(buf)
	appendU32(buf, m.Parent)
}

// PlayerCreateData is the S→C envelope spawning a player object, reusing
// PlayerDescriptionData's layout (object description plus enchantments).
type PlayerCreateData struct {
	Player PlayerDescriptionData
}

func (m *PlayerCreateData) Unpack(data []byte, offset *int) bool {
	return m.Player.Unpack(data, offset)
}

func (m PlayerCreateData) Pack(buf *[]byte) {
	m.Player.Pack(buf)
}

// ObjectDeleteData is the S→C envelope despawning an object by guid.
type ObjectDeleteData struct {
	GUID   uint32
	Reason uint32
}

func (m *ObjectDeleteData) Unpack(data []byte, offset *int) bool {
	guid, ok := readU32(data, offset)
	if !ok {
		return false
	}
	reason, ok := readU32(data, offset)
	if !ok {
		return false
	}
	m.GUID, m.Reason = guid, reason
	return true
}

func (m ObjectDeleteData) Pack(buf *[]byte) {
	appendU32(buf, m.GUID)
	appendU32(buf, m.Reason)
}

func unpackPropertyBag(data []byte, offset *int) (world.PropertyBag, bool) {
	bag := world.NewPropertyBag()

	countInt, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countInt; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		val, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.Ints[key] = int32(val)
	}

	countInt64, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countInt64; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		lo, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		hi, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.Int64s[key] = int64(uint64(hi)<<32 | uint64(lo))
	}

	countBool, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countBool; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		val, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.Bools[key] = val != 0
	}

	countFloat, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countFloat; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		lo, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		hi, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.Floats[key] = f64FromHalves(lo, hi)
	}

	countString, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countString; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		s, n, err := readString16At(data, *offset)
		if err != nil {
			return bag, false
		}
		*offset += n
		bag.Strings[key] = s
	}

	countDID, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countDID; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		val, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.DIDs[key] = val
	}

	countIID, ok := readU16(data, offset)
	if !ok {
		return bag, false
	}
	for i := uint16(0); i < countIID; i++ {
		key, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		val, ok := readU32(data, offset)
		if !ok {
			return bag, false
		}
		bag.IIDs[key] = val
	}

	return bag, true
}

func packPropertyBag(buf *[]byte, bag world.PropertyBag) {
	appendU16(buf, uint16(len(bag.Ints)))
	for k, v := range bag.Ints {
		appendU32(buf, k)
		appendU32(buf, uint32(v))
	}
	appendU16(buf, uint16(len(bag.Int64s)))
	for k, v := range bag.Int64s {
		appendU32(buf, k)
		u := uint64(v)
		appendU32(buf, uint32(u))
		appendU32(buf, uint32(u>>32))
	}
	appendU16(buf, uint16(len(bag.Bools)))
	for k, v := range bag.Bools {
		appendU32(buf, k)
		if v {
			appendU32(buf, 1)
		} else {
			appendU32(buf, 0)
		}
	}
	appendU16(buf, uint16(len(bag.Floats)))
	for k, v := range bag.Floats {
		appendU32(buf, k)
		lo, hi := f64ToHalves(v)
		appendU32(buf, lo)
		appendU32(buf, hi)
	}
	appendU16(buf, uint16(len(bag.Strings)))
	for k, v := range bag.Strings {
		appendU32(buf, k)
		*buf = writeString16At(*buf, v)
	}
	appendU16(buf, uint16(len(bag.DIDs)))
	for k, v := range bag.DIDs {
		appendU32(buf, k)
		appendU32(buf, v)
	}
	appendU16(buf, uint16(len(bag.IIDs)))
	for k, v := range bag.IIDs {
		appendU32(buf, k)
		appendU32(buf, v)
	}
}
