package messages

import "github.com/holtburger/holtburger/internal/world"

// MagicUpdateEnchantmentData adds or replaces a single enchantment layer on
// Target. Target and Sequence are filled in by the enclosing GameEvent.
type MagicUpdateEnchantmentData struct {
	Target      uint32
	Sequence    uint32
	Enchantment world.Enchantment
}

func (m *MagicUpdateEnchantmentData) Unpack(data []byte, offset *int) bool {
	e, ok := UnpackEnchantment(data, offset)
	if !ok {
		return false
	}
	m.Enchantment = e
	return true
}

func (m MagicUpdateEnchantmentData) Pack(buf *[]byte) {
	PackEnchantment(buf, m.Enchantment)
}

// MagicUpdateMultipleEnchantmentsData batches several enchantment upserts.
type MagicUpdateMultipleEnchantmentsData struct {
	Target       uint32
	Sequence     uint32
	Enchantments []world.Enchantment
}

func (m *MagicUpdateMultipleEnchantmentsData) Unpack(data []byte, offset *int) bool {
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
	m.Enchantments = ench
	return true
}

func (m MagicUpdateMultipleEnchantmentsData) Pack(buf *[]byte) {
	appendU32(buf, uint32(len(m.Enchantments)))
	for _, e := range m.Enchantments {
		PackEnchantment(buf, e)
	}
}

// MagicRemoveEnchantmentData removes one (spell_id, layer) enchantment.
type MagicRemoveEnchantmentData struct {
	Target   uint32
	Sequence uint32
	SpellID  uint16
	Layer    uint16
}

func (m *MagicRemoveEnchantmentData) Unpack(data []byte, offset *int) bool {
	spellID, ok := readU16(data, offset)
	if !ok {
		return false
	}
	layer, ok := readU16(data, offset)
	if !ok {
		return false
	}
	m.SpellID, m.Layer = spellID, layer
	return true
}

func (m MagicRemoveEnchantmentData) Pack(buf *[]byte) {
	appendU16(buf, m.SpellID)
	appendU16(buf, m.Layer)
}

// MagicRemoveMultipleEnchantmentsData batches several (spell_id, layer)
// removals.
type MagicRemoveMultipleEnchantmentsData struct {
	Target   uint32
	Sequence uint32
	Spells   [][2]uint16 // (spell_id, layer)
}

func (m *MagicRemoveMultipleEnchantmentsData) Unpack(data []byte, offset *int) bool {
	count, ok := readU32(data, offset)
	if !ok {
		return false
	}
	spells := make([][2]uint16, 0, count)
	for i := uint32(0); i < count; i++ {
		spellID, ok := readU16(data, offset)
		if !ok {
			return false
		}
		layer, ok := readU16(data, offset)
		if !ok {
			return false
		}
		spells = append(spells, [2]uint16{spellID, layer})
	}
	m.Spells = spells
	return true
}

func (m MagicRemoveMultipleEnchantmentsData) Pack(buf *[]byte) {
	appendU32(buf, uint32(len(m.Spells)))
	for _, s := range m.Spells {
		appendU16(buf, s[0])
		appendU16(buf, s[1])
	}
}

// MagicPurgeEnchantmentsData clears every active enchantment.
type MagicPurgeEnchantmentsData struct {
	Target   uint32
	Sequence uint32
}

func (m *MagicPurgeEnchantmentsData) Unpack(data []byte, offset *int) bool { return true }
func (m MagicPurgeEnchantmentsData) Pack(buf *[]byte)                    {}

// MagicPurgeBadEnchantmentsData clears every detrimental enchantment.
type MagicPurgeBadEnchantmentsData struct {
	Target   uint32
	Sequence uint32
}

func (m *MagicPurgeBadEnchantmentsData) Unpack(data []byte, offset *int) bool { return true }
func (m MagicPurgeBadEnchantmentsData) Pack(buf *[]byte)                    {}
