package messages

import (
	"math"

	"github.com/holtburger/holtburger/internal/world"
)

// UnpackEnchantment decodes a single Enchantment record: spell id, layer,
// category, power level, start time (server seconds, as f64), duration,
// caster guid, two degrade parameters, then the stat-mod triple
// (type, key, value).
func UnpackEnchantment(data []byte, offset *int) (world.Enchantment, bool) {
	var e world.Enchantment
	spellID, ok := readU16(data, offset)
	if !ok {
		return e, false
	}
	layer, ok := readU16(data, offset)
	if !ok {
		return e, false
	}
	category, ok := readU16(data, offset)
	if !ok {
		return e, false
	}
	if _, ok := readU16(data, offset); !ok { // alignment pad after the three u16 fields
		return e, false
	}
	power, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	startRaw, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	startRaw2, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	startTime := math.Float64frombits(uint64(startRaw) | uint64(startRaw2)<<32)
	duration, ok := readF32(data, offset)
	if !ok {
		return e, false
	}
	caster, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	degradeMod, ok := readF32(data, offset)
	if !ok {
		return e, false
	}
	degradeLimit, ok := readF32(data, offset)
	if !ok {
		return e, false
	}
	statModType, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	statModKey, ok := readU32(data, offset)
	if !ok {
		return e, false
	}
	statModValue, ok := readF32(data, offset)
	if !ok {
		return e, false
	}
	e = world.Enchantment{
		SpellID:         spellID,
		Layer:           layer,
		Category:        category,
		PowerLevel:      power,
		StartTime:       startTime,
		Duration:        duration,
		CasterGUID:      caster,
		DegradeModifier: degradeMod,
		DegradeLimit:    degradeLimit,
		StatModType:     world.StatModType(statModType),
		StatModKey:      statModKey,
		StatModValue:    statModValue,
	}
	return e, true
}

// PackEnchantment appends the wire form of e to buf.
func PackEnchantment(buf *[]byte, e world.Enchantment) {
	appendU16(buf, e.SpellID)
	appendU16(buf, e.Layer)
	appendU16(buf, e.Category)
	appendU16(buf, 0) // alignment pad
	appendU32(buf, e.PowerLevel)
	bits := math.Float64bits(e.StartTime)
	appendU32(buf, uint32(bits))
	appendU32(buf, uint32(bits>>32))
	appendF32(buf, e.Duration)
	appendU32(buf, e.CasterGUID)
	appendF32(buf, e.DegradeModifier)
	appendF32(buf, e.DegradeLimit)
	appendU32(buf, uint32(e.StatModType))
	appendU32(buf, e.StatModKey)
	appendF32(buf, e.StatModValue)
}
