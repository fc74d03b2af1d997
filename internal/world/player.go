package world

// Player is the local client's view of a player character: its entity
// record, attributes/vitals/skills, and currently active enchantments.
type Player struct {
	Entity Entity

	Attributes map[AttributeType]Attribute
	Vitals     map[VitalType]Vital
	Skills     map[SkillType]Skill

	Enchantments map[EnchantmentKey]Enchantment
}

// NewPlayer constructs a Player wrapping e with empty stat tables.
func NewPlayer(e Entity) *Player {
	return &Player{
		Entity:       e,
		Attributes:   make(map[AttributeType]Attribute),
		Vitals:       make(map[VitalType]Vital),
		Skills:       make(map[SkillType]Skill),
		Enchantments: make(map[EnchantmentKey]Enchantment),
	}
}

// ApplyEnchantment inserts or replaces the enchantment under its
// (spell_id, layer) key, matching MAGIC_UPDATE_ENCHANTMENT semantics.
func (p *Player) ApplyEnchantment(e Enchantment) {
	p.Enchantments[e.Key()] = e
}

// RemoveEnchantment drops the enchantment identified by (spellID, layer).
func (p *Player) RemoveEnchantment(spellID, layer uint16) {
	delete(p.Enchantments, EnchantmentKey{SpellID: spellID, Layer: layer})
}

// PurgeEnchantments clears every active enchantment.
func (p *Player) PurgeEnchantments() {
	p.Enchantments = make(map[EnchantmentKey]Enchantment)
}

// PurgeBadEnchantments clears every enchantment whose stat-mod type is
// not marked beneficial.
func (p *Player) PurgeBadEnchantments() {
	for k, e := range p.Enchantments {
		if e.StatModType&StatModBeneficial == 0 {
			delete(p.Enchantments, k)
		}
	}
}

// ExpireEnchantments removes every enchantment whose duration has
// elapsed as of nowServerTime.
func (p *Player) ExpireEnchantments(nowServerTime float64) {
	for k, e := range p.Enchantments {
		if e.Expired(nowServerTime) {
			delete(p.Enchantments, k)
		}
	}
}
