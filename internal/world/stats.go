package world

// AttributeType identifies one of the six core attributes.
type AttributeType uint32

const (
	StrengthAttr     AttributeType = 1
	EnduranceAttr    AttributeType = 2
	QuicknessAttr    AttributeType = 3
	CoordinationAttr AttributeType = 4
	FocusAttr        AttributeType = 5
	SelfAttr         AttributeType = 6
)

func (a AttributeType) String() string {
	switch a {
	case StrengthAttr:
		return "Strength"
	case EnduranceAttr:
		return "Endurance"
	case QuicknessAttr:
		return "Quickness"
	case CoordinationAttr:
		return "Coordination"
	case FocusAttr:
		return "Focus"
	case SelfAttr:
		return "Self"
	default:
		return "Unknown"
	}
}

// Attribute is a single base-valued attribute (current value derives from
// base plus active enchantments; the client does not store it separately).
type Attribute struct {
	Type AttributeType
	Base uint32
}

// VitalType identifies one of the three regenerating vitals.
type VitalType uint32

const (
	Health  VitalType = 1
	Stamina VitalType = 2
	Mana    VitalType = 3
)

func (v VitalType) String() string {
	switch v {
	case Health:
		return "Health"
	case Stamina:
		return "Stamina"
	case Mana:
		return "Mana"
	default:
		return "Unknown"
	}
}

// Vital is a regenerating resource with a base maximum and a current
// value that depletes and regenerates over time.
type Vital struct {
	Type    VitalType
	Base    uint32
	Current uint32
}

// TrainingLevel is how much a character has invested in a skill.
type TrainingLevel uint32

const (
	Unusable    TrainingLevel = 0
	Untrained   TrainingLevel = 1
	Trained     TrainingLevel = 2
	Specialized TrainingLevel = 3
)

// SkillType enumerates every skill the client can track, spanning both
// retired (pre-EOR) and End of Retail skills. IsEOR reports whether a
// skill is part of the End of Retail skill set; the retired skills
// (Axe/Sword/Mace/etc.) remain here because older characters and server
// variants can still report them.
type SkillType uint32

const (
	Axe                 SkillType = 1
	Bow                 SkillType = 2
	Crossbow            SkillType = 3
	Dagger              SkillType = 4
	Mace                SkillType = 5
	MeleeDefense        SkillType = 6
	MissileDefense      SkillType = 7
	Sling               SkillType = 8
	Spear               SkillType = 9
	Staff               SkillType = 10
	Sword               SkillType = 11
	ThrownWeapon        SkillType = 12
	UnarmedCombat       SkillType = 13
	ArcaneLore          SkillType = 14
	MagicDefense        SkillType = 15
	ManaConversion      SkillType = 16
	Spellcraft          SkillType = 17
	ItemTinkering       SkillType = 18
	AssessPerson        SkillType = 19
	Deception           SkillType = 20
	Healing             SkillType = 21
	Jump                SkillType = 22
	Lockpick            SkillType = 23
	Run                 SkillType = 24
	Awareness           SkillType = 25
	ArmsAndArmorRepair  SkillType = 26
	AssessCreature      SkillType = 27
	WeaponTinkering     SkillType = 28
	ArmorTinkering      SkillType = 29
	MagicItemTinkering  SkillType = 30
	CreatureEnchantment SkillType = 31
	ItemEnchantment     SkillType = 32
	LifeMagic           SkillType = 33
	WarMagic            SkillType = 34
	Leadership          SkillType = 35
	Loyalty             SkillType = 36
	Fletching           SkillType = 37
	Alchemy             SkillType = 38
	Cooking             SkillType = 39
	Salvaging           SkillType = 40
	TwoHandedCombat     SkillType = 41
	Gearcraft           SkillType = 42
	VoidMagic           SkillType = 43
	HeavyWeapons        SkillType = 44
	LightWeapons        SkillType = 45
	FinesseWeapons      SkillType = 46
	MissileWeapons      SkillType = 47
	Shield              SkillType = 48
	DualWield           SkillType = 49
	Recklessness        SkillType = 50
	SneakAttack         SkillType = 51
	DirtyFighting       SkillType = 52
	Challenge           SkillType = 53
	Summoning           SkillType = 54
)

var eorSkills = map[SkillType]bool{
	MeleeDefense: true, MissileDefense: true, ArcaneLore: true, MagicDefense: true,
	ManaConversion: true, ItemTinkering: true, AssessPerson: true, Deception: true,
	Healing: true, Jump: true, Lockpick: true, Run: true, AssessCreature: true,
	WeaponTinkering: true, ArmorTinkering: true, MagicItemTinkering: true,
	CreatureEnchantment: true, ItemEnchantment: true, LifeMagic: true, WarMagic: true,
	Leadership: true, Loyalty: true, Fletching: true, Alchemy: true, Cooking: true,
	Salvaging: true, TwoHandedCombat: true, VoidMagic: true, HeavyWeapons: true,
	LightWeapons: true, FinesseWeapons: true, MissileWeapons: true, Shield: true,
	DualWield: true, Recklessness: true, SneakAttack: true, DirtyFighting: true,
	Summoning: true,
}

// IsEOR reports whether s is part of the End of Retail skill set, as
// opposed to an earlier skill later retired or merged (Axe/Sword/Mace
// into Heavy/Light/Finesse Weapons, and similar).
func (s SkillType) IsEOR() bool { return eorSkills[s] }

// Skill is a trained skill with a base and current value.
type Skill struct {
	Type     SkillType
	Base     uint32
	Current  uint32
	Training TrainingLevel
}
