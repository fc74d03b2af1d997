package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnchantmentExpired(t *testing.T) {
	e := Enchantment{StartTime: 100, Duration: 10}
	require.False(t, e.Expired(109))
	require.True(t, e.Expired(110))
	require.True(t, e.Expired(200))
}

func TestEnchantmentInfiniteNeverExpires(t *testing.T) {
	e := Enchantment{StartTime: 100, Duration: -1}
	require.False(t, e.Expired(1e9))
}

func TestPlayerPurgeBadEnchantments(t *testing.T) {
	p := NewPlayer(NewEntity(1, "test", WorldPosition{}))
	p.ApplyEnchantment(Enchantment{SpellID: 1, Layer: 1, StatModType: StatModBeneficial})
	p.ApplyEnchantment(Enchantment{SpellID: 2, Layer: 1})

	p.PurgeBadEnchantments()

	require.Len(t, p.Enchantments, 1)
	_, ok := p.Enchantments[EnchantmentKey{SpellID: 1, Layer: 1}]
	require.True(t, ok)
}

func TestPlayerExpireEnchantments(t *testing.T) {
	p := NewPlayer(NewEntity(1, "test", WorldPosition{}))
	p.ApplyEnchantment(Enchantment{SpellID: 1, Layer: 1, StartTime: 0, Duration: 5})
	p.ApplyEnchantment(Enchantment{SpellID: 2, Layer: 1, StartTime: 0, Duration: -1})

	p.ExpireEnchantments(10)

	require.Len(t, p.Enchantments, 1)
	_, ok := p.Enchantments[EnchantmentKey{SpellID: 2, Layer: 1}]
	require.True(t, ok)
}
