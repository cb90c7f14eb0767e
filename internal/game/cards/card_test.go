package cards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/hollowdeck/internal/game/resources"
)

type wallet map[resources.Kind]*resources.Pool

func (w wallet) Pool(kind resources.Kind) *resources.Pool { return w[kind] }

func newWallet(health, stamina, focus int) wallet {
	w := wallet{
		resources.Health:  resources.NewPool(resources.Health, 100),
		resources.Stamina: resources.NewPool(resources.Stamina, 10),
		resources.Focus:   resources.NewPool(resources.Focus, 10),
	}
	w[resources.Health].Current = health
	w[resources.Stamina].Current = stamina
	w[resources.Focus].Current = focus
	return w
}

func mustDef(t *testing.T, def *Definition) *Definition {
	t.Helper()
	require.NoError(t, def.Prepare())
	return def
}

func TestTotalDamageFormula(t *testing.T) {
	def := mustDef(t, &Definition{Name: "Slash", Kind: KindAttack, Cost: "{3S}", Damage: 10})

	tests := []struct {
		name     string
		buff     int
		evasion  bool
		guard    bool
		expected int
		debuff   int
	}{
		{name: "plain", expected: 10},
		{name: "buffed", buff: 4, expected: 14},
		{name: "guard halves", guard: true, debuff: 5, expected: 5},
		{name: "guard halves buffed odd", buff: 3, guard: true, debuff: 6, expected: 7},
		{name: "evasion negates", evasion: true, debuff: 10, expected: 0},
		{name: "evasion beats guard", buff: 2, evasion: true, guard: true, debuff: 12, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(def, "human")
			card.SetModifiers(tt.buff, 0)
			debuff := card.ComputeDebuff(tt.evasion, tt.guard)
			assert.Equal(t, tt.debuff, debuff)
			card.SetDebuff(debuff)
			assert.Equal(t, def.Damage+card.Buff-card.Debuff, card.TotalDamage())
			assert.Equal(t, tt.expected, card.TotalDamage())
		})
	}
}

func TestTotalDamageNeverNegative(t *testing.T) {
	def := mustDef(t, &Definition{Name: "Poke", Kind: KindAttack, Damage: 2})
	card := NewCard(def, "human")
	card.SetModifiers(-5, 0)
	assert.Equal(t, 0, card.ComputeDebuff(false, true))
	assert.Equal(t, 0, card.TotalDamage())
}

func TestIsAffordable(t *testing.T) {
	attack := mustDef(t, &Definition{Name: "Slash", Kind: KindAttack, Cost: "{5S}", Damage: 5})
	magic := mustDef(t, &Definition{Name: "Fireball", Kind: KindMagic, Cost: "{2S}{4F}", Damage: 8})
	potion := mustDef(t, &Definition{Name: "Potion", Kind: KindItem, Ops: []Op{{Type: OpHeal, Amount: 10}}})
	bloodVial := mustDef(t, &Definition{Name: "Blood Vial", Kind: KindItem, RequireHealthAbove: 10,
		Ops: []Op{{Type: OpSelfDamage, Amount: 10}, {Type: OpRestoreStamina, Amount: 5}}})
	event := mustDef(t, &Definition{Name: "Sandstorm", Kind: KindEvent, Cost: "{1S}", Region: "desert"})

	assert.True(t, NewCard(attack, "p").IsAffordable(newWallet(100, 5, 0)))
	assert.False(t, NewCard(attack, "p").IsAffordable(newWallet(100, 4, 10)))

	assert.True(t, NewCard(magic, "p").IsAffordable(newWallet(100, 2, 4)))
	assert.False(t, NewCard(magic, "p").IsAffordable(newWallet(100, 10, 3)))
	assert.False(t, NewCard(magic, "p").IsAffordable(newWallet(100, 1, 10)))

	assert.True(t, NewCard(potion, "p").IsAffordable(newWallet(1, 0, 0)))
	assert.True(t, NewCard(bloodVial, "p").IsAffordable(newWallet(11, 0, 0)))
	assert.False(t, NewCard(bloodVial, "p").IsAffordable(newWallet(10, 0, 0)))

	assert.True(t, NewCard(event, "p").IsAffordable(newWallet(100, 1, 0)))
	assert.False(t, NewCard(event, "p").IsAffordable(newWallet(100, 0, 0)))
}

func TestCostModifierAffectsAffordability(t *testing.T) {
	attack := mustDef(t, &Definition{Name: "Slash", Kind: KindAttack, Cost: "{5S}", Damage: 5})
	card := NewCard(attack, "p")
	card.SetModifiers(0, 2)
	assert.Equal(t, 7, card.Cost().Stamina)
	assert.False(t, card.IsAffordable(newWallet(100, 6, 0)))

	card.SetModifiers(0, -10)
	assert.Equal(t, 0, card.Cost().Stamina)
	assert.True(t, card.IsAffordable(newWallet(100, 0, 0)))
}

func TestDescriptionRegenerates(t *testing.T) {
	def := mustDef(t, &Definition{Name: "Slash", Kind: KindAttack, Cost: "{3S}", Damage: 10,
		Ops: []Op{{Type: OpDraw, Amount: 1}, {Type: OpBuff, Effect: "guard", Amount: 1, Duration: 2}}})
	card := NewCard(def, "human")
	assert.Equal(t, []string{
		"Deals 10 damage",
		"Costs 3 stamina",
		"Draw a card",
		"Gain guard 1 for 2 rounds",
	}, card.Description)

	card.SetModifiers(2, 1)
	assert.Equal(t, "Deals 12 damage (+2)", card.Description[0])
	assert.Equal(t, "Costs 4 stamina", card.Description[1])

	card.SetDebuff(6)
	assert.Equal(t, "Negated by 6", card.Description[1])

	card.ResetModifiers()
	assert.Equal(t, "Deals 10 damage", card.Description[0])
}

func TestCardMotion(t *testing.T) {
	def := mustDef(t, &Definition{Name: "Slash", Kind: KindAttack, Damage: 1})
	card := NewCard(def, "human")
	assert.False(t, card.Moving())

	card.StartMotion(300 * time.Millisecond)
	assert.True(t, card.Moving())
	card.UpdateMotion(200 * time.Millisecond)
	assert.True(t, card.Moving())
	card.UpdateMotion(200 * time.Millisecond)
	assert.False(t, card.Moving())
}

func TestPrepareRejectsBadDefinitions(t *testing.T) {
	bad := []*Definition{
		{Name: "", Kind: KindAttack},
		{Name: "X", Kind: "spell"},
		{Name: "X", Kind: KindAttack, Damage: -1},
		{Name: "X", Kind: KindAttack, Cost: "{3Q}"},
		{Name: "X", Kind: KindItem, Ops: []Op{{Type: "teleport"}}},
		{Name: "X", Kind: KindItem, Ops: []Op{{Type: OpBuff, Amount: 1}}},
		{Name: "X", Kind: KindItem, Ops: []Op{{Type: OpHeal, Amount: -3}}},
	}
	for _, def := range bad {
		assert.Error(t, def.Prepare(), "%+v", def)
	}
}
