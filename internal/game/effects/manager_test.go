package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

type fakeOwner struct {
	id    string
	pools map[resources.Kind]*resources.Pool
	cards []*cards.Card
}

func newFakeOwner() *fakeOwner {
	return &fakeOwner{
		id: "human",
		pools: map[resources.Kind]*resources.Pool{
			resources.Health:  resources.NewPool(resources.Health, 100),
			resources.Stamina: resources.NewPool(resources.Stamina, 10),
			resources.Focus:   resources.NewPool(resources.Focus, 10),
		},
	}
}

func (o *fakeOwner) Pool(kind resources.Kind) *resources.Pool { return o.pools[kind] }
func (o *fakeOwner) PlayerID() string                         { return o.id }
func (o *fakeOwner) OwnedCards() []*cards.Card                { return o.cards }

func attackCard(t *testing.T, damage int, cost string) *cards.Card {
	t.Helper()
	def := &cards.Definition{Name: "Slash", Kind: cards.KindAttack, Damage: damage, Cost: cost}
	require.NoError(t, def.Prepare())
	return cards.NewCard(def, "human")
}

func turnStart(round int) Tick { return Tick{Round: round, TurnStart: true} }

func TestBuilderDefaults(t *testing.T) {
	b, err := New(KindGuard).From("card-1").Build()
	require.NoError(t, err)
	assert.Equal(t, KindGuard, b.Kind)
	assert.Equal(t, PolarityBuff, b.Polarity)
	assert.Equal(t, 1, b.Amount)
	assert.Equal(t, 1, b.Left())
	assert.Equal(t, "card-1", b.SourceCardID)

	_, err = New("haste").Build()
	assert.Error(t, err)
	assert.True(t, KnownKind("poison"))
	assert.False(t, KnownKind("haste"))
}

func TestEvasionChargesConsumed(t *testing.T) {
	owner := newFakeOwner()
	bus := rules.NewEventBus()
	var consumed []int
	bus.SubscribeTyped(rules.EventChargeConsumed, func(e rules.Event) { consumed = append(consumed, e.Amount) })

	m := NewManager(owner, bus)
	m.Add(New(KindEvasion).For(2).MustBuild())

	require.True(t, m.ConsumeCharge(KindEvasion))
	assert.Equal(t, 1, m.First(KindEvasion).Left())

	require.True(t, m.ConsumeCharge(KindEvasion))
	assert.False(t, m.Has(KindEvasion), "evasion must be removed at zero charges")
	assert.False(t, m.ConsumeCharge(KindEvasion))
	assert.Equal(t, []int{1, 0}, consumed)
}

func TestUpdateToleratesSelfRemoval(t *testing.T) {
	owner := newFakeOwner()
	m := NewManager(owner, nil)

	frailty := m.Add(New(KindFrailty).Magnitude(20).MustBuild())
	guard := m.Add(New(KindGuard).For(1).MustBuild())

	var removed []Kind
	m.OnRemoved(func(b *Buff) { removed = append(removed, b.Kind) })

	m.Update(Tick{Round: 1})
	assert.True(t, frailty.Removed())
	assert.Equal(t, 80, owner.Pool(resources.Health).Max)
	assert.Equal(t, 80, owner.Pool(resources.Health).Current)
	assert.Equal(t, 100, owner.Pool(resources.Health).Original)

	// a removed buff is never invoked again
	m.Update(Tick{Round: 1})
	m.Update(Tick{Round: 1})
	assert.Equal(t, 80, owner.Pool(resources.Health).Max)
	assert.Equal(t, []Kind{KindFrailty}, removed)
	assert.False(t, guard.Removed())
	assert.Len(t, m.All(), 1)
}

func TestRoundBuffsCountOwnerTurns(t *testing.T) {
	owner := newFakeOwner()
	owner.Pool(resources.Health).Current = 50
	owner.Pool(resources.Focus).Current = 0
	m := NewManager(owner, nil)

	m.Update(Tick{Round: 1})
	m.Add(New(KindRegeneration).Magnitude(5).For(2).MustBuild())
	m.Add(New(KindClarity).Magnitude(3).For(1).MustBuild())
	m.Add(New(KindPoison).Magnitude(4).For(1).MustBuild())

	// frame ticks and a turn start in the activation round do nothing
	m.Update(Tick{Round: 1})
	m.Update(turnStart(1))
	assert.Equal(t, 50, owner.Pool(resources.Health).Current)

	m.Update(turnStart(3))
	assert.Equal(t, 51, owner.Pool(resources.Health).Current, "+5 regen -4 poison")
	assert.Equal(t, 3, owner.Pool(resources.Focus).Current)
	assert.True(t, m.Has(KindRegeneration))
	assert.False(t, m.Has(KindClarity))
	assert.False(t, m.Has(KindPoison))

	m.Update(Tick{Round: 3})
	assert.Equal(t, 51, owner.Pool(resources.Health).Current, "frame ticks never heal")

	m.Update(turnStart(5))
	assert.Equal(t, 56, owner.Pool(resources.Health).Current)
	assert.False(t, m.Has(KindRegeneration))
}

func TestPassiveDebuffsLapseAtOwnersTurnEnd(t *testing.T) {
	owner := newFakeOwner()
	slash := attackCard(t, 6, "{2S}")
	owner.cards = []*cards.Card{slash}
	m := NewManager(owner, nil)

	m.Update(Tick{Round: 1})
	m.Add(New(KindWeakness).Magnitude(2).For(1).MustBuild())
	m.Add(New(KindExhaustion).Magnitude(1).For(2).MustBuild())

	m.Update(turnStart(2))
	assert.True(t, m.Has(KindWeakness), "a one round debuff covers the owner's next turn")
	assert.Equal(t, -2, slash.Buff)
	assert.Equal(t, 1, slash.CostModifier)

	m.Update(Tick{Round: 2, TurnEnd: true})
	assert.False(t, m.Has(KindWeakness))
	assert.Equal(t, 0, slash.Buff)
	assert.Equal(t, 1, m.First(KindExhaustion).Left())

	m.Update(turnStart(4))
	assert.True(t, m.Has(KindExhaustion))
	m.Update(Tick{Round: 4, TurnEnd: true})
	assert.False(t, m.Has(KindExhaustion))
	assert.Equal(t, 0, slash.CostModifier)
}

func TestStrengthExpiresAfterCardsPlayed(t *testing.T) {
	owner := newFakeOwner()
	slash := attackCard(t, 6, "{2S}")
	owner.cards = []*cards.Card{slash}
	m := NewManager(owner, nil)

	m.NotePlayed() // the card granting strength
	m.Add(New(KindStrength).Magnitude(3).For(2).MustBuild())
	assert.Equal(t, 3, slash.Buff)

	m.NotePlayed()
	m.Update(Tick{Round: 1})
	assert.True(t, m.Has(KindStrength))

	m.NotePlayed()
	m.Update(Tick{Round: 1})
	assert.False(t, m.Has(KindStrength))
	assert.Equal(t, 0, slash.Buff)
}

func TestReconcileBuffsAndCosts(t *testing.T) {
	owner := newFakeOwner()
	slash := attackCard(t, 6, "{2S}")
	free := attackCard(t, 4, "")
	potionDef := &cards.Definition{Name: "Potion", Kind: cards.KindItem}
	require.NoError(t, potionDef.Prepare())
	potion := cards.NewCard(potionDef, "human")
	owner.cards = []*cards.Card{slash, free, potion}

	m := NewManager(owner, nil)
	m.Add(New(KindStrength).Magnitude(4).For(3).MustBuild())
	m.Add(New(KindWeakness).Magnitude(1).For(2).MustBuild())
	m.Add(New(KindExhaustion).Magnitude(2).For(2).MustBuild())

	assert.Equal(t, 3, slash.Buff)
	assert.Equal(t, 2, slash.CostModifier)
	assert.Equal(t, 4, slash.Cost().Stamina)
	assert.Equal(t, 0, free.CostModifier, "free cards stay free")
	assert.Equal(t, 0, potion.Buff, "non-damaging cards get no bonus")
	assert.Contains(t, slash.Description, "Costs 4 stamina")

	assert.Equal(t, 2, m.Cleanse())
	assert.Empty(t, m.Debuffs())
	assert.Equal(t, 4, slash.Buff)
	assert.Equal(t, 0, slash.CostModifier)
}

func TestReplaceKeepsOnePerKind(t *testing.T) {
	m := NewManager(newFakeOwner(), nil)
	m.Add(New(KindGuard).For(1).MustBuild())
	m.Add(New(KindGuard).For(1).MustBuild())
	require.Len(t, m.Buffs(), 2)

	latest := m.Replace(New(KindGuard).For(3).MustBuild())
	require.Len(t, m.Buffs(), 1)
	assert.Same(t, latest, m.First(KindGuard))
	assert.Equal(t, 3, latest.Left())

	assert.Equal(t, 1, m.RemoveAll(KindGuard))
	assert.False(t, m.Has(KindGuard))
}

func TestOrderIsPreserved(t *testing.T) {
	m := NewManager(newFakeOwner(), nil)
	m.Add(New(KindGuard).MustBuild())
	m.Add(New(KindPoison).MustBuild())
	m.Add(New(KindEvasion).MustBuild())
	m.Add(New(KindWeakness).MustBuild())

	kinds := func(list []*Buff) []Kind {
		out := make([]Kind, len(list))
		for i, b := range list {
			out[i] = b.Kind
		}
		return out
	}
	assert.Equal(t, []Kind{KindGuard, KindEvasion}, kinds(m.Buffs()))
	assert.Equal(t, []Kind{KindPoison, KindWeakness}, kinds(m.Debuffs()))
	assert.Equal(t, []Kind{KindGuard, KindEvasion, KindPoison, KindWeakness}, kinds(m.All()))
	assert.Equal(t, "guard 1 (1 rounds)", m.Labels()[0])
}
