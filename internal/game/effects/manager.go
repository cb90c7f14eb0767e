package effects

import (
	"fmt"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Owner is the player a Manager belongs to.
type Owner interface {
	resources.Wallet
	PlayerID() string
	// OwnedCards returns the cards whose modifiers follow this manager.
	OwnedCards() []*cards.Card
}

// Manager owns a player's ordered buff and debuff lists.
type Manager struct {
	owner   Owner
	bus     *rules.EventBus
	buffs   []*Buff
	debuffs []*Buff

	round  int
	played int

	onRemoved []func(*Buff)
}

// NewManager creates a manager for owner. bus may be nil.
func NewManager(owner Owner, bus *rules.EventBus) *Manager {
	return &Manager{
		owner: owner,
		bus:   bus,
		round: 1,
	}
}

// OnRemoved registers a callback run whenever a buff leaves the manager.
func (m *Manager) OnRemoved(fn func(*Buff)) {
	if fn != nil {
		m.onRemoved = append(m.onRemoved, fn)
	}
}

// Buffs returns a copy of the active buffs in order.
func (m *Manager) Buffs() []*Buff {
	return append([]*Buff(nil), m.buffs...)
}

// Debuffs returns a copy of the active debuffs in order.
func (m *Manager) Debuffs() []*Buff {
	return append([]*Buff(nil), m.debuffs...)
}

// All returns buffs followed by debuffs.
func (m *Manager) All() []*Buff {
	all := make([]*Buff, 0, len(m.buffs)+len(m.debuffs))
	all = append(all, m.buffs...)
	return append(all, m.debuffs...)
}

// Add attaches b and stamps it with the current round and play count.
func (m *Manager) Add(b *Buff) *Buff {
	if b == nil {
		return nil
	}
	b.manager = m
	b.removed = false
	b.ActivatedRound = m.round
	b.playedMark = m.played
	if b.Polarity == PolarityDebuff {
		m.debuffs = append(m.debuffs, b)
	} else {
		m.buffs = append(m.buffs, b)
	}

	evt := rules.NewEventWithAmount(rules.EventBuffAdded, m.ownerID(), b.SourceCardID, m.ownerID(), b.Amount)
	evt.Data = string(b.Kind)
	evt.Round = m.round
	evt.Metadata["buff_id"] = b.ID
	evt.Metadata["polarity"] = b.Polarity.String()
	evt.Description = b.Label()
	m.bus.Publish(evt)

	m.Reconcile()
	return b
}

// Replace removes every buff of b's kind and then adds b, keeping at most one
// active instance per kind.
func (m *Manager) Replace(b *Buff) *Buff {
	if b == nil {
		return nil
	}
	m.RemoveAll(b.Kind)
	return m.Add(b)
}

// RemoveAll removes every buff of kind and returns how many were removed.
func (m *Manager) RemoveAll(kind Kind) int {
	removed := 0
	for _, b := range m.All() {
		if b.Kind == kind {
			m.remove(b)
			removed++
		}
	}
	if removed > 0 {
		m.Reconcile()
	}
	return removed
}

// First returns the oldest active buff of kind.
func (m *Manager) First(kind Kind) *Buff {
	for _, b := range m.All() {
		if b.Kind == kind && !b.removed {
			return b
		}
	}
	return nil
}

// Has reports whether a buff of kind is active.
func (m *Manager) Has(kind Kind) bool {
	return m.First(kind) != nil
}

// ConsumeCharge spends one charge from the first buff of kind, removing it at
// zero. It reports whether a charge was spent.
func (m *Manager) ConsumeCharge(kind Kind) bool {
	b := m.First(kind)
	if b == nil || b.Expiry != ExpiryCharges || b.Remaining == nil {
		return false
	}
	b.Remaining.Remove(1)

	evt := rules.NewEventWithAmount(rules.EventChargeConsumed, m.ownerID(), b.ID, m.ownerID(), b.Remaining.Count)
	evt.Data = string(kind)
	evt.Round = m.round
	m.bus.Publish(evt)

	if b.Remaining.Exhausted() {
		m.remove(b)
		m.Reconcile()
	}
	return true
}

// Cleanse removes all debuffs and returns how many were removed.
func (m *Manager) Cleanse() int {
	debuffs := m.Debuffs()
	for _, b := range debuffs {
		m.remove(b)
	}
	if len(debuffs) > 0 {
		evt := rules.NewEventWithAmount(rules.EventCleansed, m.ownerID(), m.ownerID(), m.ownerID(), len(debuffs))
		evt.Round = m.round
		m.bus.Publish(evt)
		m.Reconcile()
	}
	return len(debuffs)
}

// Clear drops everything without firing callbacks.
func (m *Manager) Clear() {
	for _, b := range m.All() {
		b.removed = true
	}
	m.buffs, m.debuffs = nil, nil
}

// NotePlayed counts one card played by the owner. Cards-played expiries are
// measured against this count.
func (m *Manager) NotePlayed() {
	m.played++
}

// Played returns how many cards the owner has played so far.
func (m *Manager) Played() int {
	return m.played
}

// Update evaluates every buff against tick. It iterates a snapshot of both
// lists so buffs may remove themselves; removed buffs are skipped. Card
// modifiers are reconciled afterwards.
func (m *Manager) Update(tick Tick) {
	if tick.Round > 0 {
		m.round = tick.Round
	}
	for _, b := range m.All() {
		if b.removed {
			continue
		}
		b.perform(m.owner, tick)
	}
	m.Reconcile()
}

// CardBonus returns the damage bonus the owner's buffs give card.
func (m *Manager) CardBonus(card *cards.Card) int {
	if card == nil || !card.Def.Damaging() {
		return 0
	}
	return m.sum(func(spec behaviour) int { return spec.damage })
}

// CostModifier returns the stamina cost change the owner's buffs give card.
func (m *Manager) CostModifier(card *cards.Card) int {
	if card == nil || card.Def.BaseCost().Stamina <= 0 {
		return 0
	}
	return m.sum(func(spec behaviour) int { return spec.cost })
}

func (m *Manager) sum(sign func(behaviour) int) int {
	total := 0
	for _, b := range m.All() {
		if b.removed {
			continue
		}
		total += sign(behaviours[b.Kind]) * b.Amount
	}
	return total
}

// Reconcile refreshes buff sums, cost modifiers, and descriptions on the
// owner's cards.
func (m *Manager) Reconcile() {
	if m.owner == nil {
		return
	}
	for _, card := range m.owner.OwnedCards() {
		m.ReconcileCard(card)
	}
}

// ReconcileCard refreshes a single card.
func (m *Manager) ReconcileCard(card *cards.Card) {
	card.SetModifiers(m.CardBonus(card), m.CostModifier(card))
}

// Labels returns display lines for all active buffs.
func (m *Manager) Labels() []string {
	all := m.All()
	out := make([]string, 0, len(all))
	for _, b := range all {
		out = append(out, b.Label())
	}
	return out
}

func (m *Manager) remove(b *Buff) {
	if b.removed {
		return
	}
	b.removed = true
	m.buffs = without(m.buffs, b)
	m.debuffs = without(m.debuffs, b)

	evt := rules.NewEvent(rules.EventBuffExpired, m.ownerID(), b.ID, m.ownerID())
	evt.Data = string(b.Kind)
	evt.Round = m.round
	evt.Description = fmt.Sprintf("%s expired", b.Kind)
	m.bus.Publish(evt)

	for _, fn := range m.onRemoved {
		fn(b)
	}
}

func (m *Manager) ownerID() string {
	if m.owner == nil {
		return ""
	}
	return m.owner.PlayerID()
}

func without(list []*Buff, b *Buff) []*Buff {
	for i, x := range list {
		if x == b {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
