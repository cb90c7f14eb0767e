package effects

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magefree/hollowdeck/internal/game/counters"
	"github.com/magefree/hollowdeck/internal/game/resources"
)

// Kind names a buff or debuff behaviour.
type Kind string

const (
	KindEvasion      Kind = "evasion"
	KindGuard        Kind = "guard"
	KindStrength     Kind = "strength"
	KindRegeneration Kind = "regeneration"
	KindClarity      Kind = "clarity"
	KindWeakness     Kind = "weakness"
	KindPoison       Kind = "poison"
	KindExhaustion   Kind = "exhaustion"
	KindFrailty      Kind = "frailty"
)

// Polarity separates buffs from debuffs.
type Polarity int

const (
	PolarityBuff Polarity = iota
	PolarityDebuff
)

func (p Polarity) String() string {
	if p == PolarityDebuff {
		return "debuff"
	}
	return "buff"
}

// Expiry describes how long a buff lasts.
type Expiry string

const (
	// ExpiryCharges lasts until its charges are consumed.
	ExpiryCharges Expiry = "charges"
	// ExpiryRounds lasts for a number of the owner's turns. Kinds that act at
	// turn start count down there; passive kinds count down as the turn ends.
	ExpiryRounds Expiry = "rounds"
	// ExpiryCardsPlayed lasts until the owner has played a number of cards.
	ExpiryCardsPlayed Expiry = "cards"
	// ExpiryInstant acts once and removes itself.
	ExpiryInstant Expiry = "instant"
)

func (e Expiry) counterType() counters.CounterType {
	switch e {
	case ExpiryCharges:
		return counters.CounterTypeCharges
	case ExpiryCardsPlayed:
		return counters.CounterTypeCards
	default:
		return counters.CounterTypeRounds
	}
}

// Tick carries the match clock into a buff evaluation.
type Tick struct {
	Round int
	// TurnStart is true only on the update where the owner's turn begins.
	TurnStart bool
	// TurnEnd is true only on the update where the owner's turn passes.
	TurnEnd bool
}

type behaviour struct {
	polarity Polarity
	expiry   Expiry
	// damage and cost are per-magnitude signs applied to the owner's cards.
	damage  int
	cost    int
	perform func(b *Buff, owner Owner, tick Tick)
}

var behaviours = map[Kind]behaviour{
	KindEvasion:      {polarity: PolarityBuff, expiry: ExpiryCharges, perform: expireWhenSpent},
	KindGuard:        {polarity: PolarityBuff, expiry: ExpiryRounds, perform: countRounds(nil)},
	KindStrength:     {polarity: PolarityBuff, expiry: ExpiryCardsPlayed, damage: 1, perform: expireAfterPlays},
	KindRegeneration: {polarity: PolarityBuff, expiry: ExpiryRounds, perform: countRounds(heal)},
	KindClarity:      {polarity: PolarityBuff, expiry: ExpiryRounds, perform: countRounds(restoreFocus)},
	KindWeakness:     {polarity: PolarityDebuff, expiry: ExpiryRounds, damage: -1, perform: lapseAtTurnEnd},
	KindPoison:       {polarity: PolarityDebuff, expiry: ExpiryRounds, perform: countRounds(loseHealth)},
	KindExhaustion:   {polarity: PolarityDebuff, expiry: ExpiryRounds, cost: 1, perform: lapseAtTurnEnd},
	KindFrailty:      {polarity: PolarityDebuff, expiry: ExpiryInstant, perform: shrinkMaxHealth},
}

// KnownKind reports whether name is a registered buff kind.
func KnownKind(name string) bool {
	_, ok := behaviours[Kind(name)]
	return ok
}

// PolarityOf returns the polarity of a registered kind.
func PolarityOf(kind Kind) (Polarity, bool) {
	b, ok := behaviours[kind]
	return b.polarity, ok
}

// Buff is a timed modifier attached to a player. Each buff decides for itself
// when it expires.
type Buff struct {
	ID           string
	Kind         Kind
	Polarity     Polarity
	Expiry       Expiry
	Amount       int
	SourceCardID string

	// Remaining holds charges, rounds, or cards left depending on Expiry.
	Remaining *counters.Counter

	ActivatedRound int
	playedMark     int

	manager *Manager
	removed bool
}

func newBuff(kind Kind, amount, duration int) (*Buff, error) {
	spec, ok := behaviours[kind]
	if !ok {
		return nil, fmt.Errorf("unknown buff kind %q", kind)
	}
	b := &Buff{
		ID:       uuid.NewString(),
		Kind:     kind,
		Polarity: spec.polarity,
		Expiry:   spec.expiry,
		Amount:   amount,
	}
	if spec.expiry != ExpiryInstant {
		b.Remaining = spec.expiry.counterType().New(duration)
	}
	return b, nil
}

// Removed reports whether the buff has been removed from its manager.
func (b *Buff) Removed() bool {
	return b.removed
}

// Left returns the remaining charges, rounds, or cards.
func (b *Buff) Left() int {
	if b.Remaining == nil {
		return 0
	}
	return b.Remaining.Count
}

// Label renders a short status line such as "guard 1 (2 rounds)".
func (b *Buff) Label() string {
	if b.Remaining == nil {
		return fmt.Sprintf("%s %d", b.Kind, b.Amount)
	}
	return fmt.Sprintf("%s %d (%d %s)", b.Kind, b.Amount, b.Remaining.Count, b.Remaining.Name)
}

// Expire removes the buff from its manager.
func (b *Buff) Expire() {
	if b.removed {
		return
	}
	if b.manager != nil {
		b.manager.remove(b)
		return
	}
	b.removed = true
}

func (b *Buff) perform(owner Owner, tick Tick) {
	if b.removed {
		return
	}
	if spec, ok := behaviours[b.Kind]; ok && spec.perform != nil {
		spec.perform(b, owner, tick)
	}
}

func expireWhenSpent(b *Buff, _ Owner, _ Tick) {
	if b.Remaining == nil || b.Remaining.Exhausted() {
		b.Expire()
	}
}

func expireAfterPlays(b *Buff, _ Owner, _ Tick) {
	if b.manager == nil {
		return
	}
	used := b.manager.played - b.playedMark
	if b.Remaining == nil || used >= b.Remaining.Count {
		b.Expire()
	}
}

// countRounds runs onTurn at each of the owner's turn starts after activation,
// then counts one round down.
func countRounds(onTurn func(b *Buff, owner Owner)) func(*Buff, Owner, Tick) {
	return func(b *Buff, owner Owner, tick Tick) {
		if !tick.TurnStart || tick.Round <= b.ActivatedRound {
			return
		}
		if onTurn != nil && owner != nil {
			onTurn(b, owner)
		}
		b.Remaining.Remove(1)
		if b.Remaining.Exhausted() {
			b.Expire()
		}
	}
}

// lapseAtTurnEnd counts one round down whenever the owner's turn ends, so a
// debuff placed during the opponent's turn covers its full duration.
func lapseAtTurnEnd(b *Buff, _ Owner, tick Tick) {
	if !tick.TurnEnd {
		return
	}
	b.Remaining.Remove(1)
	if b.Remaining.Exhausted() {
		b.Expire()
	}
}

func heal(b *Buff, owner Owner) {
	if pool := owner.Pool(resources.Health); pool != nil {
		pool.Add(b.Amount)
	}
}

func restoreFocus(b *Buff, owner Owner) {
	if pool := owner.Pool(resources.Focus); pool != nil {
		pool.Add(b.Amount)
	}
}

func loseHealth(b *Buff, owner Owner) {
	if pool := owner.Pool(resources.Health); pool != nil {
		pool.Remove(b.Amount)
	}
}

func shrinkMaxHealth(b *Buff, owner Owner, _ Tick) {
	if owner != nil {
		if pool := owner.Pool(resources.Health); pool != nil {
			pool.ShrinkMax(b.Amount)
		}
	}
	b.Expire()
}
