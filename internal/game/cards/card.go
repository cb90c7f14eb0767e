package cards

import (
	"time"

	"github.com/google/uuid"

	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Card is one instance of a definition inside a match. It lives in exactly
// one zone at a time and is moved by remove-then-insert.
type Card struct {
	ID    string
	Def   *Definition
	Owner string

	// Buff is the owner's bonus added to base damage.
	Buff int
	// Debuff is the opponent's negation subtracted at resolution.
	Debuff int
	// CostModifier is added to the stamina cost.
	CostModifier int

	Description []string

	motion *rules.Timer
}

// NewCard creates a fresh instance of def owned by ownerID.
func NewCard(def *Definition, ownerID string) *Card {
	c := &Card{
		ID:    uuid.NewString(),
		Def:   def,
		Owner: ownerID,
	}
	c.Describe()
	return c
}

// Name returns the definition name.
func (c *Card) Name() string {
	return c.Def.Name
}

// Cost returns the effective cost after modifiers.
func (c *Card) Cost() resources.Cost {
	return c.Def.BaseCost().Adjusted(c.CostModifier)
}

// IsAffordable reports whether the owner's wallet can play the card.
// Attack and event cards need stamina, magic cards stamina and focus. Items are
// free unless they require a minimum health.
func (c *Card) IsAffordable(w resources.Wallet) bool {
	cost := c.Cost()
	switch c.Def.Kind {
	case KindItem:
		if c.Def.RequireHealthAbove > 0 {
			health := w.Pool(resources.Health)
			return health != nil && health.Current > c.Def.RequireHealthAbove
		}
		return true
	case KindMagic:
		return poolCovers(w, resources.Stamina, cost.Stamina) && poolCovers(w, resources.Focus, cost.Focus)
	default:
		return poolCovers(w, resources.Stamina, cost.Stamina)
	}
}

func poolCovers(w resources.Wallet, kind resources.Kind, amount int) bool {
	if amount <= 0 {
		return true
	}
	pool := w.Pool(kind)
	return pool != nil && pool.Current >= amount
}

// ComputeDebuff returns the negation applied to this card's damage. Evasion
// negates everything and takes precedence over guard, which halves it.
func (c *Card) ComputeDebuff(evasion, guard bool) int {
	raw := c.Def.Damage + c.Buff
	if raw < 0 {
		raw = 0
	}
	switch {
	case evasion:
		return raw
	case guard:
		return raw / 2
	default:
		return 0
	}
}

// TotalDamage returns base + buff - debuff, never below zero.
func (c *Card) TotalDamage() int {
	total := c.Def.Damage + c.Buff - c.Debuff
	if total < 0 {
		return 0
	}
	return total
}

// SetModifiers updates buff and cost modifier, regenerating the description
// when anything changed.
func (c *Card) SetModifiers(buff, costModifier int) {
	if c.Buff == buff && c.CostModifier == costModifier && c.Description != nil {
		return
	}
	c.Buff = buff
	c.CostModifier = costModifier
	c.Describe()
}

// SetDebuff records the opponent negation and regenerates the description.
func (c *Card) SetDebuff(debuff int) {
	if c.Debuff == debuff && c.Description != nil {
		return
	}
	c.Debuff = debuff
	c.Describe()
}

// ResetModifiers clears per-match modifiers when the card leaves play.
func (c *Card) ResetModifiers() {
	c.Buff, c.Debuff, c.CostModifier = 0, 0, 0
	c.Describe()
}

// StartMotion marks the card as moving for d.
func (c *Card) StartMotion(d time.Duration) {
	if d <= 0 {
		c.motion = nil
		return
	}
	c.motion = rules.NewTimer(d)
}

// UpdateMotion advances the card's motion.
func (c *Card) UpdateMotion(dt time.Duration) {
	c.motion.Update(dt)
}

// Moving reports whether the card is still in motion.
func (c *Card) Moving() bool {
	return !c.motion.Expired()
}

// MotionProgress returns how far the current motion has run, in [0, 1].
func (c *Card) MotionProgress() float64 {
	return c.motion.Progress()
}

// Info returns the view used by legality checks.
func (c *Card) Info(zone rules.Zone, affordable bool) rules.CardInfo {
	return rules.CardInfo{
		ID:         c.ID,
		Name:       c.Def.Name,
		Region:     c.Def.Region,
		OwnerID:    c.Owner,
		Zone:       zone,
		Affordable: affordable,
	}
}
