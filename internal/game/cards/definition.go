package cards

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefree/hollowdeck/internal/game/resources"
)

// ErrUnknownCard is returned when a card name is not in the catalog.
var ErrUnknownCard = errors.New("unknown card")

// Kind is the broad category of a card.
type Kind string

const (
	KindAttack Kind = "attack"
	KindMagic  Kind = "magic"
	KindItem   Kind = "item"
	KindEvent  Kind = "event"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindAttack, KindMagic, KindItem, KindEvent:
		return true
	}
	return false
}

// OpType names an effect step run after a card resolves.
type OpType string

const (
	OpHeal            OpType = "heal"
	OpSelfDamage      OpType = "self_damage"
	OpRestoreStamina  OpType = "restore_stamina"
	OpRestoreFocus    OpType = "restore_focus"
	OpBuff            OpType = "buff"
	OpDebuff          OpType = "debuff"
	OpDraw            OpType = "draw"
	OpCombo           OpType = "combo"
	OpCleanse         OpType = "cleanse"
	OpShrinkMaxHealth OpType = "shrink_max_health"
)

var knownOps = map[OpType]bool{
	OpHeal:            true,
	OpSelfDamage:      true,
	OpRestoreStamina:  true,
	OpRestoreFocus:    true,
	OpBuff:            true,
	OpDebuff:          true,
	OpDraw:            true,
	OpCombo:           true,
	OpCleanse:         true,
	OpShrinkMaxHealth: true,
}

// Op is one data-driven effect step of a card.
type Op struct {
	Type     OpType `yaml:"op" json:"op"`
	Amount   int    `yaml:"amount,omitempty" json:"amount,omitempty"`
	Effect   string `yaml:"effect,omitempty" json:"effect,omitempty"`
	Duration int    `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// Definition is an immutable catalog entry shared by every instance of a card.
type Definition struct {
	Name               string `yaml:"name" json:"name"`
	Kind               Kind   `yaml:"kind" json:"kind"`
	Cost               string `yaml:"cost,omitempty" json:"cost,omitempty"`
	Damage             int    `yaml:"damage,omitempty" json:"damage,omitempty"`
	Sound              string `yaml:"sound,omitempty" json:"sound,omitempty"`
	Image              string `yaml:"image,omitempty" json:"image,omitempty"`
	Region             string `yaml:"region,omitempty" json:"region,omitempty"`
	RequireHealthAbove int    `yaml:"require_health_above,omitempty" json:"require_health_above,omitempty"`
	Flavor             string `yaml:"flavor,omitempty" json:"flavor,omitempty"`
	Ops                []Op   `yaml:"ops,omitempty" json:"ops,omitempty"`

	cost resources.Cost
}

// Prepare validates the definition and parses its cost string.
func (d *Definition) Prepare() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return errors.New("card definition without name")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("card %q: unknown kind %q", d.Name, d.Kind)
	}
	if d.Damage < 0 {
		return fmt.Errorf("card %q: negative damage %d", d.Name, d.Damage)
	}
	if strings.TrimSpace(d.Cost) != "" {
		cost, err := resources.ParseCost(d.Cost)
		if err != nil {
			return fmt.Errorf("card %q: %w", d.Name, err)
		}
		d.cost = cost
	}
	for i, op := range d.Ops {
		if !knownOps[op.Type] {
			return fmt.Errorf("card %q: op %d: unknown op %q", d.Name, i, op.Type)
		}
		if op.Amount < 0 {
			return fmt.Errorf("card %q: op %d: negative amount", d.Name, i)
		}
		if (op.Type == OpBuff || op.Type == OpDebuff) && op.Effect == "" {
			return fmt.Errorf("card %q: op %d: %s requires an effect", d.Name, i, op.Type)
		}
	}
	return nil
}

// BaseCost returns the parsed, unmodified cost.
func (d *Definition) BaseCost() resources.Cost {
	return d.cost
}

// Damaging reports whether the card deals damage to the opponent.
func (d *Definition) Damaging() bool {
	return d.Damage > 0
}

// HasOp reports whether the definition contains an op of the given type.
func (d *Definition) HasOp(t OpType) bool {
	for _, op := range d.Ops {
		if op.Type == t {
			return true
		}
	}
	return false
}
