package cards

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgDamage         = "Deals %d damage"
	msgDamageModified = "Deals %d damage (%+d)"
	msgNegated        = "Negated by %d"
	msgCostStamina    = "Costs %d stamina"
	msgCostFocus      = "Costs %d focus"
	msgCostHealth     = "Costs %d health"
	msgRequireHealth  = "Requires more than %d health"
	msgHeal           = "Restores %d health"
	msgSelfDamage     = "Lose %d health"
	msgStamina        = "Restores %d stamina"
	msgFocus          = "Restores %d focus"
	msgBuff           = "Gain %s %d"
	msgDebuff         = "Inflict %s %d"
	msgDraw           = "Draw %d cards"
	msgCombo          = "Combo: opponent draws %d"
	msgCleanse        = "Remove all debuffs"
	msgShrink         = "Reduce max health by %d"
	msgDuration       = "for %d rounds"
)

func init() {
	_ = message.Set(language.English, msgDraw,
		plural.Selectf(1, "%d",
			"=1", "Draw a card",
			"other", "Draw %d cards",
		))
	_ = message.Set(language.English, msgDuration,
		plural.Selectf(1, "%d",
			"=1", "for 1 round",
			"other", "for %d rounds",
		))
}

var printer = message.NewPrinter(language.English)

// Describe regenerates the description lines from the definition and the
// current modifiers.
func (c *Card) Describe() {
	p := printer
	def := c.Def
	lines := make([]string, 0, 4)

	if def.Damaging() {
		if c.Buff != 0 {
			lines = append(lines, p.Sprintf(msgDamageModified, c.Def.Damage+c.Buff, c.Buff))
		} else {
			lines = append(lines, p.Sprintf(msgDamage, def.Damage))
		}
		if c.Debuff > 0 {
			lines = append(lines, p.Sprintf(msgNegated, c.Debuff))
		}
	}

	cost := c.Cost()
	if cost.Stamina > 0 {
		lines = append(lines, p.Sprintf(msgCostStamina, cost.Stamina))
	}
	if cost.Focus > 0 {
		lines = append(lines, p.Sprintf(msgCostFocus, cost.Focus))
	}
	if cost.Health > 0 {
		lines = append(lines, p.Sprintf(msgCostHealth, cost.Health))
	}
	if def.RequireHealthAbove > 0 {
		lines = append(lines, p.Sprintf(msgRequireHealth, def.RequireHealthAbove))
	}

	for _, op := range def.Ops {
		if line := describeOp(p, op); line != "" {
			lines = append(lines, line)
		}
	}
	c.Description = lines
}

func describeOp(p *message.Printer, op Op) string {
	var line string
	switch op.Type {
	case OpHeal:
		line = p.Sprintf(msgHeal, op.Amount)
	case OpSelfDamage:
		line = p.Sprintf(msgSelfDamage, op.Amount)
	case OpRestoreStamina:
		line = p.Sprintf(msgStamina, op.Amount)
	case OpRestoreFocus:
		line = p.Sprintf(msgFocus, op.Amount)
	case OpBuff:
		line = p.Sprintf(msgBuff, op.Effect, op.Amount)
	case OpDebuff:
		line = p.Sprintf(msgDebuff, op.Effect, op.Amount)
	case OpDraw:
		line = p.Sprintf(msgDraw, op.Amount)
	case OpCombo:
		line = p.Sprintf(msgCombo, op.Amount)
	case OpCleanse:
		line = p.Sprintf(msgCleanse)
	case OpShrinkMaxHealth:
		line = p.Sprintf(msgShrink, op.Amount)
	}
	if op.Duration > 0 && (op.Type == OpBuff || op.Type == OpDebuff) {
		line += " " + p.Sprintf(msgDuration, op.Duration)
	}
	return line
}
