package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/counters"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

func (m *Match) runOps(p *players.Player, card *cards.Card) {
	for i, op := range card.Def.Ops {
		if err := m.applyOp(p, card, op); err != nil {
			m.logger.Warn("card op skipped",
				zap.String("card", card.Name()),
				zap.Int("op", i),
				zap.Error(err))
		}
	}
}

func (m *Match) applyOp(p *players.Player, card *cards.Card, op cards.Op) error {
	opp := p.Opponent
	switch op.Type {
	case cards.OpHeal:
		m.publishAmount(rules.EventHealed, p, card, p.Health.Add(op.Amount), "")
	case cards.OpSelfDamage:
		m.publishAmount(rules.EventLifeLost, p, card, p.Health.Remove(op.Amount), "")
	case cards.OpRestoreStamina:
		m.publishAmount(rules.EventResourceGained, p, card, p.Stamina.Add(op.Amount), string(resources.Stamina))
	case cards.OpRestoreFocus:
		m.publishAmount(rules.EventResourceGained, p, card, p.Focus.Add(op.Amount), string(resources.Focus))
	case cards.OpBuff, cards.OpDebuff:
		target := p
		if op.Type == cards.OpDebuff {
			target = opp
		}
		b := effects.New(effects.Kind(op.Effect)).For(op.Duration).From(card.ID)
		if op.Amount > 0 {
			b.Magnitude(op.Amount)
		}
		buff, err := b.Build()
		if err != nil {
			return err
		}
		target.Effects.Replace(buff)
	case cards.OpDraw:
		p.Draw(op.Amount, m.played, m.rng)
	case cards.OpCombo:
		m.passCombo(p, op.Amount)
	case cards.OpCleanse:
		p.Effects.Cleanse()
	case cards.OpShrinkMaxHealth:
		m.publishAmount(rules.EventMaxHealthShrunk, opp, card, opp.Health.ShrinkMax(op.Amount), "")
	default:
		return fmt.Errorf("unknown op %q", op.Type)
	}
	return nil
}

func (m *Match) publishAmount(t rules.EventType, target *players.Player, card *cards.Card, amount int, data string) {
	evt := rules.NewEventWithAmount(t, target.ID, card.ID, card.Owner, amount)
	evt.PlayerID = target.ID
	evt.Data = data
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
}

// passCombo hands p's pending combo plus amount to the opponent.
func (m *Match) passCombo(p *players.Player, amount int) {
	pending := m.counterOps.Take(p.Counters, p.ID, counters.CounterTypeCombo)
	m.counterOps.Add(p.Opponent.Counters, p.Opponent.ID, counters.CounterTypeCombo, pending+amount)
}

// resolvePendingCombo makes p draw its pending combo. Unless forced, a
// player holding a playable combo card keeps the combo to pass it on.
func (m *Match) resolvePendingCombo(p *players.Player, forced bool) int {
	if p.Counters.Count(counters.CounterTypeCombo) == 0 {
		return 0
	}
	if !forced && m.hasPlayableCombo(p) {
		return 0
	}
	pending := m.counterOps.Take(p.Counters, p.ID, counters.CounterTypeCombo)
	drawn := p.Draw(pending, m.played, m.rng)

	evt := rules.NewEventWithAmount(rules.EventComboResolved, p.ID, "", p.ID, drawn)
	evt.Flag = forced
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
	return drawn
}

func (m *Match) hasPlayableCombo(p *players.Player) bool {
	for _, c := range m.Playable(p.ID) {
		if c.Def.HasOp(cards.OpCombo) {
			return true
		}
	}
	return false
}
