package game

import (
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// performEffect resolves a card that has just moved to the played pile. The
// steps run in a fixed order exactly once per play.
func (m *Match) performEffect(p *players.Player, card *cards.Card) {
	opp := p.Opponent
	round := m.turns.Round()

	m.cue(card.Def.Sound)

	// Negation is fixed before anything is paid or dealt.
	var evasion, guard bool
	if card.Def.Damaging() {
		p.Effects.ReconcileCard(card)
		evasion = opp.Effects.Has(effects.KindEvasion)
		guard = opp.Effects.Has(effects.KindGuard)
		card.SetDebuff(card.ComputeDebuff(evasion, guard))
	}

	cost := card.Cost()
	if !cost.IsFree() {
		if pay := resources.Pay(cost, p); pay.Success {
			evt := rules.NewEventWithAmount(rules.EventResourcePaid, p.ID, card.ID, p.ID, cost.Stamina+cost.Focus+cost.Health)
			evt.Data = cost.String()
			evt.Round = round
			m.bus.Publish(evt)
		} else {
			m.logger.Warn("card resolved without payment",
				zap.String("card", card.Name()),
				zap.String("reason", pay.Reason))
		}
	}

	if card.Def.Damaging() {
		total := card.TotalDamage()
		opp.Health.Remove(total)

		evt := rules.NewEventWithAmount(rules.EventDamageDealt, opp.ID, card.ID, p.ID, total)
		evt.Data = card.Name()
		evt.Round = round
		m.bus.Publish(evt)

		if card.Debuff > 0 {
			neg := rules.NewEventWithAmount(rules.EventDamageNegated, opp.ID, card.ID, p.ID, card.Debuff)
			neg.Flag = evasion
			neg.Round = round
			m.bus.Publish(neg)
		}
	}

	if evasion {
		opp.Effects.ConsumeCharge(effects.KindEvasion)
	}

	p.Effects.Reconcile()
	opp.Effects.Reconcile()

	m.runOps(p, card)

	done := rules.NewEvent(rules.EventCardResolved, card.ID, card.ID, p.ID)
	done.Data = card.Name()
	done.Round = round
	m.bus.Publish(done)
}
