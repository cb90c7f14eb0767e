package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/ai"
	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/counters"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// NpcController plays an NPC seat: it waits out a think delay, asks the
// planner for a card, and ends the turn when nothing is worth playing.
type NpcController struct {
	player  *players.Player
	planner *ai.Planner
	think   *rules.Timer
	logger  *zap.Logger
}

// NewNpcController creates a controller for p.
func NewNpcController(p *players.Player, planner *ai.Planner, delay time.Duration, logger *zap.Logger) *NpcController {
	return &NpcController{
		player:  p,
		planner: planner,
		think:   rules.NewTimer(delay),
		logger:  logger.With(zap.String("npc", p.Name)),
	}
}

// Reset restarts the think delay.
func (c *NpcController) Reset() {
	c.think.Reset()
}

// Update takes at most one action per call.
func (c *NpcController) Update(m *Match, dt time.Duration) {
	c.think.Update(dt)
	if !c.think.Expired() || c.player.CardsInMotion(m.played) > 0 {
		return
	}
	c.think.Reset()

	playable := m.Playable(c.player.ID)
	candidates := make([]ai.CardView, 0, len(playable))
	for _, card := range playable {
		candidates = append(candidates, cardView(card))
	}

	choice, ok, err := c.planner.Choose(situation(m, c.player), candidates)
	if err != nil {
		c.logger.Error("npc rule evaluation failed", zap.Error(err))
	}
	if err != nil || !ok {
		if err := m.EndTurn(c.player.ID); err != nil {
			c.logger.Debug("npc end turn rejected", zap.Error(err))
		}
		return
	}
	if err := m.PlayCard(c.player.ID, choice.CardID); err != nil {
		c.logger.Warn("npc play rejected", zap.String("card_id", choice.CardID), zap.Error(err))
		if err := m.EndTurn(c.player.ID); err != nil {
			c.logger.Debug("npc end turn rejected", zap.Error(err))
		}
	}
}

func situation(m *Match, p *players.Player) ai.Situation {
	return ai.Situation{
		Self:     actorView(m, p),
		Opponent: actorView(m, p.Opponent),
		Round:    m.turns.Round(),
	}
}

func actorView(m *Match, p *players.Player) ai.ActorView {
	return ai.ActorView{
		Health:     p.Health.Current,
		MaxHealth:  p.Health.Max,
		Stamina:    p.Stamina.Current,
		Focus:      p.Focus.Current,
		HandSize:   p.Hand.Len(),
		DeckSize:   p.Deck.Len(),
		Combo:      p.Counters.Count(counters.CounterTypeCombo),
		Buffs:      kinds(p.Effects.Buffs()),
		Debuffs:    kinds(p.Effects.Debuffs()),
		PlayedThis: m.playedCount.RoundCount(p.ID),
	}
}

func kinds(bs []*effects.Buff) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, string(b.Kind))
	}
	return out
}

func cardView(card *cards.Card) ai.CardView {
	cost := card.Cost()
	view := ai.CardView{
		ID:       card.ID,
		Name:     card.Name(),
		Kind:     string(card.Def.Kind),
		Damage:   card.TotalDamage(),
		Stamina:  cost.Stamina,
		Focus:    cost.Focus,
		Region:   card.Def.Region,
		Negation: card.Debuff,
		Ops:      []string{},
		Effects:  []string{},
	}
	for _, op := range card.Def.Ops {
		view.Ops = append(view.Ops, string(op.Type))
		if op.Effect != "" {
			view.Effects = append(view.Effects, op.Effect)
		}
	}
	return view
}
