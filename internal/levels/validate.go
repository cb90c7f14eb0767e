package levels

import (
	"errors"
	"fmt"

	"github.com/magefree/hollowdeck/internal/game/ai"
	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Validate checks every card reference, buff kind, ruleset, and NPC rule.
// All problems are reported together.
func (m *Manager) Validate() error {
	var errs []error

	for _, def := range m.catalog.Definitions() {
		errs = append(errs, validateOps(def)...)
	}

	if len(m.player.StarterDeck) == 0 {
		errs = append(errs, errors.New("player: empty starter deck"))
	}
	errs = append(errs, m.validateDeck("player starter deck", m.player.StarterDeck)...)
	errs = append(errs, validateStats("player", m.player.Stats.Health, m.player.Stats.Stamina)...)

	if len(m.levels) == 0 {
		errs = append(errs, errors.New("no levels configured"))
	}
	seen := make(map[string]bool)
	for i, l := range m.levels {
		if l == nil {
			errs = append(errs, fmt.Errorf("level %d: empty entry", i))
			continue
		}
		name := l.Enemy
		if name == "" {
			errs = append(errs, fmt.Errorf("level %d: missing enemy name", i))
			name = fmt.Sprintf("level %d", i)
		}
		if seen[key(l.Enemy)] {
			errs = append(errs, fmt.Errorf("%s: duplicate enemy", name))
		}
		seen[key(l.Enemy)] = true

		switch l.Ruleset {
		case "", rules.RulesetClassic, rules.RulesetRegions:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown ruleset %q", name, l.Ruleset))
		}
		if len(l.Deck) == 0 {
			errs = append(errs, fmt.Errorf("%s: empty deck", name))
		}
		errs = append(errs, m.validateDeck(name+" deck", l.Deck)...)
		errs = append(errs, validateStats(name, l.Stats.Health, l.Stats.Stamina)...)
		if l.Reward != "" && !m.catalog.Has(l.Reward) {
			errs = append(errs, fmt.Errorf("%s: reward: %w: %q", name, cards.ErrUnknownCard, l.Reward))
		}
		if len(l.Rules) > 0 {
			if _, err := ai.NewPlanner(l.Rules, nil); err != nil {
				errs = append(errs, fmt.Errorf("%s: rules: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) validateDeck(where string, deck []cards.DeckEntry) []error {
	var errs []error
	for _, e := range deck {
		if !m.catalog.Has(e.Card) {
			errs = append(errs, fmt.Errorf("%s: %w: %q", where, cards.ErrUnknownCard, e.Card))
		}
	}
	return errs
}

func validateStats(where string, health, stamina int) []error {
	var errs []error
	if health < 1 {
		errs = append(errs, fmt.Errorf("%s: health must be at least 1", where))
	}
	if stamina < 0 {
		errs = append(errs, fmt.Errorf("%s: negative stamina", where))
	}
	return errs
}

func validateOps(def *cards.Definition) []error {
	var errs []error
	for i, op := range def.Ops {
		if op.Type != cards.OpBuff && op.Type != cards.OpDebuff {
			continue
		}
		polarity, ok := effects.PolarityOf(effects.Kind(op.Effect))
		if !ok {
			errs = append(errs, fmt.Errorf("card %q: op %d: unknown effect %q", def.Name, i, op.Effect))
			continue
		}
		want := effects.PolarityBuff
		if op.Type == cards.OpDebuff {
			want = effects.PolarityDebuff
		}
		if polarity != want {
			errs = append(errs, fmt.Errorf("card %q: op %d: %s is a %s", def.Name, i, op.Effect, polarity))
		}
	}
	return errs
}
