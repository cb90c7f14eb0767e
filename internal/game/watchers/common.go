// Package watchers holds the match-wide tallies that feed the NPC planner
// and the end-of-match summary.
package watchers

import (
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Watcher keys.
const (
	KeyCardsPlayed = "cards_played"
	KeyDamage      = "damage"
	KeyCardsDrawn  = "cards_drawn"
)

// CardsPlayedWatcher tracks plays per player, for the match and the current
// round.
type CardsPlayedWatcher struct {
	total map[string]int
	round map[string][]string
}

// NewCardsPlayedWatcher returns an empty watcher.
func NewCardsPlayedWatcher() *CardsPlayedWatcher {
	return &CardsPlayedWatcher{
		total: make(map[string]int),
		round: make(map[string][]string),
	}
}

func (w *CardsPlayedWatcher) Key() string { return KeyCardsPlayed }

// Watch counts EventCardPlayed; the card name travels in Data.
func (w *CardsPlayedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlayed {
		return
	}
	who := event.PlayerID
	if who == "" {
		who = event.Controller
	}
	if who == "" {
		return
	}
	w.total[who]++
	w.round[who] = append(w.round[who], event.Data)
}

// EndRound forgets this round's plays. Totals are kept.
func (w *CardsPlayedWatcher) EndRound() {
	clear(w.round)
}

// Total returns the plays of playerID this match.
func (w *CardsPlayedWatcher) Total(playerID string) int {
	return w.total[playerID]
}

// RoundCount returns the plays of playerID this round.
func (w *CardsPlayedWatcher) RoundCount(playerID string) int {
	return len(w.round[playerID])
}

// RoundCards returns the names played this round, oldest first.
func (w *CardsPlayedWatcher) RoundCards(playerID string) []string {
	return append([]string(nil), w.round[playerID]...)
}

// LastPlayed returns the most recent card playerID played this round.
func (w *CardsPlayedWatcher) LastPlayed(playerID string) string {
	names := w.round[playerID]
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}

// DamageWatcher tracks damage dealt by each source player and damage negated
// by each target's buffs.
type DamageWatcher struct {
	dealt   map[string]int
	biggest map[string]int
	negated map[string]int
}

// NewDamageWatcher returns an empty watcher.
func NewDamageWatcher() *DamageWatcher {
	return &DamageWatcher{
		dealt:   make(map[string]int),
		biggest: make(map[string]int),
		negated: make(map[string]int),
	}
}

func (w *DamageWatcher) Key() string { return KeyDamage }

func (w *DamageWatcher) Watch(event rules.Event) {
	if event.Amount <= 0 {
		return
	}
	switch event.Type {
	case rules.EventDamageDealt:
		if src := event.Controller; src != "" {
			w.dealt[src] += event.Amount
			w.biggest[src] = max(w.biggest[src], event.Amount)
		}
	case rules.EventDamageNegated:
		if event.TargetID != "" {
			w.negated[event.TargetID] += event.Amount
		}
	}
}

// EndRound is a no-op; damage is tallied for the whole match.
func (w *DamageWatcher) EndRound() {}

func (w *DamageWatcher) Dealt(playerID string) int      { return w.dealt[playerID] }
func (w *DamageWatcher) Negated(playerID string) int    { return w.negated[playerID] }
func (w *DamageWatcher) BiggestHit(playerID string) int { return w.biggest[playerID] }

// CardsDrawnWatcher tracks draws per round and deck refills per match.
type CardsDrawnWatcher struct {
	drawn   map[string]int
	refills map[string]int
}

// NewCardsDrawnWatcher returns an empty watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{
		drawn:   make(map[string]int),
		refills: make(map[string]int),
	}
}

func (w *CardsDrawnWatcher) Key() string { return KeyCardsDrawn }

func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.PlayerID == "" {
		return
	}
	switch event.Type {
	case rules.EventCardDrawn:
		w.drawn[event.PlayerID]++
	case rules.EventDeckRefilled:
		w.refills[event.PlayerID]++
	}
}

func (w *CardsDrawnWatcher) EndRound() {
	clear(w.drawn)
}

// Drawn returns the cards playerID drew this round.
func (w *CardsDrawnWatcher) Drawn(playerID string) int { return w.drawn[playerID] }

// Refills returns how often playerID's deck was rebuilt this match.
func (w *CardsDrawnWatcher) Refills(playerID string) int { return w.refills[playerID] }
