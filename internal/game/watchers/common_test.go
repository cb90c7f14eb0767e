package watchers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magefree/hollowdeck/internal/game/rules"
)

func played(playerID, name string) rules.Event {
	evt := rules.NewEvent(rules.EventCardPlayed, "card-"+name, "card-"+name, playerID)
	evt.Data = name
	return evt
}

func TestCardsPlayedWatcher(t *testing.T) {
	w := NewCardsPlayedWatcher()
	assert.Zero(t, w.Total("player1"))

	w.Watch(played("player1", "Slash"))
	w.Watch(played("player1", "Fireball"))
	w.Watch(played("player2", "Bite"))
	w.Watch(rules.NewEvent(rules.EventHealed, "player1", "x", "player1"))

	assert.Equal(t, 2, w.Total("player1"))
	assert.Equal(t, []string{"Slash", "Fireball"}, w.RoundCards("player1"))
	assert.Equal(t, "Bite", w.LastPlayed("player2"))

	w.EndRound()
	assert.Zero(t, w.RoundCount("player1"))
	assert.Empty(t, w.LastPlayed("player2"))
	assert.Equal(t, 2, w.Total("player1"), "totals survive the round")
}

func TestDamageWatcher(t *testing.T) {
	w := NewDamageWatcher()

	w.Watch(rules.NewEventWithAmount(rules.EventDamageDealt, "npc", "card1", "human", 10))
	w.Watch(rules.NewEventWithAmount(rules.EventDamageDealt, "npc", "card2", "human", 4))
	w.Watch(rules.NewEventWithAmount(rules.EventDamageDealt, "npc", "card3", "human", 0))
	w.Watch(rules.NewEventWithAmount(rules.EventDamageNegated, "npc", "card4", "human", 6))

	assert.Equal(t, 14, w.Dealt("human"))
	assert.Equal(t, 10, w.BiggestHit("human"))
	assert.Equal(t, 6, w.Negated("npc"))

	w.EndRound()
	assert.Equal(t, 14, w.Dealt("human"))
}

func TestCardsDrawnWatcher(t *testing.T) {
	w := NewCardsDrawnWatcher()

	w.Watch(rules.NewEvent(rules.EventCardDrawn, "card1", "deck", "player1"))
	w.Watch(rules.NewEvent(rules.EventCardDrawn, "card2", "deck", "player1"))
	w.Watch(rules.NewEvent(rules.EventDeckRefilled, "player1", "played", "player1"))

	assert.Equal(t, 2, w.Drawn("player1"))
	assert.Equal(t, 1, w.Refills("player1"))

	w.EndRound()
	assert.Zero(t, w.Drawn("player1"))
	assert.Equal(t, 1, w.Refills("player1"))
}

func TestWatchersShareASet(t *testing.T) {
	set := rules.NewWatcherSet()
	plays := NewCardsPlayedWatcher()
	set.Add(plays)
	set.Add(NewDamageWatcher())
	set.Add(NewCardsDrawnWatcher())

	assert.Equal(t, 3, set.Len())
	assert.Same(t, plays, set.Get(KeyCardsPlayed))
}
