package game

import (
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Result is the outcome of a finished match. Winner is empty when both
// players fell on the same play.
type Result struct {
	Winner string
	Loser  string
	Round  int
	Reason string
}

// GameOverManager ends the match once a player's health drops below 1.
type GameOverManager struct {
	turns     *rules.TurnManager
	bus       *rules.EventBus
	logger    *zap.Logger
	result    *Result
	callbacks []func(Result)
}

// NewGameOverManager creates a manager that freezes turns on game over.
func NewGameOverManager(turns *rules.TurnManager, bus *rules.EventBus, logger *zap.Logger) *GameOverManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameOverManager{turns: turns, bus: bus, logger: logger}
}

// OnGameOver registers a callback fired once when the match ends.
func (g *GameOverManager) OnGameOver(fn func(Result)) {
	if fn != nil {
		g.callbacks = append(g.callbacks, fn)
	}
}

// Over reports whether the match has ended.
func (g *GameOverManager) Over() bool {
	return g.result != nil
}

// Result returns the outcome once the match is over.
func (g *GameOverManager) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

// Check ends the match if either player is out of health. It returns true
// when the match is over.
func (g *GameOverManager) Check(a, b *players.Player) bool {
	if g.result != nil {
		return true
	}
	aAlive, bAlive := a.Alive(), b.Alive()
	switch {
	case aAlive && bAlive:
		return false
	case !aAlive && !bAlive:
		g.finish(Result{Reason: "both players fell"})
	case !aAlive:
		g.finish(Result{Winner: b.ID, Loser: a.ID, Reason: a.Name + " fell"})
	default:
		g.finish(Result{Winner: a.ID, Loser: b.ID, Reason: b.Name + " fell"})
	}
	return true
}

// Concede ends the match in favour of winner.
func (g *GameOverManager) Concede(winner, loser *players.Player) {
	if g.result != nil {
		return
	}
	g.finish(Result{Winner: winner.ID, Loser: loser.ID, Reason: loser.Name + " conceded"})
}

func (g *GameOverManager) finish(res Result) {
	res.Round = g.turns.Round()
	g.result = &res
	g.turns.Freeze()

	evt := rules.NewEvent(rules.EventGameOver, res.Winner, "", res.Winner)
	evt.Round = res.Round
	evt.Description = res.Reason
	evt.Metadata["loser"] = res.Loser
	g.bus.Publish(evt)

	g.logger.Info("game over",
		zap.String("winner", res.Winner),
		zap.String("loser", res.Loser),
		zap.Int("round", res.Round),
		zap.String("reason", res.Reason))

	for _, fn := range g.callbacks {
		fn(res)
	}
}
