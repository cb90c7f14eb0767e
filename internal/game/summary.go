package game

import (
	"time"
)

// PlayerSummary is one player's line in a match summary.
type PlayerSummary struct {
	ID          string
	Name        string
	Human       bool
	Health      int
	DamageDealt int
	Negated     int
	BiggestHit  int
	CardsPlayed int
	Refills     int
}

// Summary describes a finished (or abandoned) match for history and output.
type Summary struct {
	MatchID  string
	Level    string
	Ruleset  string
	Seed     uint64
	Winner   string
	Reason   string
	Rounds   int
	Finished bool
	Duration time.Duration
	Checksum string
	Players  []PlayerSummary
}

// WinnerName returns the winner's display name, or "".
func (s Summary) WinnerName() string {
	for _, p := range s.Players {
		if p.ID == s.Winner {
			return p.Name
		}
	}
	return ""
}

// HumanWon reports whether a human seat won.
func (s Summary) HumanWon() bool {
	for _, p := range s.Players {
		if p.ID == s.Winner {
			return p.Human
		}
	}
	return false
}

// Summary collects the watcher totals and a checksum of the current state.
// Duration is simulated frame time, not wall time.
func (m *Match) Summary() Summary {
	s := Summary{
		MatchID:  m.id,
		Level:    m.level,
		Ruleset:  string(m.legality.Ruleset()),
		Seed:     m.seed,
		Rounds:   m.turns.Round(),
		Duration: m.elapsed,
	}
	if res, ok := m.gameOver.Result(); ok {
		s.Finished = true
		s.Winner = res.Winner
		s.Reason = res.Reason
		s.Rounds = res.Round
	}
	if sum, err := m.Snapshot().ComputeChecksum(); err == nil {
		s.Checksum = sum.Hash
	}
	for _, p := range m.seats {
		s.Players = append(s.Players, PlayerSummary{
			ID:          p.ID,
			Name:        p.Name,
			Human:       p.IsHuman(),
			Health:      p.Health.Current,
			DamageDealt: m.damage.Dealt(p.ID),
			Negated:     m.damage.Negated(p.ID),
			BiggestHit:  m.damage.BiggestHit(p.ID),
			CardsPlayed: m.playedCount.Total(p.ID),
			Refills:     m.drawn.Refills(p.ID),
		})
	}
	return s
}
