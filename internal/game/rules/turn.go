package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrTurnFrozen is returned once the match has ended.
	ErrTurnFrozen = errors.New("turn progression frozen")
	// ErrNotCurrentPlayer is returned when someone other than the current player ends the turn.
	ErrNotCurrentPlayer = errors.New("not the current player")
	// ErrAlreadySwitching is returned when a switch is already pending.
	ErrAlreadySwitching = errors.New("turn switch already pending")
)

// Presentation cues fired when a turn switch completes.
const (
	CueHumanTurn = "turn_human"
	CueNpcTurn   = "turn_npc"
)

// TurnState is the state of the turn state machine.
type TurnState int

const (
	// TurnStateIdle means the current player is acting.
	TurnStateIdle TurnState = iota
	// TurnStateSwitching means an end of turn was requested and the swap waits on the barrier.
	TurnStateSwitching
)

func (s TurnState) String() string {
	switch s {
	case TurnStateIdle:
		return "IDLE"
	case TurnStateSwitching:
		return "SWITCHING_TURNS"
	default:
		return fmt.Sprintf("TURN_STATE_%d", int(s))
	}
}

// Seat identifies one side of a match.
type Seat struct {
	PlayerID string
	Human    bool
}

// Cue returns the presentation cue fired when this seat becomes current.
func (s Seat) Cue() string {
	if s.Human {
		return CueHumanTurn
	}
	return CueNpcTurn
}

// Coin is the random source used for the opening coin flip.
type Coin interface {
	Intn(n int) int
}

// SettledFunc reports whether the given player has no cards in motion.
type SettledFunc func(playerID string) bool

// TurnManager alternates the current player between two seats. Ending a turn
// only requests a switch; the swap happens on a later Update once the outgoing
// player is settled.
type TurnManager struct {
	current  Seat
	opposing Seat
	state    TurnState
	round    int
	frozen   bool
	settled  SettledFunc
	bus      *EventBus
}

// NewTurnManager seats both players and flips a coin for who starts. A nil
// coin always seats a first.
func NewTurnManager(a, b Seat, coin Coin, settled SettledFunc, bus *EventBus) *TurnManager {
	tm := &TurnManager{
		current:  a,
		opposing: b,
		round:    1,
		settled:  settled,
		bus:      bus,
	}
	if coin != nil && coin.Intn(2) == 1 {
		tm.current, tm.opposing = b, a
	}
	return tm
}

// Current returns the seat whose turn it is.
func (tm *TurnManager) Current() Seat {
	return tm.current
}

// Opposing returns the seat waiting for its turn.
func (tm *TurnManager) Opposing() Seat {
	return tm.opposing
}

// CurrentPlayer returns the ID of the player whose turn it is.
func (tm *TurnManager) CurrentPlayer() string {
	return tm.current.PlayerID
}

// OpposingPlayer returns the ID of the waiting player.
func (tm *TurnManager) OpposingPlayer() string {
	return tm.opposing.PlayerID
}

// State returns the current state.
func (tm *TurnManager) State() TurnState {
	return tm.state
}

// Switching reports whether a turn switch is pending.
func (tm *TurnManager) Switching() bool {
	return tm.state == TurnStateSwitching
}

// Round returns the current round number (1-based).
func (tm *TurnManager) Round() int {
	return tm.round
}

// Frozen reports whether progression has been stopped.
func (tm *TurnManager) Frozen() bool {
	return tm.frozen
}

// Freeze stops all further turn progression.
func (tm *TurnManager) Freeze() {
	tm.frozen = true
}

// IsCurrent reports whether playerID holds the turn.
func (tm *TurnManager) IsCurrent(playerID string) bool {
	return tm.current.PlayerID == playerID
}

// EndTurn requests a switch away from playerID.
func (tm *TurnManager) EndTurn(playerID string) error {
	if tm.frozen {
		return ErrTurnFrozen
	}
	if !tm.IsCurrent(playerID) {
		return fmt.Errorf("%w: %s", ErrNotCurrentPlayer, playerID)
	}
	if tm.state == TurnStateSwitching {
		return ErrAlreadySwitching
	}
	tm.state = TurnStateSwitching

	evt := NewEvent(EventTurnSwitchRequested, tm.opposing.PlayerID, playerID, playerID)
	evt.Round = tm.round
	tm.bus.Publish(evt)
	return nil
}

// Update polls the settle barrier and performs a pending swap. It returns true
// on the frame the swap happens.
func (tm *TurnManager) Update() bool {
	if tm.frozen || tm.state != TurnStateSwitching {
		return false
	}
	if tm.settled != nil && !tm.settled(tm.current.PlayerID) {
		return false
	}

	outgoing := tm.current
	tm.current, tm.opposing = tm.opposing, tm.current
	tm.round++
	tm.state = TurnStateIdle

	evt := NewEventWithFlag(EventTurnSwitched, tm.current.PlayerID, outgoing.PlayerID, tm.current.PlayerID, tm.current.Human)
	evt.Data = tm.current.Cue()
	evt.Round = tm.round
	evt.Description = fmt.Sprintf("round %d: %s to act", tm.round, tm.current.PlayerID)
	tm.bus.Publish(evt)
	return true
}
