package game

import (
	"errors"
	"fmt"

	"github.com/magefree/hollowdeck/internal/game/rules"
)

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game over")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrUnaffordable   = errors.New("card cost cannot be paid")
	ErrIllegalPlay    = errors.New("illegal play")
	ErrSwitchingTurns = errors.New("turn switch in progress")
	ErrUnknownPlayer  = errors.New("unknown player")
)

// playError maps a rejected legality check onto a sentinel error.
func playError(res rules.LegalityResult) error {
	var base error
	switch res.Violation {
	case rules.ViolationFrozen, rules.ViolationPlayerLost:
		base = ErrGameOver
	case rules.ViolationNotYourTurn:
		base = ErrNotYourTurn
	case rules.ViolationSwitching:
		base = ErrSwitchingTurns
	case rules.ViolationNotInHand:
		base = ErrCardNotInHand
	case rules.ViolationUnaffordable:
		base = ErrUnaffordable
	default:
		base = ErrIllegalPlay
	}
	return fmt.Errorf("%w: %s", base, res.String())
}

// turnError maps turn manager errors onto the package sentinels.
func turnError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rules.ErrTurnFrozen):
		return fmt.Errorf("%w: %v", ErrGameOver, err)
	case errors.Is(err, rules.ErrNotCurrentPlayer):
		return fmt.Errorf("%w: %v", ErrNotYourTurn, err)
	case errors.Is(err, rules.ErrAlreadySwitching):
		return fmt.Errorf("%w: %v", ErrSwitchingTurns, err)
	default:
		return err
	}
}
