package game

import (
	"image"

	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/players"
)

// HumanController turns input into plays for the human seat.
type HumanController struct {
	player *players.Player
	logger *zap.Logger
}

// NewHumanController creates a controller for p.
func NewHumanController(p *players.Player, logger *zap.Logger) *HumanController {
	return &HumanController{player: p, logger: logger}
}

// Update handles one frame of input. A click on a hand card plays it; the
// end turn key or button passes the turn.
func (h *HumanController) Update(m *Match, input Input) {
	if input == nil {
		return
	}
	if input.GetKeyDown(KeyEndTurn) {
		h.endTurn(m)
		return
	}
	if !input.GetMouseButtonDown(MouseLeft) {
		return
	}
	x, y := input.GetMousePosition()
	if image.Pt(x, y).In(endTurnButton) {
		h.endTurn(m)
		return
	}
	hand := h.player.Hand.Cards()
	idx := hitHand(x, y, len(hand))
	if idx < 0 {
		return
	}
	if err := m.PlayCard(h.player.ID, hand[idx].ID); err != nil {
		m.cue("denied")
		h.logger.Debug("play rejected", zap.String("card", hand[idx].Name()), zap.Error(err))
	}
}

func (h *HumanController) endTurn(m *Match) {
	if err := m.EndTurn(h.player.ID); err != nil {
		h.logger.Debug("end turn rejected", zap.Error(err))
	}
}
