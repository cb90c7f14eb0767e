package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/players"
)

var (
	colorText     = color.RGBA{R: 0xee, G: 0xe8, B: 0xd5, A: 0xff}
	colorCard     = color.RGBA{R: 0x2b, G: 0x2a, B: 0x33, A: 0xff}
	colorCardBack = color.RGBA{R: 0x4a, G: 0x1f, B: 0x2e, A: 0xff}
	colorPlayable = color.RGBA{R: 0x3c, G: 0x6e, B: 0x47, A: 0xff}
	colorButton   = color.RGBA{R: 0x5a, G: 0x4a, B: 0x2a, A: 0xff}
	colorOverlay  = color.RGBA{A: 0xc0}
)

// Draw renders the match: backdrop, both players, the top played card,
// the turn banner, and the game over overlay.
func (m *Match) Draw(r Renderer) {
	if r == nil {
		return
	}
	if m.backdrop != "" {
		r.DrawImage(m.backdrop, 0, 0, ScreenWidth, ScreenHeight)
	}

	bottom, top := m.seats[0], m.seats[1]
	if !bottom.IsHuman() && top.IsHuman() {
		bottom, top = top, bottom
	}

	m.drawStats(r, top, 24, enemyTop+cardHeight+12)
	m.drawStats(r, bottom, 24, handTop-96)

	for i := 0; i < top.Hand.Len(); i++ {
		drawRect(r, handSlot(i, top.Hand.Len(), enemyTop), colorCardBack)
	}

	playable := make(map[string]bool)
	for _, c := range m.Playable(bottom.ID) {
		playable[c.ID] = true
	}
	hand := bottom.Hand.Cards()
	for i, c := range hand {
		slot := handSlot(i, len(hand), handTop)
		if c.Moving() {
			// slide up into place while the card is in motion
			slot = slot.Add(image.Pt(0, int(float64(cardHeight)*(1-c.MotionProgress()))))
		}
		bg := colorCard
		if playable[c.ID] {
			bg = colorPlayable
		}
		drawCard(r, c, slot, bg)
	}

	if c, ok := m.played.Top(); ok {
		drawCard(r, c, playedSlot, colorCard)
	}
	r.DrawText(fmt.Sprintf("Played %d", m.played.Len()), playedSlot.Min.X, playedSlot.Max.Y+8, colorText)

	drawRect(r, endTurnButton, colorButton)
	r.DrawText("End turn", endTurnButton.Min.X+40, endTurnButton.Min.Y+24, colorText)

	r.DrawText(m.banner(), ScreenWidth/2-80, 8, colorText)

	if res, ok := m.gameOver.Result(); ok {
		r.DrawRectangle(0, 0, ScreenWidth, ScreenHeight, colorOverlay)
		r.DrawText(m.outcome(res), ScreenWidth/2-120, ScreenHeight/2, colorText)
	}
}

func (m *Match) drawStats(r Renderer, p *players.Player, x, y int) {
	r.DrawText(fmt.Sprintf("%s  HP %d/%d  ST %d/%d  FO %d/%d  deck %d",
		p.Name,
		p.Health.Current, p.Health.Max,
		p.Stamina.Current, p.Stamina.Max,
		p.Focus.Current, p.Focus.Max,
		p.Deck.Len()), x, y, colorText)
	for i, label := range p.Effects.Labels() {
		r.DrawText(label, x, y+18*(i+1), colorText)
	}
}

func (m *Match) banner() string {
	switch {
	case m.gameOver.Over():
		return "Game over"
	case m.turns.Switching():
		return "Switching turns..."
	case m.turns.Current().Human:
		return fmt.Sprintf("Round %d: your turn", m.turns.Round())
	default:
		return fmt.Sprintf("Round %d: %s's turn", m.turns.Round(), m.Current().Name)
	}
}

func (m *Match) outcome(res Result) string {
	if res.Winner == "" {
		return "Draw: " + res.Reason
	}
	return fmt.Sprintf("%s wins: %s", m.Player(res.Winner).Name, res.Reason)
}

func drawRect(r Renderer, rect image.Rectangle, clr color.Color) {
	r.DrawRectangle(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), clr)
}

func drawCard(r Renderer, c *cards.Card, slot image.Rectangle, bg color.Color) {
	drawRect(r, slot, bg)
	if c.Def.Image != "" {
		r.DrawImage(c.Def.Image, slot.Min.X+8, slot.Min.Y+24, slot.Dx()-16, 80)
	}
	r.DrawText(c.Name(), slot.Min.X+8, slot.Min.Y+6, colorText)
	for i, line := range c.Description {
		r.DrawText(line, slot.Min.X+8, slot.Min.Y+110+14*i, colorText)
	}
}
