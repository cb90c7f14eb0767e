package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/magefree/hollowdeck/internal/game"
)

// ebitenInput reports presses that started this tick.
type ebitenInput struct{}

func (ebitenInput) GetMousePosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) GetMouseButtonDown(button game.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButton(button))
}

func (ebitenInput) GetKeyDown(key game.Key) bool {
	k, ok := keyFor(key)
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(k)
}

func mouseButton(b game.MouseButton) ebiten.MouseButton {
	if b == game.MouseRight {
		return ebiten.MouseButtonRight
	}
	return ebiten.MouseButtonLeft
}

func keyFor(key game.Key) (ebiten.Key, bool) {
	switch key {
	case game.KeyEndTurn:
		return ebiten.KeySpace, true
	case game.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}
