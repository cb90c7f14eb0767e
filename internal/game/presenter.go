package game

import (
	"image/color"

	"go.uber.org/zap"
)

// Renderer draws primitives for the current frame.
type Renderer interface {
	DrawText(text string, x, y int, clr color.Color)
	DrawImage(name string, x, y, w, h int)
	DrawRectangle(x, y, w, h int, clr color.Color)
}

// Audio plays named sound cues.
type Audio interface {
	PlaySound(name string)
}

// MouseButton names a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
)

// Key names a keyboard key the match reacts to.
type Key string

const (
	KeyEndTurn Key = "space"
	KeyEscape  Key = "escape"
)

// Input reports this frame's input. Button and key queries report presses
// that started during the current frame.
type Input interface {
	GetMousePosition() (int, int)
	GetMouseButtonDown(button MouseButton) bool
	GetKeyDown(key Key) bool
}

// Presenter bundles the collaborators a match talks to. Any of them may be nil.
type Presenter struct {
	Renderer Renderer
	Audio    Audio
	Input    Input
}

// NullPresenter discards drawing, logs sound cues, and never reports input.
// Headless simulations and tests use it.
type NullPresenter struct {
	logger *zap.Logger
	sounds []string
}

// NewNullPresenter creates a presenter that only records cues.
func NewNullPresenter(logger *zap.Logger) *NullPresenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NullPresenter{logger: logger}
}

// Presenter returns the null presenter wired as a Presenter.
func (n *NullPresenter) Presenter() Presenter {
	return Presenter{Renderer: n, Audio: n, Input: n}
}

func (n *NullPresenter) DrawText(string, int, int, color.Color)        {}
func (n *NullPresenter) DrawImage(string, int, int, int, int)          {}
func (n *NullPresenter) DrawRectangle(int, int, int, int, color.Color) {}

// PlaySound records the cue, keeping the most recent 200.
func (n *NullPresenter) PlaySound(name string) {
	n.sounds = append(n.sounds, name)
	if len(n.sounds) > 200 {
		n.sounds = n.sounds[len(n.sounds)-200:]
	}
	n.logger.Debug("null presenter cue", zap.String("sound", name))
}

// Sounds returns the recorded cues in order.
func (n *NullPresenter) Sounds() []string {
	return append([]string(nil), n.sounds...)
}

func (n *NullPresenter) GetMousePosition() (int, int)        { return 0, 0 }
func (n *NullPresenter) GetMouseButtonDown(MouseButton) bool { return false }
func (n *NullPresenter) GetKeyDown(Key) bool                 { return false }
