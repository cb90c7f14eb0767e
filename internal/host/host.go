// Package host runs a match in an ebiten window.
package host

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game"
)

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TPS        int
	AssetDirs  []string
}

// Host adapts a match to ebiten.Game.
type Host struct {
	opts     Options
	renderer *screenRenderer
	audio    *cueLogger
	input    game.Input
	match    *game.Match
	onFinish func(game.Summary)
	reported bool
	logger   *zap.Logger
}

var _ ebiten.Game = (*Host)(nil)

// New creates a host. Call Presenter before building the match and Run
// afterwards.
func New(opts Options, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TPS < 1 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Width < 1 || opts.Height < 1 {
		opts.Width, opts.Height = game.ScreenWidth, game.ScreenHeight
	}
	return &Host{
		opts:     opts,
		renderer: newScreenRenderer(opts.AssetDirs, logger),
		audio:    &cueLogger{logger: logger},
		input:    ebitenInput{},
		logger:   logger,
	}
}

// Presenter returns the renderer, audio, and input the match should use.
func (h *Host) Presenter() game.Presenter {
	return game.Presenter{Renderer: h.renderer, Audio: h.audio, Input: h.input}
}

// OnFinish registers a callback run once when the match ends.
func (h *Host) OnFinish(fn func(game.Summary)) {
	h.onFinish = fn
}

// Run opens the window and blocks until it is closed. Escape concedes a
// running match and closes it.
func (h *Host) Run(m *game.Match) error {
	if m == nil {
		return errors.New("host: no match")
	}
	h.match = m

	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetFullscreen(h.opts.Fullscreen)
	ebiten.SetTPS(h.opts.TPS)

	h.logger.Info("window opened",
		zap.String("match_id", m.ID()),
		zap.String("level", m.Level()),
		zap.Int("tps", h.opts.TPS))
	return ebiten.RunGame(h)
}

// Update advances the match by one fixed tick.
func (h *Host) Update() error {
	if h.input.GetKeyDown(game.KeyEscape) {
		h.quit()
		return ebiten.Termination
	}
	h.match.Update(h.tick())
	if h.match.Over() {
		h.finish()
	}
	return nil
}

func (h *Host) tick() time.Duration {
	return time.Second / time.Duration(h.opts.TPS)
}

// quit concedes for the human seat if the match is still running, then
// reports the result.
func (h *Host) quit() {
	if id := h.match.HumanID(); id != "" && !h.match.Over() {
		if err := h.match.Concede(id); err != nil {
			h.logger.Warn("concede failed", zap.Error(err))
		}
	}
	h.finish()
}

func (h *Host) finish() {
	if h.reported {
		return
	}
	h.reported = true
	summary := h.match.Summary()
	h.logger.Info("match finished",
		zap.String("match_id", summary.MatchID),
		zap.String("winner", summary.WinnerName()),
		zap.Bool("finished", summary.Finished))
	if h.onFinish != nil {
		h.onFinish(summary)
	}
}

// Draw renders the match.
func (h *Host) Draw(screen *ebiten.Image) {
	h.renderer.screen = screen
	h.match.Draw(h.renderer)
	h.renderer.screen = nil
}

// Layout fixes the logical screen to the match layout.
func (h *Host) Layout(_, _ int) (int, int) {
	return game.ScreenWidth, game.ScreenHeight
}
