package host

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

var placeholderColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}

// screenRenderer draws onto the frame's screen image. Images are loaded
// lazily from the asset directories and cached, including misses.
type screenRenderer struct {
	screen    *ebiten.Image
	assetDirs []string
	images    map[string]*ebiten.Image
	logger    *zap.Logger
}

func newScreenRenderer(assetDirs []string, logger *zap.Logger) *screenRenderer {
	return &screenRenderer{
		assetDirs: assetDirs,
		images:    make(map[string]*ebiten.Image),
		logger:    logger,
	}
}

// DrawText prints with the debug font; it has a single colour.
func (r *screenRenderer) DrawText(text string, x, y int, _ color.Color) {
	if r.screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(r.screen, text, x, y)
}

func (r *screenRenderer) DrawRectangle(x, y, w, h int, clr color.Color) {
	if r.screen == nil {
		return
	}
	vector.DrawFilledRect(r.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (r *screenRenderer) DrawImage(name string, x, y, w, h int) {
	if r.screen == nil || name == "" {
		return
	}
	img := r.image(name)
	if img == nil {
		vector.StrokeRect(r.screen, float32(x), float32(y), float32(w), float32(h), 1, placeholderColor, false)
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(bounds.Dx()), float64(h)/float64(bounds.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	r.screen.DrawImage(img, op)
}

func (r *screenRenderer) image(name string) *ebiten.Image {
	if img, ok := r.images[name]; ok {
		return img
	}
	var img *ebiten.Image
	for _, dir := range r.assetDirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		loaded, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			r.logger.Warn("failed to load image", zap.String("path", path), zap.Error(err))
			continue
		}
		img = loaded
		break
	}
	if img == nil {
		r.logger.Debug("image not found", zap.String("name", name))
	}
	r.images[name] = img
	return img
}
