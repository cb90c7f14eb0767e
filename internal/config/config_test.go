package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/hollowdeck/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hollowdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 350*time.Millisecond, cfg.Game.CardMotion)
	assert.Equal(t, 800*time.Millisecond, cfg.Game.ThinkDelay)
	assert.Equal(t, 60, cfg.Game.TPS)
	assert.Equal(t, []string{"content"}, cfg.Content.Dirs)
	assert.Equal(t, 1, cfg.Save.Slot)
	assert.Equal(t, "sqlite", cfg.Stats.Driver)
	assert.Equal(t, "saves/replays", cfg.ReplayDir())
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
game:
  card_motion: 100ms
  think_delay: 2s
  seed: 7
content:
  dirs: [mods, content]
save:
  dir: /tmp/hd
  slot: 3
stats:
  driver: none
replay:
  enabled: false
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.Game.CardMotion)
	assert.Equal(t, 2*time.Second, cfg.Game.ThinkDelay)
	assert.Equal(t, uint64(7), cfg.Game.Seed)
	assert.Equal(t, []string{"mods", "content"}, cfg.Content.Dirs)
	assert.Equal(t, 3, cfg.Save.Slot)
	assert.Equal(t, "none", cfg.Stats.Driver)
	assert.Empty(t, cfg.ReplayDir())
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\n")
	t.Setenv("HOLLOWDECK_LOGGING_LEVEL", "error")
	t.Setenv("HOLLOWDECK_SAVE_SLOT", "2")
	t.Setenv("HOLLOWDECK_GAME_THINK_DELAY", "1500ms")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Save.Slot)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.ThinkDelay)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: loud
save:
  slot: 0
stats:
  driver: postgres
window:
  width: 0
`)
	_, err := config.Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "logging.level")
	assert.Contains(t, msg, "save.slot")
	assert.Contains(t, msg, "stats.url")
	assert.Contains(t, msg, "window")
}
