// Package config loads hollowdeck settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. HOLLOWDECK_STATS_DRIVER.
const EnvPrefix = "HOLLOWDECK"

// Config is the complete application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Content ContentConfig `mapstructure:"content"`
	Save    SaveConfig    `mapstructure:"save"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	Window  WindowConfig  `mapstructure:"window"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig tunes match pacing.
type GameConfig struct {
	CardMotion time.Duration `mapstructure:"card_motion"`
	ThinkDelay time.Duration `mapstructure:"think_delay"`
	// Seed fixes the match RNG; 0 picks a fresh seed per match.
	Seed uint64 `mapstructure:"seed"`
	// TPS is the fixed update rate of the windowed host.
	TPS int `mapstructure:"tps"`
}

// ContentConfig lists directories searched for cards.yaml and levels.yaml.
type ContentConfig struct {
	Dirs []string `mapstructure:"dirs"`
}

// SaveConfig locates save slots.
type SaveConfig struct {
	Dir  string `mapstructure:"dir"`
	Slot int    `mapstructure:"slot"`
}

// StatsConfig selects the match history backend.
type StatsConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
}

// ReplayConfig controls replay recording.
type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// WindowConfig sizes the game window.
type WindowConfig struct {
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Fullscreen bool   `mapstructure:"fullscreen"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.card_motion", "350ms")
	v.SetDefault("game.think_delay", "800ms")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.tps", 60)

	v.SetDefault("content.dirs", []string{"content"})

	v.SetDefault("save.dir", "saves")
	v.SetDefault("save.slot", 1)

	v.SetDefault("stats.driver", "sqlite")
	v.SetDefault("stats.path", "saves/stats.db")
	v.SetDefault("stats.url", "")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.dir", "saves/replays")

	v.SetDefault("window.title", "Hollowdeck")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.fullscreen", false)
}

// Load reads configuration from path. An empty path searches for
// hollowdeck.yaml in the working directory and runs on defaults when none
// is found. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("hollowdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	if c.Game.CardMotion < 0 {
		errs = append(errs, errors.New("game.card_motion: must not be negative"))
	}
	if c.Game.ThinkDelay < 0 {
		errs = append(errs, errors.New("game.think_delay: must not be negative"))
	}
	if c.Game.TPS < 1 {
		errs = append(errs, errors.New("game.tps: must be at least 1"))
	}

	if c.Save.Dir == "" {
		errs = append(errs, errors.New("save.dir: required"))
	}
	if c.Save.Slot < 1 {
		errs = append(errs, errors.New("save.slot: must be at least 1"))
	}

	switch c.Stats.Driver {
	case "sqlite":
		if c.Stats.Path == "" {
			errs = append(errs, errors.New("stats.path: required for sqlite"))
		}
	case "postgres":
		if c.Stats.URL == "" {
			errs = append(errs, errors.New("stats.url: required for postgres"))
		}
	case "none":
	default:
		errs = append(errs, fmt.Errorf("stats.driver: unknown driver %q", c.Stats.Driver))
	}

	if c.Replay.Enabled && c.Replay.Dir == "" {
		errs = append(errs, errors.New("replay.dir: required when replays are enabled"))
	}

	if c.Window.Width < 1 || c.Window.Height < 1 {
		errs = append(errs, errors.New("window: width and height must be positive"))
	}

	return errors.Join(errs...)
}

// ReplayDir returns the replay directory, or "" when recording is disabled.
func (c *Config) ReplayDir() string {
	if !c.Replay.Enabled {
		return ""
	}
	return c.Replay.Dir
}
