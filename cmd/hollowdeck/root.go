package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/hollowdeck/internal/campaign"
	"github.com/magefree/hollowdeck/internal/config"
	"github.com/magefree/hollowdeck/internal/game"
	"github.com/magefree/hollowdeck/internal/levels"
	"github.com/magefree/hollowdeck/internal/save"
	"github.com/magefree/hollowdeck/internal/stats"
)

var version = "dev" // set via ldflags during build

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hollowdeck",
	Short:         "A turn-based card battler",
	Long:          `Hollowdeck pits your deck against a ladder of NPC opponents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = initLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("configuration loaded", zap.String("config", configPath), zap.String("version", version))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return playCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (default ./hollowdeck.yaml)")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func loadLevels() (*levels.Manager, error) {
	return levels.Load(cfg.Content.Dirs, logger)
}

func openSaves() (*save.FileStore, error) {
	return save.NewFileStore(cfg.Save.Dir, logger)
}

// loadCampaign restores the slot. A corrupt slot is logged and replaced by
// defaults on the next save.
func loadCampaign(lm *levels.Manager, store *save.FileStore, slot int) (*campaign.Campaign, error) {
	progress, err := store.Load(slot, lm.Enemies())
	if err != nil {
		if !errors.Is(err, save.ErrCorruptSave) {
			return nil, err
		}
		logger.Warn("save slot is corrupt, starting from defaults", zap.Int("slot", slot), zap.Error(err))
	}
	return campaign.New(lm, progress, logger), nil
}

func openStats(ctx context.Context) (stats.Store, error) {
	return stats.Open(ctx, stats.Config{
		Driver: cfg.Stats.Driver,
		Path:   cfg.Stats.Path,
		URL:    cfg.Stats.URL,
	}, logger)
}

func matchRecord(s game.Summary) stats.MatchRecord {
	rec := stats.MatchRecord{
		MatchID:    s.MatchID,
		Level:      s.Level,
		Ruleset:    s.Ruleset,
		Seed:       int64(s.Seed),
		Winner:     s.Winner,
		WinnerName: s.WinnerName(),
		HumanWon:   s.HumanWon(),
		Reason:     s.Reason,
		Rounds:     s.Rounds,
		Duration:   s.Duration,
		Checksum:   s.Checksum,
		PlayedAt:   time.Now(),
	}
	for _, p := range s.Players {
		rec.Players = append(rec.Players, stats.PlayerRecord{
			PlayerID:    p.ID,
			Name:        p.Name,
			Human:       p.Human,
			Health:      p.Health,
			DamageDealt: p.DamageDealt,
			Negated:     p.Negated,
			BiggestHit:  p.BiggestHit,
			CardsPlayed: p.CardsPlayed,
			Refills:     p.Refills,
		})
	}
	return rec
}

func timing() game.Timing {
	return game.Timing{CardMotion: cfg.Game.CardMotion, ThinkDelay: cfg.Game.ThinkDelay}
}
