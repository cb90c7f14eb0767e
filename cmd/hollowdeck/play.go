package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/campaign"
	"github.com/magefree/hollowdeck/internal/game"
	"github.com/magefree/hollowdeck/internal/host"
)

var (
	playEnemy string
	playSlot  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the next campaign battle in a window",
	Long: `Opens a window and starts a battle against the next unlocked enemy of
the save slot, or the enemy named with --enemy. Winning unlocks the next
enemy and adds its reward card to your deck.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		slot := cfg.Save.Slot
		if playSlot > 0 {
			slot = playSlot
		}

		lm, err := loadLevels()
		if err != nil {
			return err
		}
		saves, err := openSaves()
		if err != nil {
			return err
		}
		camp, err := loadCampaign(lm, saves, slot)
		if err != nil {
			return err
		}

		enemy := playEnemy
		if enemy == "" {
			next, ok := camp.Next()
			if !ok {
				next = lm.Enemies()[0]
				fmt.Println("Campaign complete. Replaying the first battle.")
			}
			enemy = next
		}
		if err := camp.CanFight(enemy); err != nil {
			return err
		}

		history, err := openStats(ctx)
		if err != nil {
			return err
		}
		defer history.Close()

		setup, err := lm.MatchSetup(enemy, camp.Deck())
		if err != nil {
			return err
		}
		win := host.New(host.Options{
			Title:      fmt.Sprintf("%s - %s", cfg.Window.Title, setup.Level),
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			Fullscreen: cfg.Window.Fullscreen,
			TPS:        cfg.Game.TPS,
			AssetDirs:  cfg.Content.Dirs,
		}, logger)

		setup.Seed = cfg.Game.Seed
		setup.Timing = timing()
		setup.Presenter = win.Presenter()
		setup.ReplayDir = cfg.ReplayDir()
		setup.Logger = logger

		m, err := game.NewMatch(setup)
		if err != nil {
			return err
		}
		win.OnFinish(func(s game.Summary) {
			if s.Finished {
				recordCampaign(camp, setup.Level, s.HumanWon())
				if err := saves.Save(slot, camp.Progress()); err != nil {
					logger.Error("failed to save progress", zap.Int("slot", slot), zap.Error(err))
				}
			}
			if err := history.RecordMatch(ctx, matchRecord(s)); err != nil {
				logger.Error("failed to record match", zap.String("match_id", s.MatchID), zap.Error(err))
			}
		})
		return win.Run(m)
	},
}

func recordCampaign(camp *campaign.Campaign, enemy string, won bool) {
	if err := camp.RecordResult(enemy, won); err != nil {
		logger.Error("failed to record result", zap.String("enemy", enemy), zap.Error(err))
		return
	}
	if !won {
		return
	}
	card, err := camp.CollectReward(enemy)
	switch {
	case err == nil:
		logger.Info("new card added to deck", zap.String("card", card))
	case errors.Is(err, campaign.ErrNoReward), errors.Is(err, campaign.ErrRewardCollected):
	default:
		logger.Error("failed to collect reward", zap.String("enemy", enemy), zap.Error(err))
	}
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playEnemy, "enemy", "e", "", "enemy to fight (default: next unlocked)")
	playCmd.Flags().IntVarP(&playSlot, "slot", "s", 0, "save slot (default from config)")
}
