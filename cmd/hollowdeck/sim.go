package main

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/levels"
)

const (
	simStep      = 50 * time.Millisecond
	simMaxFrames = 200000
)

var (
	simEnemy   string
	simCount   int
	simSeed    uint64
	simRecord  bool
	simReplays bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless NPC versus NPC battles",
	Long: `Plays the starter deck, driven by the default NPC rules, against an enemy
without a window. Results are recorded in the match history unless
--record=false is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if simCount < 1 {
			return fmt.Errorf("count must be at least 1")
		}
		lm, err := loadLevels()
		if err != nil {
			return err
		}
		enemy := simEnemy
		if enemy == "" {
			enemy = lm.Enemies()[0]
		}
		if _, err := lm.Lookup(enemy); err != nil {
			return err
		}

		history, err := openStats(ctx)
		if err != nil {
			return err
		}
		defer history.Close()

		var (
			wins, finished, rounds int
			start                  = time.Now()
		)
		bar := progressbar.Default(int64(simCount), "Simulating "+enemy)
		for i := 0; i < simCount; i++ {
			seed := simSeed
			if seed != 0 {
				seed += uint64(i)
			}
			summary, err := simulate(lm, enemy, seed)
			if err != nil {
				return err
			}
			if summary.Finished {
				finished++
				rounds += summary.Rounds
				if summary.Winner == levels.PlayerID {
					wins++
				}
			}
			if simRecord {
				if err := history.RecordMatch(ctx, matchRecord(summary)); err != nil {
					logger.Error("failed to record match", zap.String("match_id", summary.MatchID), zap.Error(err))
				}
			}
			_ = bar.Add(1)
		}

		fmt.Printf("\n%d battles against %s in %s\n", simCount, enemy, time.Since(start).Round(time.Millisecond))
		fmt.Printf("Player wins: %d (%.0f%%)\n", wins, 100*float64(wins)/float64(simCount))
		if finished > 0 {
			fmt.Printf("Average rounds: %.1f\n", float64(rounds)/float64(finished))
		}
		if finished < simCount {
			fmt.Printf("Unfinished: %d\n", simCount-finished)
		}
		return nil
	},
}

// simulate plays one battle with both seats driven by NPC controllers.
func simulate(lm *levels.Manager, enemy string, seed uint64) (game.Summary, error) {
	setup, err := lm.MatchSetup(enemy, nil)
	if err != nil {
		return game.Summary{}, err
	}
	setup.Player.Kind = players.KindNpc
	setup.Seed = seed
	setup.Timing = game.Timing{CardMotion: simStep, ThinkDelay: simStep}
	setup.Presenter = game.NewNullPresenter(logger).Presenter()
	if simReplays {
		setup.ReplayDir = cfg.Replay.Dir
	}
	setup.Logger = logger

	m, err := game.NewMatch(setup)
	if err != nil {
		return game.Summary{}, err
	}
	for frame := 0; frame < simMaxFrames && !m.Over(); frame++ {
		m.Update(simStep)
	}
	if !m.Over() {
		logger.Warn("simulation hit the frame limit", zap.String("match_id", m.ID()))
	}
	return m.Summary(), nil
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVarP(&simEnemy, "enemy", "e", "", "enemy to fight (default: first level)")
	simCmd.Flags().IntVarP(&simCount, "count", "n", 10, "number of battles")
	simCmd.Flags().Uint64Var(&simSeed, "seed", 0, "base seed; battle i uses seed+i (0 = random)")
	simCmd.Flags().BoolVar(&simRecord, "record", true, "record results in the match history")
	simCmd.Flags().BoolVar(&simReplays, "replays", false, "save a replay of every battle")
}
