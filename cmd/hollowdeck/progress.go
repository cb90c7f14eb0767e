package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magefree/hollowdeck/internal/campaign"
)

var (
	progressSlot  int
	progressReset bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset a save slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		slot := cfg.Save.Slot
		if progressSlot > 0 {
			slot = progressSlot
		}

		lm, err := loadLevels()
		if err != nil {
			return err
		}
		saves, err := openSaves()
		if err != nil {
			return err
		}

		if progressReset {
			if _, err := saves.Reset(slot, lm.Enemies()); err != nil {
				return err
			}
			fmt.Printf("Slot %d reset.\n", slot)
		}

		camp, err := loadCampaign(lm, saves, slot)
		if err != nil {
			return err
		}
		fmt.Printf("Slot %d (%s)\n", slot, saves.Path(slot))
		for _, s := range camp.Snapshot() {
			reward := ""
			switch {
			case s.Reward == "":
			case s.RewardCollected:
				reward = "reward: " + s.Reward
			case s.State == campaign.StageDefeated:
				reward = "reward uncollected: " + s.Reward
			}
			fmt.Printf("  %-16s %-9s %s\n", s.Enemy, s.State, reward)
		}
		if camp.Complete() {
			fmt.Println("Campaign complete.")
		}

		deck := camp.Deck()
		total := 0
		for _, e := range deck {
			total += max(e.Count, 1)
		}
		fmt.Printf("Deck: %d cards\n", total)

		history, err := openStats(ctx)
		if err != nil {
			return err
		}
		defer history.Close()
		summary, err := history.Summary(ctx)
		if err != nil {
			return err
		}
		if len(summary) > 0 {
			fmt.Println("History:")
		}
		for _, s := range summary {
			fmt.Printf("  %-16s played %-3d won %-3d (%.0f%%) avg rounds %.1f\n",
				s.Level, s.Played, s.HumanWins, 100*s.WinRate(), s.AvgRounds)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().IntVarP(&progressSlot, "slot", "s", 0, "save slot (default from config)")
	progressCmd.Flags().BoolVar(&progressReset, "reset", false, "reset the slot to a fresh campaign")
}
