package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magefree/hollowdeck/internal/game"
)

var replayVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file|match-id>",
	Short: "Print the recorded rounds of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			path = game.ReplayPath(cfg.Replay.Dir, args[0])
		}
		r, err := game.OpenReplay(path)
		if err != nil {
			return err
		}

		fmt.Printf("Match %s against %s (seed %d), %d states\n", r.MatchID, r.Level, r.Seed, r.Len())
		for _, s := range r.Frames() {
			var seats []string
			for _, p := range s.Players {
				seats = append(seats, fmt.Sprintf("%s HP %d/%d ST %d hand %d",
					p.Name, p.Health.Current, p.Health.Max, p.Stamina.Current, len(p.Hand)))
			}
			marker := ""
			if s.Over {
				marker = " game over, winner " + s.Winner
			}
			fmt.Printf("  round %-3d %-8s %s%s\n", s.Round, s.Current, strings.Join(seats, " | "), marker)
		}
		if r.Last() == nil {
			return nil
		}
		fmt.Printf("Final checksum: %s\n", r.Final)
		if replayVerify {
			if err := r.Verify(); err != nil {
				return err
			}
			if err := game.ValidateSerializationRoundtrip(r.Last()); err != nil {
				return err
			}
			fmt.Println("Checksum and round trip verified.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&replayVerify, "verify", false, "recompute the final checksum and check a serialization round trip")
}
