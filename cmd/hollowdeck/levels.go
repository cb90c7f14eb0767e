package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var levelsVerbose bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured enemies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lm, err := loadLevels()
		if err != nil {
			return err
		}
		for i, l := range lm.Levels() {
			reward := l.Reward
			if reward == "" {
				reward = "-"
			}
			fmt.Printf("%2d. %-16s %-8s HP %-3d deck %-2d reward %s\n",
				i+1, l.Enemy, l.Ruleset, l.Stats.Health, l.DeckSize(), reward)
			if !levelsVerbose {
				continue
			}
			if l.Title != "" {
				fmt.Printf("    %s\n", l.Title)
			}
			entries := make([]string, 0, len(l.Deck))
			for _, e := range l.Deck {
				entries = append(entries, fmt.Sprintf("%dx %s", max(e.Count, 1), e.Card))
			}
			fmt.Printf("    deck: %s\n", strings.Join(entries, ", "))
			if len(l.Rules) > 0 {
				fmt.Printf("    rules: %d\n", len(l.Rules))
			}
		}
		return nil
	},
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Describe every card in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lm, err := loadLevels()
		if err != nil {
			return err
		}
		for _, def := range lm.Catalog().Definitions() {
			cost := def.Cost
			if cost == "" {
				cost = "free"
			}
			fmt.Printf("%-16s %-7s %-10s dmg %d\n", def.Name, def.Kind, cost, def.Damage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
	levelsCmd.AddCommand(cardsCmd)

	levelsCmd.Flags().BoolVarP(&levelsVerbose, "verbose", "v", false, "show titles and decks")
}
