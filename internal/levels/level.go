package levels

import (
	"github.com/magefree/hollowdeck/internal/game/ai"
	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Level is the static configuration of one encounter.
type Level struct {
	Enemy    string            `yaml:"enemy"`
	Title    string            `yaml:"title"`
	Backdrop string            `yaml:"backdrop"`
	Music    string            `yaml:"music"`
	Ruleset  rules.Ruleset     `yaml:"ruleset"`
	Stats    players.Stats     `yaml:"stats"`
	Deck     []cards.DeckEntry `yaml:"deck"`
	Reward   string            `yaml:"reward"`
	Rules    []ai.Rule         `yaml:"rules"`
}

// DeckSize returns the number of cards in the enemy deck.
func (l *Level) DeckSize() int {
	n := 0
	for _, e := range l.Deck {
		if e.Count < 1 {
			n++
			continue
		}
		n += e.Count
	}
	return n
}

// PlayerConfig is the human player's starting setup.
type PlayerConfig struct {
	Name        string            `yaml:"name"`
	Stats       players.Stats     `yaml:"stats"`
	StarterDeck []cards.DeckEntry `yaml:"starter_deck"`
}

type levelsFile struct {
	Player PlayerConfig `yaml:"player"`
	Levels []*Level     `yaml:"levels"`
}
