package levels

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/magefree/hollowdeck/internal/game"
	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/players"
)

// ErrUnknownEnemy is returned when a level lookup names no configured enemy.
var ErrUnknownEnemy = errors.New("unknown enemy")

// Content file names looked up in each content directory.
const (
	CardsFile  = "cards.yaml"
	LevelsFile = "levels.yaml"
)

// Seat IDs used for matches built from levels.
const (
	PlayerID = "player"
	EnemyID  = "enemy"
)

//go:embed content/*.yaml
var embedded embed.FS

// Manager holds the card catalog and every level. It is read-only after load.
type Manager struct {
	catalog *cards.Catalog
	player  PlayerConfig
	levels  []*Level
	byName  map[string]*Level
}

// Load reads the content files from the first directory in dirs that has
// them, falling back to the embedded defaults, and validates the result.
func Load(dirs []string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cardsData, cardsSrc, err := readContent(dirs, CardsFile)
	if err != nil {
		return nil, err
	}
	levelsData, levelsSrc, err := readContent(dirs, LevelsFile)
	if err != nil {
		return nil, err
	}
	m, err := Parse(bytes.NewReader(cardsData), bytes.NewReader(levelsData))
	if err != nil {
		return nil, err
	}
	logger.Info("content loaded",
		zap.String("cards", cardsSrc),
		zap.String("levels", levelsSrc),
		zap.Int("card_count", m.catalog.Len()),
		zap.Int("level_count", len(m.levels)))
	return m, nil
}

// Parse decodes and validates a card catalog and a levels file.
func Parse(cardsYAML, levelsYAML io.Reader) (*Manager, error) {
	catalog, err := cards.DecodeCatalog(cardsYAML)
	if err != nil {
		return nil, err
	}

	var file levelsFile
	dec := yaml.NewDecoder(levelsYAML)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode levels: %w", err)
	}

	m := &Manager{
		catalog: catalog,
		player:  file.Player,
		levels:  file.Levels,
		byName:  make(map[string]*Level, len(file.Levels)),
	}
	for _, l := range m.levels {
		if l == nil {
			continue
		}
		l.Enemy = strings.TrimSpace(l.Enemy)
		if _, dup := m.byName[key(l.Enemy)]; !dup {
			m.byName[key(l.Enemy)] = l
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func readContent(dirs []string, name string) ([]byte, string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	data, err := embedded.ReadFile("content/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("could not find %s in any content directory: %w", name, err)
	}
	return data, "embedded:" + name, nil
}

func key(enemy string) string {
	return strings.ToLower(strings.TrimSpace(enemy))
}

// Catalog returns the card catalog.
func (m *Manager) Catalog() *cards.Catalog {
	return m.catalog
}

// Player returns the human player's configuration.
func (m *Manager) Player() PlayerConfig {
	return m.player
}

// Levels returns the levels in campaign order.
func (m *Manager) Levels() []*Level {
	return append([]*Level(nil), m.levels...)
}

// Enemies returns the enemy names in campaign order.
func (m *Manager) Enemies() []string {
	out := make([]string, 0, len(m.levels))
	for _, l := range m.levels {
		out = append(out, l.Enemy)
	}
	return out
}

// Lookup returns the level for enemy. Matching ignores case.
func (m *Manager) Lookup(enemy string) (*Level, error) {
	l, ok := m.byName[key(enemy)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, enemy)
	}
	return l, nil
}

// Index returns the campaign position of enemy.
func (m *Manager) Index(enemy string) (int, error) {
	for i, l := range m.levels {
		if key(l.Enemy) == key(enemy) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownEnemy, enemy)
}

// MatchSetup builds the setup for a battle against enemy. An empty deck uses
// the starter deck. The caller supplies seed, timing, presenter and logger.
func (m *Manager) MatchSetup(enemy string, deck []cards.DeckEntry) (game.Setup, error) {
	l, err := m.Lookup(enemy)
	if err != nil {
		return game.Setup{}, err
	}
	if len(deck) == 0 {
		deck = m.player.StarterDeck
	}
	name := m.player.Name
	if name == "" {
		name = "Player"
	}
	return game.Setup{
		Level:    l.Enemy,
		Backdrop: l.Backdrop,
		Music:    l.Music,
		Ruleset:  l.Ruleset,
		Catalog:  m.catalog,
		Player: game.SeatSetup{
			ID:    PlayerID,
			Name:  name,
			Kind:  players.KindHuman,
			Stats: m.player.Stats,
			Deck:  deck,
		},
		Enemy: game.SeatSetup{
			ID:    EnemyID,
			Name:  l.Enemy,
			Kind:  players.KindNpc,
			Stats: l.Stats,
			Deck:  l.Deck,
			Rules: l.Rules,
		},
	}, nil
}
