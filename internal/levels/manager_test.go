package levels_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/rules"
	"github.com/magefree/hollowdeck/internal/levels"
)

const testCards = `
cards:
  - name: Jab
    kind: attack
    cost: "{1S}"
    damage: 2
  - name: Ward
    kind: magic
    cost: "{1F}"
    ops:
      - { op: buff, effect: guard, duration: 1 }
  - name: Potion
    kind: item
    ops:
      - { op: heal, amount: 5 }
`

const testLevels = `
player:
  name: Tester
  stats: { health: 50, stamina: 6 }
  starter_deck:
    - { card: Jab, count: 4 }
levels:
  - enemy: Rat King
    ruleset: classic
    stats: { health: 20, stamina: 4 }
    deck:
      - { card: Jab, count: 5 }
    reward: Ward
  - enemy: Sewer Hag
    ruleset: regions
    stats: { health: 30, stamina: 5 }
    deck:
      - { card: Jab, count: 3 }
      - { card: Potion }
    rules:
      - { when: "card.damage > 0", score: "card.damage" }
`

func parse(t *testing.T, cardsYAML, levelsYAML string) (*levels.Manager, error) {
	t.Helper()
	return levels.Parse(strings.NewReader(cardsYAML), strings.NewReader(levelsYAML))
}

func TestParseAndLookup(t *testing.T) {
	m, err := parse(t, testCards, testLevels)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rat King", "Sewer Hag"}, m.Enemies())
	assert.Equal(t, 3, m.Catalog().Len())

	l, err := m.Lookup("sewer hag")
	require.NoError(t, err)
	assert.Equal(t, rules.RulesetRegions, l.Ruleset)
	assert.Equal(t, 4, l.DeckSize())

	idx, err := m.Index("Sewer Hag")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestLookupUnknownEnemy(t *testing.T) {
	m, err := parse(t, testCards, testLevels)
	require.NoError(t, err)

	_, err = m.Lookup("Dragon")
	assert.ErrorIs(t, err, levels.ErrUnknownEnemy)

	_, err = m.Index("Dragon")
	assert.ErrorIs(t, err, levels.ErrUnknownEnemy)

	_, err = m.MatchSetup("Dragon", nil)
	assert.ErrorIs(t, err, levels.ErrUnknownEnemy)
}

func TestValidateUnknownCard(t *testing.T) {
	bad := strings.Replace(testLevels, "{ card: Jab, count: 5 }", "{ card: Haymaker, count: 5 }", 1)
	_, err := parse(t, testCards, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, cards.ErrUnknownCard)
	assert.Contains(t, err.Error(), "Haymaker")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	bad := strings.NewReplacer(
		"reward: Ward", "reward: Crown",
		"ruleset: regions", "ruleset: chaos",
		`score: "card.damage"`, `score: "card.damage +"`,
	).Replace(testLevels)

	_, err := parse(t, testCards, bad)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "Crown")
	assert.Contains(t, msg, "chaos")
	assert.Contains(t, msg, "Sewer Hag: rules")
}

func TestValidateEffectPolarity(t *testing.T) {
	wrong := strings.Replace(testCards, "{ op: buff, effect: guard, duration: 1 }", "{ op: buff, effect: poison, duration: 1 }", 1)
	_, err := parse(t, wrong, testLevels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poison is a debuff")

	unknown := strings.Replace(testCards, "effect: guard", "effect: levitation", 1)
	_, err = parse(t, unknown, testLevels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "levitation")
}

func TestValidateDuplicateEnemy(t *testing.T) {
	dup := strings.Replace(testLevels, "enemy: Sewer Hag", "enemy: rat king", 1)
	_, err := parse(t, testCards, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate enemy")
}

func TestMatchSetup(t *testing.T) {
	m, err := parse(t, testCards, testLevels)
	require.NoError(t, err)

	setup, err := m.MatchSetup("Sewer Hag", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sewer Hag", setup.Level)
	assert.Equal(t, rules.RulesetRegions, setup.Ruleset)
	assert.Same(t, m.Catalog(), setup.Catalog)

	assert.Equal(t, levels.PlayerID, setup.Player.ID)
	assert.Equal(t, "Tester", setup.Player.Name)
	assert.Equal(t, players.KindHuman, setup.Player.Kind)
	assert.Equal(t, m.Player().StarterDeck, setup.Player.Deck)

	assert.Equal(t, levels.EnemyID, setup.Enemy.ID)
	assert.Equal(t, players.KindNpc, setup.Enemy.Kind)
	assert.Equal(t, 30, setup.Enemy.Stats.Health)
	assert.Len(t, setup.Enemy.Rules, 1)

	custom := []cards.DeckEntry{{Card: "Potion", Count: 3}}
	setup, err = m.MatchSetup("Rat King", custom)
	require.NoError(t, err)
	assert.Equal(t, custom, setup.Player.Deck)
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	m, err := levels.Load(nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotEmpty(t, m.Levels())
	assert.NotEmpty(t, m.Player().StarterDeck)

	first := m.Levels()[0]
	_, err = m.Lookup(first.Enemy)
	require.NoError(t, err)
}

func TestLoadPrefersDirectory(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, levels.CardsFile), []byte(testCards), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, levels.LevelsFile), []byte(testLevels), 0o644))

	m, err := levels.Load([]string{empty, dir}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rat King", "Sewer Hag"}, m.Enemies())
}

func TestLoadRejectsBrokenDirectoryContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, levels.LevelsFile), []byte("levels: [oops"), 0o644))

	_, err := levels.Load([]string{dir}, zap.NewNop())
	assert.Error(t, err)
}
