package save_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/save"
)

var enemies = []string{"Training Dummy", "Bandit Captain", "Marsh Witch"}

func newStore(t *testing.T) *save.FileStore {
	t.Helper()
	s, err := save.NewFileStore(filepath.Join(t.TempDir(), "saves"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestLoadMissingSlotReturnsDefaults(t *testing.T) {
	s := newStore(t)

	p, err := s.Load(1, enemies)
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.True(t, p[0].Unlocked)
	assert.False(t, p[1].Unlocked)
	assert.False(t, p[2].Unlocked)
	assert.False(t, p[0].RewardCollected)
}

func TestLoadCorruptSlot(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(2), []byte("{not json"), 0o644))

	p, err := s.Load(2, enemies)
	assert.ErrorIs(t, err, save.ErrCorruptSave)
	assert.Equal(t, save.Defaults(enemies), p)
}

func TestSaveRoundTripAndFormat(t *testing.T) {
	s := newStore(t)
	want := save.Progress{
		{EnemyName: "Training Dummy", Unlocked: true, RewardCollected: true},
		{EnemyName: "Bandit Captain", Unlocked: true},
		{EnemyName: "Marsh Witch"},
	}
	require.NoError(t, s.Save(1, want))

	got, err := s.Load(1, enemies)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(s.Path(1))
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Training Dummy", raw[0]["EnemyName"])
	assert.Equal(t, true, raw[0]["RewardCollected"])

	leftovers, err := filepath.Glob(filepath.Join(s.Dir(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestLoadAlignsToCurrentLevels(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(1, save.Progress{
		{EnemyName: "bandit captain", Unlocked: true, RewardCollected: true},
		{EnemyName: "Removed Boss", Unlocked: true},
	}))

	p, err := s.Load(1, enemies)
	require.NoError(t, err)
	assert.Equal(t, save.Progress{
		{EnemyName: "Training Dummy", Unlocked: true},
		{EnemyName: "Bandit Captain", Unlocked: true, RewardCollected: true},
		{EnemyName: "Marsh Witch"},
	}, p)
}

func TestReset(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(3, save.Progress{{EnemyName: "Training Dummy", Unlocked: true, RewardCollected: true}}))

	p, err := s.Reset(3, enemies)
	require.NoError(t, err)
	assert.Equal(t, save.Defaults(enemies), p)

	loaded, err := s.Load(3, enemies)
	require.NoError(t, err)
	assert.Equal(t, save.Defaults(enemies), loaded)
}

func TestInvalidSlot(t *testing.T) {
	s := newStore(t)
	_, err := s.Load(0, enemies)
	assert.ErrorIs(t, err, save.ErrInvalidSlot)
	assert.ErrorIs(t, s.Save(-1, nil), save.ErrInvalidSlot)
}
