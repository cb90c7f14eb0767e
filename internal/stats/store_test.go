package stats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/stats"
)

func record(id, level string, humanWon bool, rounds int, at time.Time) stats.MatchRecord {
	winner, name := "enemy", level
	if humanWon {
		winner, name = "player", "Wanderer"
	}
	return stats.MatchRecord{
		MatchID:    id,
		Level:      level,
		Ruleset:    "classic",
		Seed:       42,
		Winner:     winner,
		WinnerName: name,
		HumanWon:   humanWon,
		Reason:     "health",
		Rounds:     rounds,
		Duration:   90 * time.Second,
		Checksum:   "abc123",
		PlayedAt:   at,
		Players: []stats.PlayerRecord{
			{PlayerID: "enemy", Name: level, Health: 0, DamageDealt: 30, CardsPlayed: 9},
			{PlayerID: "player", Name: "Wanderer", Human: true, Health: 12, DamageDealt: 40, BiggestHit: 10, CardsPlayed: 11, Refills: 1},
		},
	}
}

func openSQLite(t *testing.T) *stats.SQLiteStore {
	t.Helper()
	s, err := stats.OpenSQLite(filepath.Join(t.TempDir(), "history", "stats.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteRecordAndList(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordMatch(ctx, record("m1", "Training Dummy", true, 4, base)))
	require.NoError(t, s.RecordMatch(ctx, record("m2", "Training Dummy", false, 6, base.Add(time.Minute))))
	require.NoError(t, s.RecordMatch(ctx, record("m3", "Marsh Witch", true, 8, base.Add(2*time.Minute))))

	all, err := s.ListMatches(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].MatchID)
	assert.Equal(t, "m1", all[2].MatchID)

	dummy, err := s.ListMatches(ctx, "training dummy", 1)
	require.NoError(t, err)
	require.Len(t, dummy, 1)
	got := dummy[0]
	assert.Equal(t, "m2", got.MatchID)
	assert.False(t, got.HumanWon)
	assert.Equal(t, 90*time.Second, got.Duration)
	assert.Equal(t, base.Add(time.Minute), got.PlayedAt)
	require.Len(t, got.Players, 2)
	assert.Equal(t, "player", got.Players[1].PlayerID)
	assert.True(t, got.Players[1].Human)
	assert.Equal(t, 10, got.Players[1].BiggestHit)
}

func TestSQLiteSummary(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordMatch(ctx, record("m1", "Training Dummy", true, 4, base)))
	require.NoError(t, s.RecordMatch(ctx, record("m2", "Training Dummy", false, 6, base.Add(time.Minute))))
	require.NoError(t, s.RecordMatch(ctx, record("m3", "Marsh Witch", true, 8, base)))

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum, 2)

	assert.Equal(t, "Marsh Witch", sum[0].Level)
	assert.Equal(t, 1, sum[0].Played)

	assert.Equal(t, "Training Dummy", sum[1].Level)
	assert.Equal(t, 2, sum[1].Played)
	assert.Equal(t, 1, sum[1].HumanWins)
	assert.InDelta(t, 5.0, sum[1].AvgRounds, 0.001)
	assert.InDelta(t, 0.5, sum[1].WinRate(), 0.001)
	assert.Equal(t, base.Add(time.Minute), sum[1].LastPlay)
}

func TestSQLiteRejectsDuplicatesAndBadRecords(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	now := time.Now()

	require.NoError(t, s.RecordMatch(ctx, record("m1", "Training Dummy", true, 4, now)))
	assert.Error(t, s.RecordMatch(ctx, record("m1", "Training Dummy", true, 4, now)))
	assert.Error(t, s.RecordMatch(ctx, record("", "Training Dummy", true, 4, now)))
	assert.Error(t, s.RecordMatch(ctx, record("m9", "", true, 4, now)))

	all, err := s.ListMatches(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	ctx := context.Background()

	s, err := stats.OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.RecordMatch(ctx, record("m1", "Training Dummy", true, 4, time.Now())))
	require.NoError(t, s.Close())

	s, err = stats.OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()
	all, err := s.ListMatches(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	s, err := stats.Open(ctx, stats.Config{Driver: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, s.RecordMatch(ctx, record("m1", "x", true, 1, time.Now())))
	list, err := s.ListMatches(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = stats.Open(ctx, stats.Config{Driver: "mongo"}, zap.NewNop())
	assert.ErrorIs(t, err, stats.ErrUnknownDriver)

	_, err = stats.Open(ctx, stats.Config{Driver: "postgres"}, zap.NewNop())
	assert.Error(t, err)

	s, err = stats.Open(ctx, stats.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "s.db")}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("HOLLOWDECK_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("HOLLOWDECK_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	s, err := stats.OpenPostgres(ctx, url, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	id := "pg-" + time.Now().Format("150405.000000000")
	require.NoError(t, s.RecordMatch(ctx, record(id, "Postgres Level", true, 3, time.Now())))

	list, err := s.ListMatches(ctx, "postgres level", 0)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Len(t, list[0].Players, 2)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sum)
}
