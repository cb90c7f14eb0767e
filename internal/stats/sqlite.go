package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/magefree/hollowdeck/internal/stats/migrations"
)

// SQLiteStore keeps match history in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens the database at path and applies embedded migrations.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create stats directory: %w", err)
	}
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applySQLiteMigrations(ctx, db, migrations.SQLite, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("stats store opened", zap.String("driver", DriverSQLite), zap.String("path", cleanPath))
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordMatch inserts rec and its players in one transaction.
func (s *SQLiteStore) RecordMatch(ctx context.Context, rec MatchRecord) error {
	if err := validateRecord(&rec); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO matches (
		   match_id, level, ruleset, seed, winner, winner_name, human_won,
		   reason, rounds, duration_ms, checksum, played_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.Level, rec.Ruleset, rec.Seed, rec.Winner, rec.WinnerName, rec.HumanWon,
		rec.Reason, rec.Rounds, rec.Duration.Milliseconds(), rec.Checksum, toMillis(rec.PlayedAt),
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	for _, p := range rec.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO match_players (
			   match_id, player_id, name, human, health, damage_dealt,
			   negated, biggest_hit, cards_played, refills
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.MatchID, p.PlayerID, p.Name, p.Human, p.Health, p.DamageDealt,
			p.Negated, p.BiggestHit, p.CardsPlayed, p.Refills,
		); err != nil {
			return fmt.Errorf("insert player %s: %w", p.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	s.logger.Debug("match recorded", zap.String("match_id", rec.MatchID), zap.String("level", rec.Level))
	return nil
}

// ListMatches returns recorded matches newest first.
func (s *SQLiteStore) ListMatches(ctx context.Context, level string, limit int) ([]MatchRecord, error) {
	query := `SELECT match_id, level, ruleset, seed, winner, winner_name, human_won,
	                 reason, rounds, duration_ms, checksum, played_at
	          FROM matches`
	var args []any
	if level != "" {
		query += ` WHERE level = ? COLLATE NOCASE`
		args = append(args, level)
	}
	query += ` ORDER BY played_at DESC, match_id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var durationMs, playedAt int64
		if err := rows.Scan(&rec.MatchID, &rec.Level, &rec.Ruleset, &rec.Seed, &rec.Winner,
			&rec.WinnerName, &rec.HumanWon, &rec.Reason, &rec.Rounds, &durationMs,
			&rec.Checksum, &playedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.PlayedAt = fromMillis(playedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	for i := range out {
		players, err := s.players(ctx, out[i].MatchID)
		if err != nil {
			return nil, err
		}
		out[i].Players = players
	}
	return out, nil
}

func (s *SQLiteStore) players(ctx context.Context, matchID string) ([]PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, name, human, health, damage_dealt, negated,
		        biggest_hit, cards_played, refills
		 FROM match_players WHERE match_id = ? ORDER BY player_id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var out []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Human, &p.Health, &p.DamageDealt,
			&p.Negated, &p.BiggestHit, &p.CardsPlayed, &p.Refills); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Summary aggregates matches per level.
func (s *SQLiteStore) Summary(ctx context.Context) ([]LevelSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, COUNT(*), SUM(human_won), AVG(rounds), MAX(played_at)
		 FROM matches GROUP BY level ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("summarize matches: %w", err)
	}
	defer rows.Close()

	var out []LevelSummary
	for rows.Next() {
		var sum LevelSummary
		var lastPlay int64
		if err := rows.Scan(&sum.Level, &sum.Played, &sum.HumanWins, &sum.AvgRounds, &lastPlay); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.LastPlay = fromMillis(lastPlay)
		out = append(out, sum)
	}
	return out, rows.Err()
}
