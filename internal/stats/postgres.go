package stats

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/stats/migrations"
)

// PostgresStore keeps match history in Postgres.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// OpenPostgres connects to url and applies embedded migrations.
func OpenPostgres(ctx context.Context, url string, logger *zap.Logger) (*PostgresStore, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("postgres url is required")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{pool: pool, logger: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("stats store opened", zap.String("driver", DriverPostgres))
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
	    name TEXT PRIMARY KEY,
	    applied_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := migrationFiles(migrations.Postgres, "postgres")
	if err != nil {
		return err
	}
	for _, file := range files {
		content, err := fs.ReadFile(migrations.Postgres, path.Join("postgres", file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		tag, err := tx.Exec(ctx,
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			file, time.Now().UTC())
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if tag.RowsAffected() == 0 {
			_ = tx.Rollback(ctx)
			continue
		}
		if _, err := tx.Exec(ctx, extractUpMigration(string(content))); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// RecordMatch inserts rec and its players in one transaction.
func (s *PostgresStore) RecordMatch(ctx context.Context, rec MatchRecord) error {
	if err := validateRecord(&rec); err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO matches (
			match_id, level, ruleset, seed, winner, winner_name, human_won,
			reason, rounds, duration_ms, checksum, played_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.MatchID, rec.Level, rec.Ruleset, rec.Seed, rec.Winner, rec.WinnerName, rec.HumanWon,
		rec.Reason, rec.Rounds, rec.Duration.Milliseconds(), rec.Checksum, rec.PlayedAt,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range rec.Players {
		batch.Queue(`
			INSERT INTO match_players (
				match_id, player_id, name, human, health, damage_dealt,
				negated, biggest_hit, cards_played, refills
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			rec.MatchID, p.PlayerID, p.Name, p.Human, p.Health, p.DamageDealt,
			p.Negated, p.BiggestHit, p.CardsPlayed, p.Refills)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	s.logger.Debug("match recorded", zap.String("match_id", rec.MatchID), zap.String("level", rec.Level))
	return nil
}

// ListMatches returns recorded matches newest first.
func (s *PostgresStore) ListMatches(ctx context.Context, level string, limit int) ([]MatchRecord, error) {
	query := `SELECT match_id, level, ruleset, seed, winner, winner_name, human_won,
	                 reason, rounds, duration_ms, checksum, played_at
	          FROM matches`
	var args []any
	if level != "" {
		args = append(args, level)
		query += fmt.Sprintf(` WHERE lower(level) = lower($%d)`, len(args))
	}
	query += ` ORDER BY played_at DESC, match_id`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (MatchRecord, error) {
		var rec MatchRecord
		var durationMs int64
		err := row.Scan(&rec.MatchID, &rec.Level, &rec.Ruleset, &rec.Seed, &rec.Winner,
			&rec.WinnerName, &rec.HumanWon, &rec.Reason, &rec.Rounds, &durationMs,
			&rec.Checksum, &rec.PlayedAt)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.PlayedAt = rec.PlayedAt.UTC()
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan matches: %w", err)
	}

	for i := range out {
		rows, err := s.pool.Query(ctx, `
			SELECT player_id, name, human, health, damage_dealt, negated,
			       biggest_hit, cards_played, refills
			FROM match_players WHERE match_id = $1 ORDER BY player_id`, out[i].MatchID)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		out[i].Players, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (PlayerRecord, error) {
			var p PlayerRecord
			err := row.Scan(&p.PlayerID, &p.Name, &p.Human, &p.Health, &p.DamageDealt,
				&p.Negated, &p.BiggestHit, &p.CardsPlayed, &p.Refills)
			return p, err
		})
		if err != nil {
			return nil, fmt.Errorf("scan players: %w", err)
		}
	}
	return out, nil
}

// Summary aggregates matches per level.
func (s *PostgresStore) Summary(ctx context.Context) ([]LevelSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT level, COUNT(*), COUNT(*) FILTER (WHERE human_won), AVG(rounds)::float8, MAX(played_at)
		FROM matches GROUP BY level ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("summarize matches: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LevelSummary, error) {
		var sum LevelSummary
		err := row.Scan(&sum.Level, &sum.Played, &sum.HumanWins, &sum.AvgRounds, &sum.LastPlay)
		sum.LastPlay = sum.LastPlay.UTC()
		return sum, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan summary: %w", err)
	}
	return out, nil
}
