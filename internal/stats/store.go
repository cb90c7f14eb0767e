// Package stats records finished matches for later inspection.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown stats driver")

// PlayerRecord is one seat's totals in a recorded match.
type PlayerRecord struct {
	PlayerID    string
	Name        string
	Human       bool
	Health      int
	DamageDealt int
	Negated     int
	BiggestHit  int
	CardsPlayed int
	Refills     int
}

// MatchRecord is one finished match.
type MatchRecord struct {
	MatchID    string
	Level      string
	Ruleset    string
	Seed       int64
	Winner     string
	WinnerName string
	HumanWon   bool
	Reason     string
	Rounds     int
	Duration   time.Duration
	Checksum   string
	PlayedAt   time.Time
	Players    []PlayerRecord
}

// LevelSummary aggregates the recorded matches of one level.
type LevelSummary struct {
	Level     string
	Played    int
	HumanWins int
	AvgRounds float64
	LastPlay  time.Time
}

// WinRate returns the fraction of matches the human won.
func (s LevelSummary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.HumanWins) / float64(s.Played)
}

// Store persists match history.
type Store interface {
	RecordMatch(ctx context.Context, rec MatchRecord) error
	// ListMatches returns the newest matches first. An empty level lists all
	// levels; limit <= 0 means no limit.
	ListMatches(ctx context.Context, level string, limit int) ([]MatchRecord, error)
	Summary(ctx context.Context) ([]LevelSummary, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver string
	// Path is the SQLite database file.
	Path string
	// URL is the Postgres connection string.
	URL string
}

// Open returns the store for cfg.Driver.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverSQLite, "":
		return OpenSQLite(cfg.Path, logger)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.URL, logger)
	case DriverNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func validateRecord(rec *MatchRecord) error {
	rec.MatchID = strings.TrimSpace(rec.MatchID)
	if rec.MatchID == "" {
		return errors.New("match id is required")
	}
	if strings.TrimSpace(rec.Level) == "" {
		return errors.New("level is required")
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	rec.PlayedAt = rec.PlayedAt.UTC()
	return nil
}

// Nop discards every record.
type Nop struct{}

func (Nop) RecordMatch(context.Context, MatchRecord) error { return nil }

func (Nop) ListMatches(context.Context, string, int) ([]MatchRecord, error) { return nil, nil }

func (Nop) Summary(context.Context) ([]LevelSummary, error) { return nil, nil }

func (Nop) Close() error { return nil }
