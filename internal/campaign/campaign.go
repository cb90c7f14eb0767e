// Package campaign tracks overworld progression across the configured levels.
package campaign

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/levels"
	"github.com/magefree/hollowdeck/internal/save"
)

var (
	ErrLocked          = errors.New("enemy is locked")
	ErrNotDefeated     = errors.New("enemy not defeated")
	ErrRewardCollected = errors.New("reward already collected")
	ErrNoReward        = errors.New("enemy has no reward")
)

// StageState is the progression state of one enemy.
type StageState int

const (
	StageLocked StageState = iota
	StageUnlocked
	StageDefeated
)

func (s StageState) String() string {
	switch s {
	case StageLocked:
		return "LOCKED"
	case StageUnlocked:
		return "UNLOCKED"
	case StageDefeated:
		return "DEFEATED"
	default:
		return "UNKNOWN"
	}
}

// Stage is one enemy on the overworld.
type Stage struct {
	Enemy           string
	Title           string
	Reward          string
	State           StageState
	RewardCollected bool
	Wins            int
	Losses          int
}

// StageSnapshot captures stage data for external use.
type StageSnapshot struct {
	Enemy           string
	Title           string
	Reward          string
	State           StageState
	RewardCollected bool
	Wins            int
	Losses          int
}

// Campaign is the progression of one save slot.
type Campaign struct {
	mu      sync.RWMutex
	stages  []*Stage
	starter []cards.DeckEntry
	logger  *zap.Logger
}

// New builds a campaign over the levels in lm, restoring progress. An enemy
// counts as defeated when its reward was collected or the next enemy is
// unlocked.
func New(lm *levels.Manager, progress save.Progress, logger *zap.Logger) *Campaign {
	if logger == nil {
		logger = zap.NewNop()
	}
	progress = save.Align(progress, lm.Enemies())

	c := &Campaign{
		starter: append([]cards.DeckEntry(nil), lm.Player().StarterDeck...),
		logger:  logger,
	}
	for i, l := range lm.Levels() {
		entry := progress[i]
		stage := &Stage{
			Enemy:           l.Enemy,
			Title:           l.Title,
			Reward:          l.Reward,
			RewardCollected: entry.RewardCollected,
		}
		nextUnlocked := i+1 < len(progress) && progress[i+1].Unlocked
		switch {
		case entry.RewardCollected || nextUnlocked:
			stage.State = StageDefeated
		case entry.Unlocked:
			stage.State = StageUnlocked
		default:
			stage.State = StageLocked
		}
		c.stages = append(c.stages, stage)
	}
	return c
}

func (c *Campaign) find(enemy string) (int, *Stage, error) {
	for i, s := range c.stages {
		if strings.EqualFold(s.Enemy, enemy) {
			return i, s, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %q", levels.ErrUnknownEnemy, enemy)
}

// CanFight reports whether enemy may be challenged.
func (c *Campaign) CanFight(enemy string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, s, err := c.find(enemy)
	if err != nil {
		return err
	}
	if s.State == StageLocked {
		return fmt.Errorf("%w: %s", ErrLocked, s.Enemy)
	}
	return nil
}

// RecordResult records a finished battle. A win marks the enemy defeated
// and unlocks the next one.
func (c *Campaign) RecordResult(enemy string, won bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, s, err := c.find(enemy)
	if err != nil {
		return err
	}
	if s.State == StageLocked {
		return fmt.Errorf("%w: %s", ErrLocked, s.Enemy)
	}

	if !won {
		s.Losses++
		c.logger.Info("battle lost", zap.String("enemy", s.Enemy), zap.Int("losses", s.Losses))
		return nil
	}

	s.Wins++
	s.State = StageDefeated
	if i+1 < len(c.stages) && c.stages[i+1].State == StageLocked {
		c.stages[i+1].State = StageUnlocked
		c.logger.Info("enemy unlocked", zap.String("enemy", c.stages[i+1].Enemy))
	}
	c.logger.Info("battle won", zap.String("enemy", s.Enemy), zap.Int("wins", s.Wins))
	return nil
}

// CollectReward adds the enemy's reward card to the deck and returns its name.
func (c *Campaign) CollectReward(enemy string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, s, err := c.find(enemy)
	if err != nil {
		return "", err
	}
	if s.State != StageDefeated {
		return "", fmt.Errorf("%w: %s", ErrNotDefeated, s.Enemy)
	}
	if s.Reward == "" {
		return "", fmt.Errorf("%w: %s", ErrNoReward, s.Enemy)
	}
	if s.RewardCollected {
		return "", fmt.Errorf("%w: %s", ErrRewardCollected, s.Enemy)
	}
	s.RewardCollected = true
	c.logger.Info("reward collected", zap.String("enemy", s.Enemy), zap.String("card", s.Reward))
	return s.Reward, nil
}

// Deck returns the starter deck plus one copy of every collected reward.
func (c *Campaign) Deck() []cards.DeckEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	deck := append([]cards.DeckEntry(nil), c.starter...)
	for _, s := range c.stages {
		if s.RewardCollected && s.Reward != "" {
			deck = append(deck, cards.DeckEntry{Card: s.Reward, Count: 1})
		}
	}
	return deck
}

// Next returns the first unlocked enemy not yet defeated.
func (c *Campaign) Next() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.stages {
		if s.State == StageUnlocked {
			return s.Enemy, true
		}
	}
	return "", false
}

// Complete reports whether every enemy is defeated.
func (c *Campaign) Complete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.stages {
		if s.State != StageDefeated {
			return false
		}
	}
	return len(c.stages) > 0
}

// Progress returns the persistable form of the campaign.
func (c *Campaign) Progress() save.Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := make(save.Progress, 0, len(c.stages))
	for _, s := range c.stages {
		p = append(p, save.Entry{
			EnemyName:       s.Enemy,
			Unlocked:        s.State != StageLocked,
			RewardCollected: s.RewardCollected,
		})
	}
	return p
}

// Snapshot returns a consistent copy of every stage.
func (c *Campaign) Snapshot() []StageSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]StageSnapshot, 0, len(c.stages))
	for _, s := range c.stages {
		out = append(out, StageSnapshot{
			Enemy:           s.Enemy,
			Title:           s.Title,
			Reward:          s.Reward,
			State:           s.State,
			RewardCollected: s.RewardCollected,
			Wins:            s.Wins,
			Losses:          s.Losses,
		})
	}
	return out
}
