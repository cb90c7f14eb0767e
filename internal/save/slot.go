// Package save persists campaign progress in numbered JSON slot files.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrCorruptSave is returned when a slot file exists but cannot be decoded.
	ErrCorruptSave = errors.New("corrupt save")
	// ErrInvalidSlot is returned for slot numbers below 1.
	ErrInvalidSlot = errors.New("invalid save slot")
)

// Entry is the persisted progress for one enemy.
type Entry struct {
	EnemyName       string
	Unlocked        bool
	RewardCollected bool
}

// Progress is the ordered list of entries stored in one slot.
type Progress []Entry

// Find returns the entry for enemy, ignoring case.
func (p Progress) Find(enemy string) (Entry, bool) {
	for _, e := range p {
		if strings.EqualFold(e.EnemyName, enemy) {
			return e, true
		}
	}
	return Entry{}, false
}

// Defaults returns fresh progress for enemies with only the first unlocked.
func Defaults(enemies []string) Progress {
	p := make(Progress, 0, len(enemies))
	for i, name := range enemies {
		p = append(p, Entry{EnemyName: name, Unlocked: i == 0})
	}
	return p
}

// Align orders stored progress to match enemies. Entries for unknown enemies
// are dropped, new enemies start locked, and the first enemy is always
// unlocked.
func Align(stored Progress, enemies []string) Progress {
	p := make(Progress, 0, len(enemies))
	for _, name := range enemies {
		e, ok := stored.Find(name)
		if !ok {
			e = Entry{}
		}
		e.EnemyName = name
		p = append(p, e)
	}
	if len(p) > 0 {
		p[0].Unlocked = true
	}
	return p
}

// FileStore reads and writes slot<N>.json files in a directory.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the save directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the save directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file used for slot.
func (s *FileStore) Path(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("slot%d.json", slot))
}

// Load returns the progress in slot aligned to enemies. A missing file yields
// defaults; an undecodable one yields defaults and an error wrapping
// ErrCorruptSave.
func (s *FileStore) Load(slot int, enemies []string) (Progress, error) {
	if slot < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(slot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no save found, using defaults", zap.Int("slot", slot))
			return Defaults(enemies), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var stored Progress
	if err := json.Unmarshal(data, &stored); err != nil {
		return Defaults(enemies), fmt.Errorf("%w: %s: %v", ErrCorruptSave, path, err)
	}
	return Align(stored, enemies), nil
}

// Save writes progress to slot through a temp file and rename.
func (s *FileStore) Save(slot int, progress Progress) error {
	if slot < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if progress == nil {
		progress = Progress{}
	}
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf("slot%d-*.tmp", slot))
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp save: %w", err)
	}
	if err := os.Rename(tmpName, s.Path(slot)); err != nil {
		return fmt.Errorf("failed to replace save: %w", err)
	}

	s.logger.Debug("progress saved", zap.Int("slot", slot), zap.Int("entries", len(progress)))
	return nil
}

// Reset overwrites slot with default progress and returns it.
func (s *FileStore) Reset(slot int, enemies []string) (Progress, error) {
	p := Defaults(enemies)
	if err := s.Save(slot, p); err != nil {
		return nil, err
	}
	s.logger.Info("save slot reset", zap.Int("slot", slot))
	return p, nil
}
