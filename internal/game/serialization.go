package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/magefree/hollowdeck/internal/game/players"
)

// Snapshot is a copy of the visible match state at one point in time.
type Snapshot struct {
	MatchID   string
	Level     string
	Ruleset   string
	Round     int
	Current   string
	Switching bool
	Over      bool
	Winner    string
	Players   []players.Snapshot
	Played    []string
	Timestamp time.Time
}

// SerializationChecksum is a deterministic checksum of a snapshot.
type SerializationChecksum struct {
	Hash      string
	Timestamp string
	Version   int
}

// ComputeChecksum hashes the deterministic fields of the snapshot. The match
// ID and timestamp are left out so equal seeds give equal checksums.
func (s *Snapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(s.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}
	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: s.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

func (s *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "MATCH:%s|%s|%d|%s|%t|%t|%s\n",
		s.Level, s.Ruleset, s.Round, s.Current, s.Switching, s.Over, s.Winner)

	ps := append([]players.Snapshot(nil), s.Players...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	for _, p := range ps {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%s|%d/%d|%d/%d|%d/%d|%d|%d|%d\n",
			p.ID, p.Name, p.Kind,
			p.Health.Current, p.Health.Max,
			p.Stamina.Current, p.Stamina.Max,
			p.Focus.Current, p.Focus.Max,
			p.DeckSize, p.Reserve, p.Combo)
		// hand order is visible state
		buf.WriteString("  HAND:" + strings.Join(p.Hand, ",") + "\n")
		for _, b := range p.Buffs {
			buf.WriteString("  BUFF:" + b + "\n")
		}
	}

	// pile order matters
	buf.WriteString("PLAYED:" + strings.Join(s.Played, ",") + "\n")
	return buf.String()
}

// VerifyChecksum reports whether the snapshot still hashes to expected.
func (s *Snapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	computed, err := s.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}
	return computed.Hash == expected.Hash, nil
}

// SerializeToBytes gob-encodes the snapshot.
func (s *Snapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeFromBytes decodes a snapshot written by SerializeToBytes.
func DeserializeFromBytes(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// ValidateSerializationRoundtrip checks that a snapshot survives encoding
// with an unchanged checksum.
func ValidateSerializationRoundtrip(s *Snapshot) error {
	original, err := s.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute original checksum: %w", err)
	}
	data, err := s.SerializeToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}
	decoded, err := DeserializeFromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to deserialize: %w", err)
	}
	roundtrip, err := decoded.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute deserialized checksum: %w", err)
	}
	if original.Hash != roundtrip.Hash {
		return fmt.Errorf("checksum mismatch: original=%s, deserialized=%s", original.Hash, roundtrip.Hash)
	}
	return nil
}
