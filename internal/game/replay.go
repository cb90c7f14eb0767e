package game

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	replayVersion = 2
	replayExt     = ".replay"
)

var (
	// ErrReplayVersion is returned for files written by another format revision.
	ErrReplayVersion = errors.New("unsupported replay version")
	// ErrNothingRecorded is returned when saving before a match started.
	ErrNothingRecorded = errors.New("no replay recorded")
)

// ReplayHeader describes a recorded match.
type ReplayHeader struct {
	Version  int
	MatchID  string
	Level    string
	Seed     uint64
	Recorded time.Time
	// FrameCount is the number of snapshots that follow the header.
	FrameCount int
	// Final is the checksum of the last snapshot, empty while recording.
	Final string
}

// Replay is a recorded match: a snapshot at every turn start plus the
// state the match ended in.
type Replay struct {
	ReplayHeader
	frames []*Snapshot
}

// NewReplay returns an empty recording.
func NewReplay(matchID, level string, seed uint64) *Replay {
	return &Replay{
		ReplayHeader: ReplayHeader{Version: replayVersion, MatchID: matchID, Level: level, Seed: seed},
		frames:       make([]*Snapshot, 0, 32),
	}
}

// Append adds a snapshot to the end of the recording.
func (r *Replay) Append(s *Snapshot) {
	r.frames = append(r.frames, s)
}

// Len returns the number of snapshots.
func (r *Replay) Len() int { return len(r.frames) }

// At returns snapshot i, or nil when i is out of range.
func (r *Replay) At(i int) *Snapshot {
	if i < 0 || i >= len(r.frames) {
		return nil
	}
	return r.frames[i]
}

// Last returns the final snapshot, or nil for an empty recording.
func (r *Replay) Last() *Snapshot { return r.At(len(r.frames) - 1) }

// Frames yields the snapshots in recording order.
func (r *Replay) Frames() iter.Seq2[int, *Snapshot] {
	return func(yield func(int, *Snapshot) bool) {
		for i, s := range r.frames {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Seal stamps the header with the frame count and the final checksum.
func (r *Replay) Seal() error {
	r.FrameCount = len(r.frames)
	r.Recorded = time.Now().UTC()
	last := r.Last()
	if last == nil {
		r.Final = ""
		return nil
	}
	sum, err := last.ComputeChecksum()
	if err != nil {
		return err
	}
	r.Final = sum.Hash
	return nil
}

// Verify recomputes the final checksum and compares it with the sealed one.
func (r *Replay) Verify() error {
	last := r.Last()
	if last == nil || r.Final == "" {
		return ErrNothingRecorded
	}
	ok, err := last.VerifyChecksum(&SerializationChecksum{Hash: r.Final})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("replay %s: final state does not match checksum %s", r.MatchID, r.Final)
	}
	return nil
}

// WriteTo encodes the replay as a gzip compressed gob stream: the header
// followed by one value per snapshot.
func (r *Replay) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	gz := gzip.NewWriter(cw)
	enc := gob.NewEncoder(gz)
	hdr := r.ReplayHeader
	hdr.FrameCount = len(r.frames)
	if err := enc.Encode(&hdr); err != nil {
		return cw.n, fmt.Errorf("encode replay header: %w", err)
	}
	for i, s := range r.frames {
		if err := enc.Encode(s); err != nil {
			return cw.n, fmt.Errorf("encode snapshot %d: %w", i, err)
		}
	}
	if err := gz.Close(); err != nil {
		return cw.n, fmt.Errorf("flush replay: %w", err)
	}
	return cw.n, nil
}

// ReadReplay decodes a stream written by WriteTo.
func ReadReplay(rd io.Reader) (*Replay, error) {
	gz, err := gzip.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("open replay stream: %w", err)
	}
	defer gz.Close()

	dec := gob.NewDecoder(gz)
	var hdr ReplayHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if hdr.Version != replayVersion {
		return nil, fmt.Errorf("%w: %d", ErrReplayVersion, hdr.Version)
	}
	r := &Replay{ReplayHeader: hdr, frames: make([]*Snapshot, 0, hdr.FrameCount)}
	for i := range hdr.FrameCount {
		s := new(Snapshot)
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("decode snapshot %d: %w", i, err)
		}
		r.frames = append(r.frames, s)
	}
	return r, nil
}

// ReplayPath returns where matchID's replay lives inside dir.
func ReplayPath(dir, matchID string) string {
	return filepath.Join(dir, matchID+replayExt)
}

// Save writes the replay into dir and returns the file path.
func (r *Replay) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create replay dir: %w", err)
	}
	path := ReplayPath(dir, r.MatchID)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// OpenReplay reads the replay file at path.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := ReadReplay(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// replayRecorder collects snapshots for one match and writes them out when
// the match ends. Without a directory the replay stays in memory.
type replayRecorder struct {
	logger *zap.Logger
	dir    string
	replay *Replay
	closed bool
}

func newReplayRecorder(logger *zap.Logger, dir string) *replayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &replayRecorder{logger: logger, dir: dir}
}

func (rr *replayRecorder) begin(matchID, level string, seed uint64) {
	rr.replay = NewReplay(matchID, level, seed)
	rr.closed = false
}

func (rr *replayRecorder) record(s *Snapshot) {
	if rr.replay == nil || rr.closed {
		return
	}
	rr.replay.Append(s)
}

// finish seals the recording and saves it when a directory is configured.
func (rr *replayRecorder) finish() (string, error) {
	if rr.replay == nil {
		return "", ErrNothingRecorded
	}
	rr.closed = true
	if err := rr.replay.Seal(); err != nil {
		return "", err
	}
	if rr.dir == "" {
		return "", nil
	}
	path, err := rr.replay.Save(rr.dir)
	if err != nil {
		return "", fmt.Errorf("save replay: %w", err)
	}
	rr.logger.Info("replay saved",
		zap.String("match_id", rr.replay.MatchID),
		zap.Int("frames", rr.replay.Len()),
		zap.String("path", path))
	return path, nil
}
