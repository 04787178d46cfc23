package replay

import (
	"sync"
	"time"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

// Recorder owns the in-memory command log for one session. It is the
// single writer: whoever executes actions holds a reference and appends
// through Record. Everything handed outward is a deep copy, so readers
// can never observe or cause a half-mutated log.
type Recorder struct {
	mu sync.Mutex

	sessionID     string
	startSnapshot *domain.Snapshot
	records       []CommandRecord
	startedAt     time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartSession begins recording a fresh session. The snapshot is
// deep-copied on the way in and any previous records are dropped.
// There is no implicit reset anywhere else.
func (r *Recorder) StartSession(snapshot *domain.Snapshot, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessionID = sessionID
	r.startSnapshot = snapshot.Clone()
	r.records = nil
	r.startedAt = time.Now()

	logger.Log.WithField("sessionId", sessionID).Debug("Recorder: session started")
}

// Record appends one command record. Callers must invoke this BEFORE the
// action mutates simulation state, so RngStateBefore reflects the RNG
// prior to any randomness the action will consume. The engine enforces
// this by funnelling all actions through a single record-then-dispatch
// entry point.
func (r *Recorder) Record(rec CommandRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec.Clone())
}

// Log returns a deep copy of the recorded commands. Mutating the result
// never affects the internal log or any other copy.
func (r *Recorder) Log() []CommandRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneRecords(r.records)
}

// Snapshot returns a deep copy of the starting snapshot, or nil when no
// session is active.
func (r *Recorder) Snapshot() *domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startSnapshot.Clone()
}

// RestoreLog replaces the record sequence wholesale. Used when resuming
// a saved session: the restored log lets replay start from turn 0 rather
// than the load point. Input is deep-copied.
func (r *Recorder) RestoreLog(records []CommandRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = cloneRecords(records)
}

// Clear drops the snapshot and all records.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionID = ""
	r.startSnapshot = nil
	r.records = nil
	r.startedAt = time.Time{}
}

// IsActive reports whether a session snapshot is currently held.
func (r *Recorder) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startSnapshot != nil
}

func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

func (r *Recorder) RecordCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Recorder) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt
}

// BuildLog assembles the persisted form of the current session. Returns
// nil when no session is active. The result shares nothing with the
// recorder's internals.
func (r *Recorder) BuildLog(displayName string, depthAtEnd int, outcome string) *ReplayLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.startSnapshot == nil {
		return nil
	}
	return &ReplayLog{
		SessionID:     r.sessionID,
		FormatVersion: CurrentFormatVersion,
		StartSnapshot: r.startSnapshot.Clone(),
		Seed:          r.startSnapshot.Seed,
		Records:       cloneRecords(r.records),
		Summary: Summary{
			CreatedAt:   r.startedAt.UnixMilli(),
			RecordCount: len(r.records),
			DisplayName: displayName,
			DepthAtEnd:  depthAtEnd,
			Outcome:     outcome,
		},
	}
}
