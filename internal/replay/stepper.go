package replay

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
)

// checkpointInterval is how many records apart intermediate snapshots
// are memoized. Stepping backward recomputes from the nearest checkpoint
// instead of from turn 0. Purely a cost bound; correctness never depends
// on which checkpoint a seek starts from.
const checkpointInterval = 64

// Stepper provides cursor-style navigation over one replay log:
// forward, backward, and arbitrary seeks, all defined in terms of the
// base reconstruction algorithm.
type Stepper struct {
	factory SimFactory
	log     *ReplayLog

	cursor  int
	current *domain.Snapshot

	// checkpoints[k] is the state after k*checkpointInterval records,
	// filled in lazily as seeks pass those indices.
	checkpoints map[int]*domain.Snapshot
}

// NewStepper positions a cursor at index 0 of the log. The log is
// deep-copied so later appends by the owner cannot shift ground under
// the cursor.
func NewStepper(factory SimFactory, log *ReplayLog) *Stepper {
	return &Stepper{
		factory:     factory,
		log:         log.Clone(),
		current:     log.StartSnapshot.Clone(),
		checkpoints: make(map[int]*domain.Snapshot),
	}
}

// Cursor returns the current index: 0 = start snapshot, N = after the
// Nth record.
func (s *Stepper) Cursor() int { return s.cursor }

// RecordCount returns the number of records in the log.
func (s *Stepper) RecordCount() int { return len(s.log.Records) }

// State returns a deep copy of the state at the cursor.
func (s *Stepper) State() *domain.Snapshot { return s.current.Clone() }

// StepForward advances one record.
func (s *Stepper) StepForward() (*domain.Snapshot, error) {
	return s.Seek(s.cursor + 1)
}

// StepBack retreats one record, recomputing from the nearest checkpoint.
func (s *Stepper) StepBack() (*domain.Snapshot, error) {
	return s.Seek(s.cursor - 1)
}

// Seek moves the cursor to index t, clamped to [0, recordCount], and
// returns a deep copy of the state there.
func (s *Stepper) Seek(t int) (*domain.Snapshot, error) {
	t = clampIndex(s.log, t)

	base, from := s.nearestCheckpoint(t)
	sim, err := s.factory(base)
	if err != nil {
		return nil, fmt.Errorf("hydrate checkpoint at %d: %w", from, err)
	}

	for i := from; i < t; i++ {
		if err := replayRange(sim, s.log.Records[i:i+1]); err != nil {
			return nil, err
		}
		if (i+1)%checkpointInterval == 0 {
			if _, ok := s.checkpoints[(i+1)/checkpointInterval]; !ok {
				s.checkpoints[(i+1)/checkpointInterval] = sim.Snapshot()
			}
		}
	}

	s.cursor = t
	s.current = sim.Snapshot()
	return s.current.Clone(), nil
}

// nearestCheckpoint returns the closest memoized state at or before t
// and the record index it corresponds to.
func (s *Stepper) nearestCheckpoint(t int) (*domain.Snapshot, int) {
	best := s.log.StartSnapshot
	from := 0
	for k := t / checkpointInterval; k > 0; k-- {
		if snap, ok := s.checkpoints[k]; ok {
			best = snap
			from = k * checkpointInterval
			break
		}
	}
	return best, from
}
