package replay

import (
	"errors"
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// ErrUnknownCommandKind means a record's kind tag has no registered
// handler. Reconstruction aborts and the partial state is discarded.
var ErrUnknownCommandKind = errors.New("unknown command kind")

// Sim is the minimal simulation surface the reconstructor drives. The
// engine supplies the implementation; this package never imports it.
type Sim interface {
	// Apply dispatches one recorded command against the current state.
	// The reconstructor pins the RNG before each call, so Apply must
	// draw all randomness from Rng() and mutate nothing outside its own
	// state.
	Apply(rec CommandRecord) error

	// Snapshot captures the current state as a deep copy.
	Snapshot() *domain.Snapshot

	// Rng exposes the simulation's random source for state pinning.
	Rng() rng.Source
}

// SimFactory hydrates a fresh simulation from a snapshot. Each call must
// produce a fully independent instance.
type SimFactory func(start *domain.Snapshot) (Sim, error)

// Reconstructor rebuilds simulation state at any point in a replay log
// by replaying records in order against a snapshot-hydrated sim.
type Reconstructor struct {
	factory SimFactory
}

func NewReconstructor(factory SimFactory) *Reconstructor {
	return &Reconstructor{factory: factory}
}

// StateAt returns the state after the first t records. t=0 is the start
// snapshot; t past the end is clamped with a warning. The computation is
// pure: calling it twice with the same inputs yields identical states.
func (rc *Reconstructor) StateAt(log *ReplayLog, t int) (*domain.Snapshot, error) {
	t = clampIndex(log, t)

	sim, err := rc.factory(log.StartSnapshot)
	if err != nil {
		return nil, fmt.Errorf("hydrate start snapshot: %w", err)
	}
	if err := replayRange(sim, log.Records[:t]); err != nil {
		return nil, err
	}
	return sim.Snapshot(), nil
}

// replayRange applies records in order, restoring the RNG to each
// record's pre-action state first. This is the core replay loop; the
// stepper reuses it from checkpoints.
func replayRange(sim Sim, records []CommandRecord) error {
	for i := range records {
		rec := records[i]
		if err := sim.Rng().RestoreState(rec.RngStateBefore); err != nil {
			return fmt.Errorf("record %d: restore rng state: %w", i, err)
		}
		if err := sim.Apply(rec); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, rec.Kind, err)
		}
	}
	return nil
}

func clampIndex(log *ReplayLog, t int) int {
	n := len(log.Records)
	if t > n {
		logger.Log.WithFields(map[string]interface{}{
			"requested": t,
			"max":       n,
		}).Warn("Reconstructor: index past end of log, clamping")
		return n
	}
	if t < 0 {
		return 0
	}
	return t
}
