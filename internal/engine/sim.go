package engine

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// replaySim drives a hydrated session from replay records. It shares the
// exact step functions the live path uses; the only difference is that
// nothing is re-recorded and AI decisions come from the log instead of
// being computed.
type replaySim struct {
	session *Session
}

// NewSimFactory returns the hydration function the reconstructor uses.
func NewSimFactory(winDepth int) replay.SimFactory {
	return func(start *domain.Snapshot) (replay.Sim, error) {
		s, err := HydrateSession("replay", start, winDepth)
		if err != nil {
			return nil, err
		}
		return &replaySim{session: s}, nil
	}
}

func (r *replaySim) Apply(rec replay.CommandRecord) error {
	s := r.session

	action := domain.ParseAction(rec.Kind)
	if action == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", replay.ErrUnknownCommandKind, rec.Kind)
	}

	switch rec.Actor.Role {
	case domain.RoleControlled:
		return s.applyControlledStep(action, rec.Payload)
	case domain.RoleAutonomous:
		return s.applyAutonomousStep(rec.Actor.ID, action, rec.Payload)
	default:
		return fmt.Errorf("record has unknown actor role %q", rec.Actor.Role)
	}
}

func (r *replaySim) Snapshot() *domain.Snapshot {
	return r.session.buildSnapshot()
}

func (r *replaySim) Rng() rng.Source {
	return r.session.rng
}
