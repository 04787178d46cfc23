package engine

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

// Scheduler holds the turn order for one level. Actors sit in insertion
// order, which is the tie-break when several become ready in the same
// tick: determinism requires a stable order, never a randomized one.
type Scheduler struct {
	actors []*domain.Entity
}

func NewScheduler() *Scheduler {
	return &Scheduler{actors: make([]*domain.Entity, 0)}
}

// Add registers an actor at the end of the order. Entities without an
// energy component never take turns and are ignored.
func (s *Scheduler) Add(e *domain.Entity) {
	if e.Energy == nil {
		return
	}
	s.actors = append(s.actors, e)
	logger.Log.WithField("entity_id", e.ID).Debug("Scheduler: actor added")
}

// Remove takes an actor out of the order, keeping the remaining order
// intact.
func (s *Scheduler) Remove(id string) {
	for i, e := range s.actors {
		if e.ID == id {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) Len() int {
	return len(s.actors)
}

// Tick grants one round of energy to every living actor.
func (s *Scheduler) Tick() {
	for _, e := range s.actors {
		if e.IsAlive() {
			e.Energy.Gain()
		}
	}
}

// TickUntilReady ticks everyone until the target can act, and returns
// the number of ticks it took. A slow actor just needs more ticks; a
// zero-speed actor would never become ready, so the loop refuses to
// start for one.
func (s *Scheduler) TickUntilReady(target *domain.Entity) int {
	if target.Energy == nil || target.Energy.Speed <= 0 {
		return 0
	}
	ticks := 0
	for !target.Energy.CanAct() {
		s.Tick()
		ticks++
	}
	return ticks
}

// ReadyAutonomous returns the living actors that can act right now,
// in insertion order, excluding the given controlled actor.
func (s *Scheduler) ReadyAutonomous(excludeID string) []*domain.Entity {
	var ready []*domain.Entity
	for _, e := range s.actors {
		if e.ID == excludeID || !e.IsAlive() {
			continue
		}
		if e.Energy.CanAct() {
			ready = append(ready, e)
		}
	}
	return ready
}
