package systems

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
)

// MovementResult is the outcome of a movement calculation.
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	BlockedBy  *domain.Entity // bumped into somebody (attack opportunity)
	IsWall     bool
}

// CalculateMove computes where a step lands. It never mutates the world.
func CalculateMove(e *domain.Entity, dx, dy int, w *domain.GameWorld) MovementResult {
	targetPos := e.Pos.Shift(dx, dy)
	res := MovementResult{NewX: targetPos.X, NewY: targetPos.Y}

	if !w.InBounds(targetPos.X, targetPos.Y) {
		res.IsWall = true
		return res
	}
	if w.Map[targetPos.Y][targetPos.X].IsWall {
		res.IsWall = true
		return res
	}

	for _, other := range w.GetEntitiesAt(targetPos.X, targetPos.Y) {
		if other.ID == e.ID {
			continue
		}
		// Only a living body blocks; items and exits are walkable.
		if other.Stats != nil && !other.Stats.IsDead {
			res.BlockedBy = other
			return res
		}
	}

	res.HasMoved = true
	return res
}
