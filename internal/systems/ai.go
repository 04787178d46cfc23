package systems

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// ComputeAction decides what an autonomous actor does with its turn.
// Randomness (the idle wander) comes from src and is consumed BEFORE the
// resulting command is recorded, so replays never re-run the decision.
func ComputeAction(npc *domain.Entity, player *domain.Entity, w *domain.GameWorld, src rng.Source) (action domain.ActionType, target *domain.Entity, dx, dy int) {
	if npc.Energy == nil || npc.Stats == nil || npc.Stats.IsDead || !npc.Energy.IsHostile {
		return domain.ActionWait, nil, 0, 0
	}
	if player == nil || player.Stats == nil || player.Stats.IsDead {
		return domain.ActionWait, nil, 0, 0
	}

	dist := npc.Pos.DistanceTo(player.Pos)

	if npc.Pos.IsAdjacent(player.Pos) {
		return domain.ActionAttack, player, 0, 0
	}

	if dist <= float64(domain.AggroRadius) {
		moveDx, moveDy := stepToward(npc, player, w)
		if moveDx == 0 && moveDy == 0 {
			return domain.ActionWait, nil, 0, 0
		}
		return domain.ActionMove, nil, moveDx, moveDy
	}

	// Out of aggro range: occasionally shuffle around.
	if src.Chance(0.3) {
		wdx := src.NextInt(-1, 1)
		wdy := src.NextInt(-1, 1)
		if wdx == 0 && wdy == 0 {
			return domain.ActionWait, nil, 0, 0
		}
		if res := CalculateMove(npc, wdx, wdy, w); !res.HasMoved {
			return domain.ActionWait, nil, 0, 0
		}
		return domain.ActionMove, nil, wdx, wdy
	}
	return domain.ActionWait, nil, 0, 0
}

// stepToward takes one greedy step along the dominant axis, trying the
// secondary axis when the primary is blocked.
func stepToward(npc, target *domain.Entity, w *domain.GameWorld) (int, int) {
	dx := sign(target.Pos.X - npc.Pos.X)
	dy := sign(target.Pos.Y - npc.Pos.Y)

	candidates := [][2]int{{dx, dy}, {dx, 0}, {0, dy}}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		res := CalculateMove(npc, c[0], c[1], w)
		if res.HasMoved {
			return c[0], c[1]
		}
	}
	return 0, 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
