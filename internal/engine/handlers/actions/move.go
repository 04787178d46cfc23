package actions

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/internal/systems"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// HandleMove steps the actor one cell. Bumping into a hostile resolves
// as a melee attack; bumping into a wall is a recorded no-op (the turn
// is spent either way, which keeps live runs and replays in lockstep).
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	res := systems.CalculateMove(ctx.Actor, p.Dx, p.Dy, ctx.World)

	if res.BlockedBy != nil {
		actorHostile := ctx.Actor.Energy != nil && ctx.Actor.Energy.IsHostile
		targetHostile := res.BlockedBy.Energy != nil && res.BlockedBy.Energy.IsHostile

		if actorHostile != targetHostile {
			msg, _ := systems.ApplyAttack(ctx.Actor, res.BlockedBy, ctx.Rng)
			return handlers.Result{Msg: msg, MsgType: "COMBAT"}, nil
		}
		return handlers.Result{Msg: "Something is in the way.", MsgType: "ERROR"}, nil
	}

	if res.HasMoved {
		if err := ctx.World.UpdateEntityPos(ctx.Actor, res.NewX, res.NewY); err != nil {
			return handlers.Result{}, err
		}
		return handlers.EmptyResult(), nil
	}

	if res.IsWall && ctx.Actor.Type == domain.EntityTypePlayer {
		return handlers.Result{Msg: "The way is blocked.", MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
