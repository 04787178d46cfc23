package actions

import (
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/internal/systems"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// HandleAttack resolves a melee attack on an adjacent entity.
func HandleAttack(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	target := ctx.Finder.GetEntity(p.TargetID)
	if target == nil {
		return handlers.Result{Msg: "Target not found.", MsgType: "ERROR"}, nil
	}

	if !ctx.Actor.Pos.IsAdjacent(target.Pos) {
		return handlers.Result{Msg: "Target is too far away.", MsgType: "ERROR"}, nil
	}

	msg, _ := systems.ApplyAttack(ctx.Actor, target, ctx.Rng)
	return handlers.Result{Msg: msg, MsgType: "COMBAT"}, nil
}
