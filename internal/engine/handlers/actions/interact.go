package actions

import (
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// HandleInteract fires the target's trigger (stairs, portals, levers).
// The trigger payload is handed back raw; the engine's event processor
// interprets it.
func HandleInteract(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	target := ctx.Finder.GetEntity(p.TargetID)
	if target == nil {
		return handlers.Result{Msg: "There is nothing to interact with.", MsgType: "ERROR"}, nil
	}

	sameCell := target.Pos == ctx.Actor.Pos
	if !sameCell && !ctx.Actor.Pos.IsAdjacent(target.Pos) {
		return handlers.Result{Msg: "Too far away.", MsgType: "ERROR"}, nil
	}

	if target.Trigger == nil || len(target.Trigger.OnInteract) == 0 {
		return handlers.Result{Msg: "Nothing happens.", MsgType: "INFO"}, nil
	}

	return handlers.Result{Event: target.Trigger.OnInteract}, nil
}
